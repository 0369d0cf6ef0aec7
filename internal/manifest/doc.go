// Package manifest renders album download manifests.
//
// A manifest is a small sidecar file written into the album directory
// after a batch run. It lists every photo the batch attempted with its
// final status, in JSON, CSV or plain text.
package manifest
