// Package download coordinates photo album downloads.
//
// The package has three layers:
//
//   - Resolver turns album photos into download tasks, picking the
//     variant URL for the configured quality tier and computing unique
//     destination paths.
//   - Pool runs a batch of tasks with bounded concurrency, retries
//     with exponential cooldown, and a skip-existing check.
//   - Manager ties the pieces together for one album: parse the URL,
//     fetch metadata, resolve tasks, run the pool, post-process images
//     and write the manifest.
//
// Progress is reported through a ProgressEvent callback; the CLI prints
// events and the TUI polls Manager.GetProgress for its bar.
//
// Example:
//
//	mgr := download.NewManager(settings, func(e download.ProgressEvent) {
//	    fmt.Println(e.Message)
//	})
//	if err := mgr.Initialize(ctx, albumURL); err != nil {
//	    return err
//	}
//	result, err := mgr.StartDownloads(ctx)
package download
