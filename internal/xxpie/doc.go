// Package xxpie provides access to the xxpie.com photo album service.
//
// The package handles three concerns:
//
//  1. Parsing user-supplied album URLs into an AlbumRef
//  2. Scraping the access token from the album page HTML
//  3. Fetching the album's photo list from the paged album API
//
// # Album URL Parsing
//
// Album links look like:
//
//	https://www.xxpie.com/m/album?id=684fe6d7e66eb911b3071bc3&nowatermark=...&mini=0
//
// ParseAlbumURL extracts the album identifier and the optional
// nowatermark / sub_album_id parameters:
//
//	ref, err := xxpie.ParseAlbumURL(rawURL)
//	if errors.Is(err, xxpie.ErrInvalidURL) {
//	    fmt.Println("not an xxpie album link")
//	}
//
// # Photo List API
//
// The service exposes a paged JSON API at
// int.xxpie.com/api/pm/queryAlbumItemsPgByDefaultSort. Client pages
// through it and returns typed photos:
//
//	client := xxpie.NewClient(httpClient)
//	client.SetAccessToken(xxpie.ExtractAccessToken(pageHTML))
//	photos, err := client.FetchAlbumPhotos(ctx, ref)
//
// Application-level errors in the response envelope are reported as
// *APIError; a missing album maps to ErrAlbumNotFound.
package xxpie
