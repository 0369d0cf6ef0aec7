package xxpie

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	httpx "github.com/wtzmx/QFNU-GradPhoto-Downloader/internal/http"
	"github.com/wtzmx/QFNU-GradPhoto-Downloader/internal/model"
	"github.com/wtzmx/QFNU-GradPhoto-Downloader/internal/xxpie/dto"
)

const (
	defaultBaseURL = "https://int.xxpie.com"
	photosEndpoint = "/api/pm/queryAlbumItemsPgByDefaultSort"

	// pageSize is the page size the web client uses; a short page
	// signals the end of the album.
	pageSize = 60
)

// ErrAlbumNotFound is returned when the service reports that the album
// does not exist (deleted, expired, or a mistyped identifier).
var ErrAlbumNotFound = errors.New("album not found")

// APIError is an application-level error reported in the response
// envelope or a response whose shape could not be parsed.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("album API error (code %d)", e.Code)
	}
	return fmt.Sprintf("album API error (code %d): %s", e.Code, e.Message)
}

// notFoundCode is the envelope code the service uses for missing albums.
const notFoundCode = 404

// Client fetches album metadata from the xxpie album API.
//
// Client holds no per-album state and is safe to call concurrently
// for different album refs. SetAccessToken is expected to be called
// once, before fetching.
type Client struct {
	http        *httpx.Client
	baseURL     string
	accessToken string

	// OnPage, when set, is called after each page fetch with the page
	// number and the number of photos it contained.
	OnPage func(page, count int)
}

// NewClient creates an album API client on top of the shared HTTP client.
func NewClient(hc *httpx.Client) *Client {
	return &Client{
		http:    hc,
		baseURL: defaultBaseURL,
	}
}

// SetBaseURL overrides the API base URL. Used in tests.
func (c *Client) SetBaseURL(base string) {
	c.baseURL = base
}

// SetAccessToken sets the x-access-token credential scraped from the
// album page. An empty token means unauthenticated access, which works
// for public albums.
func (c *Client) SetAccessToken(token string) {
	c.accessToken = token
	if token != "" {
		c.http.SetHeader("x-access-token", token)
	}
}

// FetchAlbumPhotos pages through the album API and returns all photos
// in the album, in the service's default sort order.
//
// Errors:
//   - ErrAlbumNotFound when the album does not exist
//   - *APIError when the envelope reports an error or is malformed
//   - a wrapped transport error otherwise
func (c *Client) FetchAlbumPhotos(ctx context.Context, ref *AlbumRef) ([]*model.Photo, error) {
	var photos []*model.Photo

	for page := 1; ; page++ {
		body, err := c.http.Get(ctx, c.pageURL(ref, page))
		if err != nil {
			var statusErr *httpx.StatusError
			if errors.As(err, &statusErr) {
				if statusErr.StatusCode == 404 {
					return nil, ErrAlbumNotFound
				}
				return nil, fmt.Errorf("album API page %d: %w", page, err)
			}
			return nil, fmt.Errorf("fetch album page %d: %w", page, err)
		}

		var envelope dto.Envelope
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, &APIError{Message: fmt.Sprintf("malformed response on page %d: %v", page, err)}
		}

		if envelope.Code != 0 {
			if envelope.Code == notFoundCode {
				return nil, ErrAlbumNotFound
			}
			return nil, &APIError{Code: envelope.Code, Message: envelope.Message}
		}

		if envelope.Result == nil {
			return nil, &APIError{Message: fmt.Sprintf("missing result on page %d", page)}
		}

		for i := range envelope.Result.Photos {
			photos = append(photos, envelope.Result.Photos[i].ToPhoto())
		}

		if c.OnPage != nil {
			c.OnPage(page, len(envelope.Result.Photos))
		}

		// A short page is the last one.
		if len(envelope.Result.Photos) < pageSize {
			break
		}
	}

	return photos, nil
}

// pageURL builds the query URL for one page of album items.
func (c *Client) pageURL(ref *AlbumRef, page int) string {
	query := url.Values{}
	query.Set("album_id", ref.ID)
	query.Set("page_no", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(pageSize))
	query.Set("platform", "H5")
	if ref.NoWatermark != "" {
		query.Set("no_watermark", ref.NoWatermark)
	}
	if ref.SubAlbumID != "" {
		query.Set("sub_album_id", ref.SubAlbumID)
	}

	return c.baseURL + photosEndpoint + "?" + query.Encode()
}
