package xxpie

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpx "github.com/wtzmx/QFNU-GradPhoto-Downloader/internal/http"
	"github.com/wtzmx/QFNU-GradPhoto-Downloader/internal/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(httpx.NewClient(5*time.Second, 0))
	client.SetBaseURL(server.URL)
	return client
}

func photoJSON(i int) string {
	return fmt.Sprintf(`{
		"file_name": "IMG_%04d.jpg",
		"file_size": %d,
		"width": 4000,
		"height": 3000,
		"gallery_ossobject_id": "obj%04d",
		"url_thumbnail": "https://imagex.xxpie.com/t/%d",
		"url_origin": "https://imagex.xxpie.com/o/%d"
	}`, i, 1000+i, i, i, i)
}

func pageBody(photos []string) string {
	return fmt.Sprintf(`{"code":0,"message":"ok","result":{"photos":[%s],"total":%d}}`,
		strings.Join(photos, ","), len(photos))
}

func testRef() *AlbumRef {
	return &AlbumRef{
		ID:      "684fe6d7e66eb911b3071bc3",
		Referer: "https://www.xxpie.com/m/album?id=684fe6d7e66eb911b3071bc3",
	}
}

func TestClient_FetchAlbumPhotos_SinglePage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "684fe6d7e66eb911b3071bc3", r.URL.Query().Get("album_id"))
		assert.Equal(t, "H5", r.URL.Query().Get("platform"))

		fmt.Fprint(w, pageBody([]string{photoJSON(1), photoJSON(2), photoJSON(3)}))
	})

	photos, err := client.FetchAlbumPhotos(context.Background(), testRef())
	require.NoError(t, err)
	require.Len(t, photos, 3)

	assert.Equal(t, "IMG_0001.jpg", photos[0].SuggestedName)
	assert.Equal(t, "obj0001", photos[0].RemoteID)
	assert.Equal(t, int64(1001), photos[0].FileSize)

	url, ok := photos[0].VariantURL(model.QualityOrigin)
	assert.True(t, ok)
	assert.Equal(t, "https://imagex.xxpie.com/o/1", url)

	_, ok = photos[0].VariantURL(model.QualityLarge1024)
	assert.False(t, ok, "tiers without URLs must be absent")
}

func TestClient_FetchAlbumPhotos_Pagination(t *testing.T) {
	var pages []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		page := r.URL.Query().Get("page_no")
		pages = append(pages, page)

		if page == "1" {
			full := make([]string, pageSize)
			for i := range full {
				full[i] = photoJSON(i + 1)
			}
			fmt.Fprint(w, pageBody(full))
			return
		}
		fmt.Fprint(w, pageBody([]string{photoJSON(61), photoJSON(62)}))
	})

	var reported int
	client.OnPage = func(page, count int) { reported += count }

	photos, err := client.FetchAlbumPhotos(context.Background(), testRef())
	require.NoError(t, err)

	assert.Len(t, photos, 62)
	assert.Equal(t, []string{"1", "2"}, pages)
	assert.Equal(t, 62, reported)
}

func TestClient_FetchAlbumPhotos_SendsAccessToken(t *testing.T) {
	token := strings.Repeat("t", 64)

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, token, r.Header.Get("x-access-token"))
		fmt.Fprint(w, pageBody([]string{photoJSON(1)}))
	})
	client.SetAccessToken(token)

	_, err := client.FetchAlbumPhotos(context.Background(), testRef())
	require.NoError(t, err)
}

func TestClient_FetchAlbumPhotos_Errors(t *testing.T) {
	tests := []struct {
		name      string
		handler   http.HandlerFunc
		check     func(t *testing.T, err error)
	}{
		{
			name: "http 404 maps to not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.NotFound(w, r)
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrAlbumNotFound)
			},
		},
		{
			name: "envelope not found code",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"code":404,"message":"album not exist"}`)
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrAlbumNotFound)
			},
		},
		{
			name: "envelope error code",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"code":1003,"message":"access denied"}`)
			},
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				require.True(t, errors.As(err, &apiErr))
				assert.Equal(t, 1003, apiErr.Code)
				assert.Contains(t, apiErr.Message, "access denied")
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `<html>not json</html>`)
			},
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				assert.True(t, errors.As(err, &apiErr))
			},
		},
		{
			name: "missing result",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, `{"code":0,"message":"ok"}`)
			},
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				assert.True(t, errors.As(err, &apiErr))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)
			_, err := client.FetchAlbumPhotos(context.Background(), testRef())
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}
