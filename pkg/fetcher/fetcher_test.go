package fetcher

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtnitsch/listing-optimizer/models"
	"github.com/dtnitsch/listing-optimizer/pkg/caching"
)

const listingPage = `<html><head><title> Widget Pro | eBay </title>
<meta name="description" content="A sturdy widget">
<meta property="og:title" content="Widget Pro">
</head><body><h1>Widget Pro</h1></body></html>`

func TestHTTPFetcher_Fetch(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(listingPage))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(WithUserAgent("listing-test/1.0"), WithTimeout(5*time.Second))
	page, err := f.Fetch(context.Background(), srv.URL+"/itm/1")
	require.NoError(t, err)

	assert.Equal(t, "listing-test/1.0", gotUA)
	assert.Equal(t, srv.URL+"/itm/1", page.URL)
	assert.Equal(t, "Widget Pro | eBay", page.Title)
	assert.Equal(t, "A sturdy widget", page.Metadata["description"])
	assert.Equal(t, "Widget Pro", page.Metadata["og:title"])
	assert.Contains(t, page.HTML, "<h1>Widget Pro</h1>")
	assert.False(t, page.Timestamp.IsZero())
}

func TestHTTPFetcher_StatusErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		kind   string
	}{
		{"rate limited", http.StatusTooManyRequests, models.NetworkRateLimit},
		{"not found", http.StatusNotFound, models.NetworkHTTPStatus},
		{"server error", http.StatusBadGateway, models.NetworkHTTPStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			_, err := NewHTTPFetcher().Fetch(context.Background(), srv.URL)
			var netErr *models.NetworkError
			require.ErrorAs(t, err, &netErr)
			assert.Equal(t, tt.kind, netErr.Kind)
			assert.Equal(t, tt.status, netErr.StatusCode)
		})
	}
}

func TestHTTPFetcher_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	_, err := NewHTTPFetcher(WithTimeout(50*time.Millisecond)).Fetch(context.Background(), srv.URL)
	var netErr *models.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Equal(t, models.NetworkTimeout, netErr.Kind)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, models.NetworkDNS, classify("u", &net.DNSError{Err: "no such host", Name: "nowhere.invalid"}).Kind)
	assert.Equal(t, models.NetworkTimeout, classify("u", context.DeadlineExceeded).Kind)
	assert.Equal(t, models.NetworkTransport, classify("u", errors.New("connection reset")).Kind)
}

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) Fetch(ctx context.Context, url string) (*models.FetchedPage, error) {
	args := m.Called(ctx, url)
	page, _ := args.Get(0).(*models.FetchedPage)
	return page, args.Error(1)
}

func TestCachingFetcher(t *testing.T) {
	cache, err := caching.NewCache(t.TempDir(), time.Hour)
	require.NoError(t, err)

	next := new(mockFetcher)
	url := "https://www.ebay.com/itm/123"
	next.On("Fetch", mock.Anything, url).
		Return(NewPage(url, listingPage, time.Now()), nil).Once()

	f := NewCachingFetcher(next, cache, nil)
	first, err := f.Fetch(context.Background(), url)
	require.NoError(t, err)
	second, err := f.Fetch(context.Background(), url)
	require.NoError(t, err)

	assert.Equal(t, first.HTML, second.HTML)
	assert.Equal(t, "Widget Pro | eBay", second.Title)
	next.AssertNumberOfCalls(t, "Fetch", 1)
}

func TestCachingFetcher_ErrorNotCached(t *testing.T) {
	cache, err := caching.NewCache(t.TempDir(), time.Hour)
	require.NoError(t, err)

	url := "https://www.ebay.com/itm/404"
	next := new(mockFetcher)
	next.On("Fetch", mock.Anything, url).
		Return(nil, &models.NetworkError{Kind: models.NetworkHTTPStatus, URL: url, StatusCode: 404, Err: errors.New("404 Not Found")})

	f := NewCachingFetcher(next, cache, nil)
	for i := 0; i < 2; i++ {
		_, err := f.Fetch(context.Background(), url)
		var netErr *models.NetworkError
		require.ErrorAs(t, err, &netErr)
	}
	next.AssertNumberOfCalls(t, "Fetch", 2)
}
