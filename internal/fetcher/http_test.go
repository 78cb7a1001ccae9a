package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcherSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Write([]byte(`<html><body><h1 data-automation="job-detail-title">Data Analyst</h1></body></html>`))
	}))
	defer srv.Close()

	f := NewHTTPFetcher()
	defer f.Close()

	doc, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "Data Analyst", doc.Find(`[data-automation="job-detail-title"]`).Text())
}

func TestHTTPFetcherRecoversAfterFailure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`<html><body>ok</body></html>`))
	}))
	defer srv.Close()

	f := NewHTTPFetcher()
	defer f.Close()

	doc, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "ok", doc.Find("body").Text())
	assert.Equal(t, int32(2), calls.Load())
}

func TestHTTPFetcherExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := NewHTTPFetcher()
	defer f.Close()

	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, DefaultMaxRetries, fetchErr.Attempts)
	assert.Equal(t, srv.URL, fetchErr.URL)
	assert.Equal(t, int32(DefaultMaxRetries), calls.Load())
}

func TestHTTPFetcherForbiddenBacksOff(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Write([]byte(`<html><body>through</body></html>`))
	}))
	defer srv.Close()

	f := NewHTTPFetcher()
	defer f.Close()

	start := time.Now()
	doc, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "through", doc.Find("body").Text())
	// first retry after a 403 waits 2^0 = 1s
	assert.GreaterOrEqual(t, time.Since(start), time.Second)
}

func TestHTTPFetcherHonorsCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	f := NewHTTPFetcher()
	defer f.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	_, err := f.Fetch(ctx, srv.URL)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
