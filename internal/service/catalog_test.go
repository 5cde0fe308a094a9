package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/cinewish/internal/config"
	"github.com/user/cinewish/internal/model"
	"github.com/user/cinewish/internal/utils"
)

func newTestCatalog(t *testing.T, handler http.HandlerFunc) *CatalogService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{TMDBBaseURL: srv.URL, TMDBToken: "tok", CatalogTTL: time.Minute}
	return NewCatalogService(cfg, utils.NewMemoryCache())
}

func TestCatalogService_SearchMovies(t *testing.T) {
	catalog := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/movie", r.URL.Path)
		assert.Equal(t, "the matrix", r.URL.Query().Get("query"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"page":2,"total_pages":3,"total_results":41,"results":[{"id":603,"title":"The Matrix","popularity":80.5}]}`))
	})

	page, err := catalog.SearchMovies(context.Background(), "the matrix", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 41, page.TotalResults)
	require.Len(t, page.Results, 1)
	assert.Equal(t, int64(603), page.Results[0].ID)
}

func TestCatalogService_PopularIsCached(t *testing.T) {
	var hits int32
	catalog := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "/movie/popular", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{"page": 1, "results": []map[string]any{{"id": 1, "title": "A"}}})
	})

	ctx := context.Background()
	first, err := catalog.GetPopularMovies(ctx, 1)
	require.NoError(t, err)
	second, err := catalog.GetPopularMovies(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	assert.Equal(t, first.Results, second.Results)
}

func TestCatalogService_EmptyResults(t *testing.T) {
	catalog := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"page":1}`))
	})

	page, err := catalog.GetUpcomingMovies(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, page.Results)
	assert.Empty(t, page.Results)
}

func TestCatalogService_GetMovieNotFound(t *testing.T) {
	catalog := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := catalog.GetMovie(context.Background(), 42)
	assert.ErrorIs(t, err, ErrMovieNotFound)
}

func TestCatalogService_GetMovieCached(t *testing.T) {
	var hits int32
	catalog := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte(`{"id":7,"title":"Seven"}`))
	})

	for i := 0; i < 3; i++ {
		m, err := catalog.GetMovie(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, "Seven", m.Title)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestCatalogService_Disabled(t *testing.T) {
	catalog := NewCatalogService(&config.Config{TMDBBaseURL: "http://127.0.0.1:0"}, nil)

	_, err := catalog.SearchMovies(context.Background(), "x", 1)
	assert.ErrorIs(t, err, ErrCatalogDisabled)
}

func TestCatalogService_UpstreamError(t *testing.T) {
	catalog := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := catalog.GetPopularMovies(context.Background(), 1)
	var se *utils.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
}

func TestCatalogService_SharedFetchSurvivesCallerCancel(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	catalog := newTestCatalog(t, func(w http.ResponseWriter, r *http.Request) {
		once.Do(func() { close(started) })
		<-release
		_, _ = w.Write([]byte(`{"page":1,"results":[{"id":7,"title":"Seven"}]}`))
	})

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := catalog.GetPopularMovies(ctxA, 1)
		errA <- err
	}()
	<-started

	type result struct {
		page *model.MoviePage
		err  error
	}
	resB := make(chan result, 1)
	go func() {
		page, err := catalog.GetPopularMovies(context.Background(), 1)
		resB <- result{page, err}
	}()

	// 等待 B 加入同一个 singleflight
	time.Sleep(50 * time.Millisecond)
	cancelA()
	time.Sleep(20 * time.Millisecond)
	close(release)

	got := <-resB
	require.NoError(t, got.err)
	require.Len(t, got.page.Results, 1)
	assert.Equal(t, int64(7), got.page.Results[0].ID)
	<-errA
}
