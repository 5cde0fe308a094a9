package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	log "github.com/charmbracelet/log"
	"github.com/user/cinewish/internal/config"
	"github.com/user/cinewish/internal/metrics"
	"github.com/user/cinewish/internal/model"
	"github.com/user/cinewish/internal/utils"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrCatalogDisabled 未配置 TMDB_TOKEN
	ErrCatalogDisabled = errors.New("TMDB_TOKEN is not set")
	// ErrMovieNotFound 目录中不存在该电影
	ErrMovieNotFound = errors.New("movie not found")
)

// catalogTimeout TMDB 请求超时
const catalogTimeout = 10 * time.Second

//go:generate mockgen -source=catalog.go -destination=../mocks/catalog_mock.go -package=mocks

// MovieCatalog 电影目录（TMDB）
type MovieCatalog interface {
	SearchMovies(ctx context.Context, query string, page int) (*model.MoviePage, error)
	GetPopularMovies(ctx context.Context, page int) (*model.MoviePage, error)
	GetUpcomingMovies(ctx context.Context, page int) (*model.MoviePage, error)
	GetMovie(ctx context.Context, id int64) (*model.Movie, error)
}

// CatalogService TMDB 客户端：列表走共享缓存，详情走进程内 LRU
type CatalogService struct {
	baseURL string
	token   string
	http    *utils.HTTPClient
	cache   utils.Cache
	ttl     time.Duration
	details *utils.TTLCache[*model.Movie]
	group   singleflight.Group
}

func NewCatalogService(cfg *config.Config, cache utils.Cache) *CatalogService {
	if cache == nil {
		cache = utils.NewMemoryCache()
	}
	return &CatalogService{
		baseURL: cfg.TMDBBaseURL,
		token:   cfg.TMDBToken,
		http:    utils.NewHTTPClient(catalogTimeout),
		cache:   cache,
		ttl:     cfg.CatalogTTL,
		details: utils.NewTTLCache[*model.Movie](500, time.Hour),
	}
}

// SearchMovies 搜索不缓存，每次直接请求上游
func (s *CatalogService) SearchMovies(ctx context.Context, query string, page int) (*model.MoviePage, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")
	params.Set("language", "en-US")
	params.Set("page", strconv.Itoa(page))

	var result model.MoviePage
	if err := s.get(ctx, "search", "/search/movie?"+params.Encode(), &result); err != nil {
		return nil, fmt.Errorf("search movies %q: %w", query, err)
	}
	return normalizePage(&result), nil
}

func (s *CatalogService) GetPopularMovies(ctx context.Context, page int) (*model.MoviePage, error) {
	return s.listPage(ctx, "popular", page)
}

func (s *CatalogService) GetUpcomingMovies(ctx context.Context, page int) (*model.MoviePage, error) {
	return s.listPage(ctx, "upcoming", page)
}

// GetMovie 电影详情，404 时返回 ErrMovieNotFound
func (s *CatalogService) GetMovie(ctx context.Context, id int64) (*model.Movie, error) {
	key := strconv.FormatInt(id, 10)
	if movie, ok := s.details.Get(key); ok {
		metrics.CatalogCache.WithLabelValues("hit").Inc()
		return movie, nil
	}
	metrics.CatalogCache.WithLabelValues("miss").Inc()

	var movie model.Movie
	err := s.get(ctx, "movie", "/movie/"+key+"?language=en-US", &movie)
	var se *utils.StatusError
	if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
		return nil, ErrMovieNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get movie %d: %w", id, err)
	}

	s.details.Set(key, &movie)
	return &movie, nil
}

// listPage 先查缓存，未命中时用 singleflight 合并并发的相同请求
func (s *CatalogService) listPage(ctx context.Context, endpoint string, page int) (*model.MoviePage, error) {
	key := fmt.Sprintf("catalog:%s:%d", endpoint, page)

	if raw, ok, err := s.cache.Get(ctx, key); err != nil {
		log.Warnf("[Catalog] 读取缓存失败 %s: %v", key, err)
	} else if ok {
		var cached model.MoviePage
		if err := json.Unmarshal(raw, &cached); err == nil {
			metrics.CatalogCache.WithLabelValues("hit").Inc()
			return normalizePage(&cached), nil
		}
	}
	metrics.CatalogCache.WithLabelValues("miss").Inc()

	val, err, _ := s.group.Do(key, func() (interface{}, error) {
		// 合并后的请求不跟随首个调用方取消
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), catalogTimeout)
		defer cancel()

		var result model.MoviePage
		path := fmt.Sprintf("/movie/%s?language=en-US&page=%d", endpoint, page)
		if err := s.get(fetchCtx, endpoint, path, &result); err != nil {
			return nil, err
		}

		if raw, err := json.Marshal(&result); err == nil {
			if err := s.cache.Set(fetchCtx, key, raw, s.ttl); err != nil {
				log.Warnf("[Catalog] 写入缓存失败 %s: %v", key, err)
			}
		}
		return normalizePage(&result), nil
	})
	if err != nil {
		return nil, fmt.Errorf("get %s movies page %d: %w", endpoint, page, err)
	}
	return val.(*model.MoviePage), nil
}

func (s *CatalogService) get(ctx context.Context, endpoint, path string, target interface{}) error {
	if s.token == "" {
		return ErrCatalogDisabled
	}

	headers := map[string]string{"Authorization": "Bearer " + s.token}
	if err := s.http.GetJSON(ctx, s.baseURL+path, headers, target); err != nil {
		metrics.CatalogRequests.WithLabelValues(endpoint, "error").Inc()
		return err
	}
	metrics.CatalogRequests.WithLabelValues(endpoint, "ok").Inc()
	return nil
}

// normalizePage 保证 results 序列化为 [] 而不是 null
func normalizePage(p *model.MoviePage) *model.MoviePage {
	if p.Results == nil {
		p.Results = []model.Movie{}
	}
	return p
}
