package service

import (
	"context"
	"fmt"
	"sort"

	log "github.com/charmbracelet/log"
	"github.com/user/cinewish/internal/model"
	"github.com/user/cinewish/internal/repository"
)

const carouselSize = 10

// HomePage 首页渲染数据
type HomePage struct {
	User            *model.SessionUser
	Profile         *model.UserProfile
	Hero            *model.Movie
	Carousel        []model.Movie
	Movies          []model.Movie
	Recommendations []model.Recommendation
}

// InWishlist 模板中判断电影是否已在想看列表
func (p *HomePage) InWishlist(movieID int64) bool {
	return p.Profile != nil && p.Profile.HasMovie(movieID)
}

// HomeService 组装首页：会话 → 资料 → 热门电影 → AI 推荐，按顺序执行
type HomeService struct {
	catalog     MovieCatalog
	profiles    repository.ProfileStore
	recommender Recommender
}

func NewHomeService(catalog MovieCatalog, profiles repository.ProfileStore, recommender Recommender) *HomeService {
	return &HomeService{catalog: catalog, profiles: profiles, recommender: recommender}
}

// Build user 为 nil 时生成匿名首页（无资料、无推荐）
func (s *HomeService) Build(ctx context.Context, user *model.SessionUser) (*HomePage, error) {
	page := &HomePage{User: user}

	if user != nil {
		if id := user.ProfileID(); id != "" {
			profile, err := s.profiles.GetProfile(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("get profile %s: %w", id, err)
			}
			page.Profile = profile

			// 资料同步失败不影响首页
			if upserted, err := s.profiles.UpsertProfileFromSession(ctx, user); err != nil {
				log.Warnf("[Home] 同步用户资料失败 %s: %v", id, err)
			} else if upserted != nil {
				page.Profile = upserted
			}
		}
	}

	popular, err := s.catalog.GetPopularMovies(ctx, 1)
	if err != nil {
		return nil, fmt.Errorf("get popular movies: %w", err)
	}

	// 列表结果可能被缓存共享，排序前先复制
	movies := make([]model.Movie, len(popular.Results))
	copy(movies, popular.Results)
	sort.SliceStable(movies, func(i, j int) bool {
		return movies[i].Popularity > movies[j].Popularity
	})
	page.Movies = movies

	if len(movies) > 0 {
		page.Hero = &movies[0]
		end := len(movies)
		if end > carouselSize+1 {
			end = carouselSize + 1
		}
		page.Carousel = movies[1:end]
	}

	if user != nil && s.recommender != nil {
		recs, err := s.recommender.Recommend(ctx, page.Profile, movies)
		if err != nil {
			log.Warnf("[Home] 获取推荐失败: %v", err)
		} else {
			page.Recommendations = recs
		}
	}

	return page, nil
}
