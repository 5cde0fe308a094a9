package handler

import (
	"context"
	"errors"
	"net/http"

	log "github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/user/cinewish/internal/config"
	"github.com/user/cinewish/internal/middleware"
	"github.com/user/cinewish/internal/model"
	"github.com/user/cinewish/internal/repository"
	"github.com/user/cinewish/internal/service"
)

// Authenticator 登录流程与会话读取
type Authenticator interface {
	service.SessionProvider
	LoginURL(c *gin.Context) (string, error)
	Callback(c *gin.Context) (*model.SessionUser, error)
	Logout(c *gin.Context) (string, error)
}

// HomeBuilder 首页数据组装
type HomeBuilder interface {
	Build(ctx context.Context, user *model.SessionUser) (*service.HomePage, error)
}

// Handler HTTP 处理器，依赖全部通过构造注入
type Handler struct {
	Config   *config.Config
	Auth     Authenticator
	Catalog  service.MovieCatalog
	Profiles repository.ProfileStore
	HomeSvc  HomeBuilder
}

// NewHandler 创建处理器
func NewHandler(cfg *config.Config, auth Authenticator, catalog service.MovieCatalog, profiles repository.ProfileStore, recommender service.Recommender) *Handler {
	return &Handler{
		Config:   cfg,
		Auth:     auth,
		Catalog:  catalog,
		Profiles: profiles,
		HomeSvc:  service.NewHomeService(catalog, profiles, recommender),
	}
}

// RenderData 统一封装公共渲染数据
func (h *Handler) RenderData(c *gin.Context, user *model.SessionUser, data gin.H) gin.H {
	res := gin.H{
		"SiteName":   h.Config.SiteName,
		"SiteUrl":    h.Config.SiteUrl,
		"Path":       c.Request.URL.Path,
		"LoginPath":  config.LoginPath,
		"LogoutPath": config.LogoutPath,
		"User":       user,
		"Title":      "",
	}

	// 合并传入的数据
	for k, v := range data {
		res[k] = v
	}

	return res
}

// renderError 渲染错误页
func (h *Handler) renderError(c *gin.Context, user *model.SessionUser, code int, title, message string) {
	c.HTML(code, "error.html", h.RenderData(c, user, gin.H{
		"Title":   title,
		"Message": message,
	}))
}

// ==================== 页面 ====================

// Home 首页：热门电影 + 个人推荐
func (h *Handler) Home(c *gin.Context) {
	user, err := h.Auth.GetSession(c)
	if err != nil {
		log.Errorf("[Home] 读取会话失败: %v", err)
		user = nil
	}

	page, err := h.HomeSvc.Build(c.Request.Context(), user)
	if err != nil {
		log.Errorf("[Home] 组装首页失败: %v", err)
		h.renderError(c, user, http.StatusInternalServerError, "Something went wrong", "We couldn't load movies right now.")
		return
	}

	c.HTML(http.StatusOK, "home.html", h.RenderData(c, user, gin.H{
		"Title": "Discover movies",
		"Home":  page,
	}))
}

// AccessDenied 未登录访问受保护页面
func (h *Handler) AccessDenied(c *gin.Context) {
	c.HTML(http.StatusUnauthorized, "denied.html", h.RenderData(c, nil, gin.H{
		"Title": "Access Denied",
	}))
}

// Wishlist 想看列表页（需要登录），逐个获取电影详情
func (h *Handler) Wishlist(c *gin.Context) {
	user := middleware.GetSessionUser(c)

	profile, err := h.Profiles.GetProfile(c.Request.Context(), user.ProfileID())
	if err != nil {
		log.Errorf("[Wishlist] 获取用户资料失败 %s: %v", user.ProfileID(), err)
		h.renderError(c, user, http.StatusInternalServerError, "Something went wrong", "We couldn't load your wishlist.")
		return
	}

	movies := make([]model.Movie, 0)
	missing := 0
	if profile != nil {
		for _, id := range model.UniqueMovieIDs(profile.Wishlist) {
			movie, err := h.Catalog.GetMovie(c.Request.Context(), id)
			if err != nil {
				if !errors.Is(err, service.ErrMovieNotFound) {
					log.Warnf("[Wishlist] 获取电影详情失败 %d: %v", id, err)
				}
				missing++
				continue
			}
			movies = append(movies, *movie)
		}
	}

	c.HTML(http.StatusOK, "wishlist.html", h.RenderData(c, user, gin.H{
		"Title":   "Wishlist",
		"Profile": profile,
		"Movies":  movies,
		"Missing": missing,
	}))
}

// Profile 个人资料页（需要登录）
func (h *Handler) Profile(c *gin.Context) {
	user := middleware.GetSessionUser(c)

	profile, err := h.Profiles.GetProfile(c.Request.Context(), user.ProfileID())
	if err != nil {
		log.Errorf("[Profile] 获取用户资料失败 %s: %v", user.ProfileID(), err)
		h.renderError(c, user, http.StatusInternalServerError, "Something went wrong", "We couldn't load your profile.")
		return
	}

	c.HTML(http.StatusOK, "profile.html", h.RenderData(c, user, gin.H{
		"Title":   "Profile",
		"Profile": profile,
	}))
}

// Health 健康检查
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
