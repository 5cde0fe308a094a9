package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/user/cinewish/internal/config"
	"github.com/user/cinewish/internal/handler"
	"github.com/user/cinewish/internal/middleware"
	"github.com/user/cinewish/web"
)

// Options 路由依赖的共享组件
type Options struct {
	SearchLimiter *middleware.RateLimiter
	Gatherer      prometheus.Gatherer
}

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler, opts Options) {
	r.HTMLRender = web.LoadTemplates()
	r.StaticFS("/static", http.FS(web.Static()))

	// 健康检查与指标
	r.GET("/health", h.Health)
	if opts.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	// ==================== 页面 ====================
	r.GET("/", h.Home)

	gate := middleware.RequireSession(h.Auth, h.AccessDenied)
	r.GET("/wishlist", gate, h.Wishlist)
	r.GET("/profile", gate, h.Profile)

	// ==================== 认证 ====================
	r.GET(config.LoginPath, h.Login)
	r.GET(config.CallbackPath, h.Callback)
	r.GET(config.LogoutPath, h.Logout)

	// ==================== JSON API ====================
	api := r.Group("/api")
	{
		api.GET("/auth/me", h.Me)

		search := []gin.HandlerFunc{h.SearchMovies}
		if opts.SearchLimiter != nil {
			search = append([]gin.HandlerFunc{middleware.RateLimit(opts.SearchLimiter)}, search...)
		}
		api.GET("/search/movies", search...)

		api.GET("/movies/popular", h.PopularMovies)
		api.GET("/movies/upcoming", h.UpcomingMovies)

		api.GET("/wishlist", h.GetWishlist)
		api.POST("/wishlist/cleanup", h.CleanupWishlist)
		api.POST("/wishlist/:movieId", h.AddToWishlist)
		api.DELETE("/wishlist/:movieId", h.RemoveFromWishlist)
	}
}
