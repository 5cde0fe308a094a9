package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	log "github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/user/cinewish/internal/model"
	"github.com/user/cinewish/internal/repository"
	"github.com/user/cinewish/internal/utils"
)

var validate = validator.New()

// parsePage 页码默认 1，非数字或小于 1 时回退到 1
func parsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || validate.Var(page, "gte=1") != nil {
		return 1
	}
	return page
}

// pageOf 上游未返回页码时使用请求的页码
func pageOf(result *model.MoviePage, requested int) int {
	if result.Page > 0 {
		return result.Page
	}
	return requested
}

// Me 当前登录用户，未登录返回 null
func (h *Handler) Me(c *gin.Context) {
	user, err := h.Auth.GetSession(c)
	if err != nil {
		log.Errorf("[API] 读取会话失败: %v", err)
		c.JSON(http.StatusOK, nil)
		return
	}
	if user == nil {
		c.JSON(http.StatusOK, nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sub":     user.Subject(),
		"name":    user.Name,
		"email":   user.Email,
		"picture": user.Picture,
	})
}

// SearchMovies 搜索电影
func (h *Handler) SearchMovies(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if err := validate.Var(query, "required"); err != nil {
		utils.BadRequest(c, "Search query is required")
		return
	}
	// min 按字符数（rune）计算
	if err := validate.Var(query, "min=2"); err != nil {
		utils.BadRequest(c, "Search query must be at least 2 characters long")
		return
	}
	page := parsePage(c.Query("page"))

	result, err := h.Catalog.SearchMovies(c.Request.Context(), query, page)
	if err != nil {
		log.Errorf("[API] 搜索电影失败 q=%q page=%d: %v", query, page, err)
		utils.InternalServerError(c, "Failed to search movies")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"query":         query,
		"page":          pageOf(result, page),
		"total_pages":   result.TotalPages,
		"total_results": result.TotalResults,
		"results":       result.Results,
	})
}

// PopularMovies 热门电影
func (h *Handler) PopularMovies(c *gin.Context) {
	page := parsePage(c.Query("page"))
	result, err := h.Catalog.GetPopularMovies(c.Request.Context(), page)
	h.respondMoviePage(c, "popular", page, result, err)
}

// UpcomingMovies 即将上映
func (h *Handler) UpcomingMovies(c *gin.Context) {
	page := parsePage(c.Query("page"))
	result, err := h.Catalog.GetUpcomingMovies(c.Request.Context(), page)
	h.respondMoviePage(c, "upcoming", page, result, err)
}

func (h *Handler) respondMoviePage(c *gin.Context, endpoint string, page int, result *model.MoviePage, err error) {
	if err != nil {
		log.Errorf("[API] 获取 %s 电影失败 page=%d: %v", endpoint, page, err)
		utils.InternalServerError(c, "Failed to fetch movies")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"page":          pageOf(result, page),
		"total_pages":   result.TotalPages,
		"total_results": result.TotalResults,
		"results":       result.Results,
	})
}

// requireUser API 鉴权：无会话 401，无法解析 ID 400
func (h *Handler) requireUser(c *gin.Context, failure string) (*model.SessionUser, string, bool) {
	user, err := h.Auth.GetSession(c)
	if err != nil {
		log.Errorf("[API] 读取会话失败: %v", err)
		utils.InternalServerError(c, failure)
		return nil, "", false
	}
	if user == nil {
		utils.Unauthorized(c, "")
		return nil, "", false
	}

	id := user.ProfileID()
	if id == "" {
		utils.BadRequest(c, "Unable to determine user ID")
		return nil, "", false
	}
	return user, id, true
}

// CleanupWishlist 想看列表去重
func (h *Handler) CleanupWishlist(c *gin.Context) {
	const failure = "Failed to clean up wishlist"

	_, id, ok := h.requireUser(c, failure)
	if !ok {
		return
	}

	wishlist, err := h.Profiles.CleanupWishlistDuplicates(c.Request.Context(), id)
	if err != nil {
		log.Errorf("[API] 清理想看列表失败 %s: %v", id, err)
		utils.InternalServerError(c, failure)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Wishlist cleaned up successfully",
		"wishlist": wishlist,
		"count":    len(wishlist),
	})
}

// GetWishlist 当前用户的想看列表
func (h *Handler) GetWishlist(c *gin.Context) {
	const failure = "Failed to load wishlist"

	_, id, ok := h.requireUser(c, failure)
	if !ok {
		return
	}

	profile, err := h.Profiles.GetProfile(c.Request.Context(), id)
	if err != nil {
		log.Errorf("[API] 获取想看列表失败 %s: %v", id, err)
		utils.InternalServerError(c, failure)
		return
	}

	wishlist := []int64{}
	if profile != nil && profile.Wishlist != nil {
		wishlist = profile.Wishlist
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"wishlist": wishlist,
		"count":    len(wishlist),
	})
}

func parseMovieID(c *gin.Context) (int64, bool) {
	movieID, err := strconv.ParseInt(c.Param("movieId"), 10, 64)
	if err != nil || movieID <= 0 {
		utils.BadRequest(c, "Invalid movie ID")
		return 0, false
	}
	return movieID, true
}

// AddToWishlist 加入想看（重复添加无副作用），资料不存在时先按会话创建
func (h *Handler) AddToWishlist(c *gin.Context) {
	const failure = "Failed to update wishlist"

	user, id, ok := h.requireUser(c, failure)
	if !ok {
		return
	}
	movieID, ok := parseMovieID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	wishlist, err := h.Profiles.AddToWishlist(ctx, id, movieID)
	if errors.Is(err, repository.ErrProfileNotFound) {
		if _, err = h.Profiles.UpsertProfileFromSession(ctx, user); err == nil {
			wishlist, err = h.Profiles.AddToWishlist(ctx, id, movieID)
		}
	}
	if err != nil {
		log.Errorf("[API] 加入想看失败 %s movie=%d: %v", id, movieID, err)
		utils.InternalServerError(c, failure)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"wishlist": wishlist,
		"count":    len(wishlist),
	})
}

// RemoveFromWishlist 从想看列表移除
func (h *Handler) RemoveFromWishlist(c *gin.Context) {
	const failure = "Failed to update wishlist"

	_, id, ok := h.requireUser(c, failure)
	if !ok {
		return
	}
	movieID, ok := parseMovieID(c)
	if !ok {
		return
	}

	wishlist, err := h.Profiles.RemoveFromWishlist(c.Request.Context(), id, movieID)
	if errors.Is(err, repository.ErrProfileNotFound) {
		utils.NotFound(c, "Profile not found")
		return
	}
	if err != nil {
		log.Errorf("[API] 移除想看失败 %s movie=%d: %v", id, movieID, err)
		utils.InternalServerError(c, failure)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"wishlist": wishlist,
		"count":    len(wishlist),
	})
}
