package handler

import (
	"errors"
	"net/http"

	log "github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/user/cinewish/internal/service"
)

// Login 跳转到身份提供方登录
func (h *Handler) Login(c *gin.Context) {
	target, err := h.Auth.LoginURL(c)
	if errors.Is(err, service.ErrAuthDisabled) {
		h.renderError(c, nil, http.StatusServiceUnavailable, "Login unavailable", "Sign-in is not configured on this server.")
		return
	}
	if err != nil {
		log.Errorf("[Auth] 生成登录地址失败: %v", err)
		h.renderError(c, nil, http.StatusInternalServerError, "Login failed", "Please try again.")
		return
	}
	c.Redirect(http.StatusFound, target)
}

// Callback 登录回调：写入会话并尽力同步用户资料
func (h *Handler) Callback(c *gin.Context) {
	if providerErr := c.Query("error"); providerErr != "" {
		log.Warnf("[Auth] 身份提供方返回错误: %s %s", providerErr, c.Query("error_description"))
		h.renderError(c, nil, http.StatusBadRequest, "Login failed", c.Query("error_description"))
		return
	}

	user, err := h.Auth.Callback(c)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, service.ErrStateMismatch) || errors.Is(err, service.ErrAuthDisabled) {
			code = http.StatusBadRequest
		}
		log.Errorf("[Auth] 登录回调失败: %v", err)
		h.renderError(c, nil, code, "Login failed", "Please try signing in again.")
		return
	}

	if _, err := h.Profiles.UpsertProfileFromSession(c.Request.Context(), user); err != nil {
		log.Warnf("[Auth] 同步用户资料失败 %s: %v", user.ProfileID(), err)
	}

	log.Infof("[Auth] 用户登录: %s", user.Subject())
	c.Redirect(http.StatusFound, "/")
}

// Logout 清除会话并跳转到身份提供方登出
func (h *Handler) Logout(c *gin.Context) {
	target, err := h.Auth.Logout(c)
	if err != nil {
		log.Errorf("[Auth] 退出登录失败: %v", err)
		target = "/"
	}
	c.Redirect(http.StatusFound, target)
}
