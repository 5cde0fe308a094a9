package middleware

import (
	"strings"

	log "github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

var skipPagePrefixes = []string{"/api/", "/static/", "/metrics", "/health", "/favicon.ico"}

// IsPagePath 是否为页面路径（非 API、非静态资源）
func IsPagePath(path string) bool {
	for _, prefix := range skipPagePrefixes {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return true
}

// PagePathLogger 记录页面访问路径后放行
func PagePathLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsPagePath(c.Request.URL.Path) {
			log.Infof("[Page] %s", c.Request.URL.Path)
		}
		c.Next()
	}
}
