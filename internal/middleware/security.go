package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// ContentSecurityPolicy 图片只允许来自白名单域名
func ContentSecurityPolicy(imageDomains []string) string {
	imgSrc := []string{"'self'", "data:"}
	for _, d := range imageDomains {
		imgSrc = append(imgSrc, "https://"+d)
	}
	return strings.Join([]string{
		"default-src 'self'",
		"img-src " + strings.Join(imgSrc, " "),
		"style-src 'self' 'unsafe-inline'",
		"script-src 'self' 'unsafe-inline'",
		"frame-ancestors 'none'",
	}, "; ")
}

// SecurityHeaders 安全响应头
func SecurityHeaders(imageDomains []string) gin.HandlerFunc {
	csp := ContentSecurityPolicy(imageDomains)
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Content-Security-Policy", csp)
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}
