package middleware

import (
	log "github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/user/cinewish/internal/model"
	"github.com/user/cinewish/internal/service"
)

const sessionUserKey = "session_user"

// RequireSession 页面登录守卫：无会话时交给 denied 渲染拒绝页，有会话时写入上下文
func RequireSession(sessions service.SessionProvider, denied gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := sessions.GetSession(c)
		if err != nil {
			// 页面请求把读取失败视为未登录
			log.Errorf("[Auth] 读取会话失败 %s: %v", c.Request.URL.Path, err)
			user = nil
		}

		if user == nil {
			denied(c)
			c.Abort()
			return
		}

		c.Set(sessionUserKey, user)
		c.Next()
	}
}

// GetSessionUser 从上下文获取守卫写入的会话用户（未登录返回 nil）
func GetSessionUser(c *gin.Context) *model.SessionUser {
	if v, exists := c.Get(sessionUserKey); exists {
		if user, ok := v.(*model.SessionUser); ok {
			return user
		}
	}
	return nil
}
