package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/user/cinewish/internal/metrics"
	"github.com/user/cinewish/internal/utils"
	"golang.org/x/time/rate"
)

// RateLimiter 按客户端 IP 的令牌桶限流
type RateLimiter struct {
	limiters *cache.Cache
	rps      rate.Limit
	burst    int
}

// NewRateLimiter 10 分钟无请求的客户端桶会被回收
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		limiters: cache.New(10*time.Minute, 20*time.Minute),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

// Allow 消耗 key 对应桶的一个令牌
func (l *RateLimiter) Allow(key string) bool {
	return l.limiter(key).Allow()
}

func (l *RateLimiter) limiter(key string) *rate.Limiter {
	if v, ok := l.limiters.Get(key); ok {
		lim := v.(*rate.Limiter)
		l.limiters.SetDefault(key, lim)
		return lim
	}

	lim := rate.NewLimiter(l.rps, l.burst)
	if err := l.limiters.Add(key, lim, cache.DefaultExpiration); err != nil {
		// 并发下已被其他请求创建
		if v, ok := l.limiters.Get(key); ok {
			return v.(*rate.Limiter)
		}
	}
	return lim
}

// RateLimit 超出限制返回 429
func RateLimit(l *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(utils.HashIP(c.ClientIP())) {
			metrics.RateLimitRejected.WithLabelValues(c.FullPath()).Inc()
			utils.TooManyRequests(c)
			return
		}
		c.Next()
	}
}
