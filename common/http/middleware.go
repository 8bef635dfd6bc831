package http

import (
	"time"

	"github.com/google/uuid"

	"github.com/LXiong/mahjong/common/log"
	"github.com/LXiong/mahjong/common/utils"
)

const headerRequestID = "X-Request-ID"

// CorsMiddleware 跨域中间件
func CorsMiddleware() MiddlewareFunc {
	return func(c *Context) error {
		if c.GetHeader("Origin") != "" {
			c.SetHeader("Access-Control-Allow-Origin", "*")
			c.SetHeader("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			c.SetHeader("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept, X-Request-ID")
			c.SetHeader("Access-Control-Expose-Headers", "Content-Length, Content-Type, X-Request-ID")
		}

		// 处理预检请求
		if c.Method() == "OPTIONS" {
			c.AbortWithStatus(204)
		}
		return nil
	}
}

// RequestIDMiddleware 请求 ID 中间件，客户端未提供时生成 uuid
func RequestIDMiddleware() MiddlewareFunc {
	return func(c *Context) error {
		requestID := c.GetHeader(headerRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.SetHeader(headerRequestID, requestID)
		return nil
	}
}

// LoggerMiddleware 请求完成后记录耗时与状态码
func LoggerMiddleware() MiddlewareFunc {
	return func(c *Context) error {
		start := time.Now()
		c.Next()
		log.Info("HTTP %s %s status=%d latency=%v ip=%s requestID=%s",
			c.Method(), c.Path(), c.StatusCode(), time.Since(start), c.ClientIP(), c.RequestID())
		return nil
	}
}

// RateLimitMiddleware 令牌不足时直接返回 429，不再执行后续处理
func RateLimitMiddleware(limiter *utils.RateLimiter) MiddlewareFunc {
	return func(c *Context) error {
		if !limiter.Allow() {
			log.Warn("HTTP %s %s 被限流 ip=%s requestID=%s", c.Method(), c.Path(), c.ClientIP(), c.RequestID())
			c.TooManyRequests()
			c.Abort()
		}
		return nil
	}
}
