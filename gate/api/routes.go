package api

import (
	"github.com/LXiong/mahjong/common/http"
)

// RegisterRoutes 注册所有路由，middlewares 只作用于 /api/v1 分析接口
func RegisterRoutes(server *http.HttpServer, h *HandHandler, middlewares ...http.MiddlewareFunc) {
	server.GET("/ping", PingHandler)
	server.GET("/health", h.HealthHandler)

	// API v1 路由组
	v1 := server.Group("/api/v1", middlewares...)
	{
		hand := v1.Group("/hand")
		{
			hand.POST("/match", h.MatchHandler)
			hand.POST("/decompose", h.DecomposeHandler)
			hand.POST("/discard", h.DiscardHandler)
			hand.POST("/changings", h.ChangingsHandler)
			hand.POST("/waits", h.WaitsHandler)
		}
	}
}
