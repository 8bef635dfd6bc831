package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HandlerFunc func(*Context) error
type MiddlewareFunc func(*Context) error

// HttpServer HTTP 服务器封装
type HttpServer struct {
	engine *gin.Engine
	server *http.Server
	port   int
}

// ServerOption 服务器配置选项
type ServerOption func(*HttpServer)

// WithPort 设置端口
func WithPort(port int) ServerOption {
	return func(s *HttpServer) {
		s.port = port
	}
}

// WithMode 设置运行模式
func WithMode(mode string) ServerOption {
	return func(s *HttpServer) {
		gin.SetMode(mode)
	}
}

// NewHttpServer 创建 HTTP 服务器
func NewHttpServer(opts ...ServerOption) *HttpServer {
	server := &HttpServer{
		port: 8080,
	}

	// 应用配置选项，gin 模式需要在 gin.New 之前设置
	for _, opt := range opts {
		opt(server)
	}
	server.engine = gin.New()
	server.engine.Use(gin.Recovery())
	server.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", server.port),
		Handler: server.engine,
	}

	return server
}

// wrapHandler 包装处理函数，处理函数返回的错误统一转成响应
func (s *HttpServer) wrapHandler(handler HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := newContext(c)
		if err := handler(ctx); err != nil {
			ctx.Fail(err)
		}
	}
}

// wrapMiddleware 包装中间件
func (s *HttpServer) wrapMiddleware(middleware MiddlewareFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := newContext(c)
		if err := middleware(ctx); err != nil {
			ctx.Fail(err)
			c.Abort()
			return
		}
		c.Next()
	}
}

// GET 注册 GET 路由
func (s *HttpServer) GET(path string, handler HandlerFunc) {
	s.engine.GET(path, s.wrapHandler(handler))
}

// POST 注册 POST 路由
func (s *HttpServer) POST(path string, handler HandlerFunc) {
	s.engine.POST(path, s.wrapHandler(handler))
}

// Group 创建路由组
func (s *HttpServer) Group(relativePath string, middlewares ...MiddlewareFunc) *RouterGroup {
	ginGroup := s.engine.Group(relativePath)
	for _, middleware := range middlewares {
		ginGroup.Use(s.wrapMiddleware(middleware))
	}
	return &RouterGroup{
		group:  ginGroup,
		server: s,
	}
}

// RouterGroup 路由组封装
type RouterGroup struct {
	group  *gin.RouterGroup
	server *HttpServer
}

// Group 创建子路由组
func (rg *RouterGroup) Group(relativePath string, middlewares ...MiddlewareFunc) *RouterGroup {
	ginGroup := rg.group.Group(relativePath)
	for _, middleware := range middlewares {
		ginGroup.Use(rg.server.wrapMiddleware(middleware))
	}
	return &RouterGroup{
		group:  ginGroup,
		server: rg.server,
	}
}

// GET 路由组 GET 方法
func (rg *RouterGroup) GET(path string, handler HandlerFunc) {
	rg.group.GET(path, rg.server.wrapHandler(handler))
}

// POST 路由组 POST 方法
func (rg *RouterGroup) POST(path string, handler HandlerFunc) {
	rg.group.POST(path, rg.server.wrapHandler(handler))
}

// Use 添加全局中间件
func (s *HttpServer) Use(middlewares ...MiddlewareFunc) {
	for _, middleware := range middlewares {
		s.engine.Use(s.wrapMiddleware(middleware))
	}
}

// Handler 测试中直接配合 httptest 使用
func (s *HttpServer) Handler() http.Handler {
	return s.engine
}

// Start 启动服务器，Shutdown 导致的退出不算错误
func (s *HttpServer) Start() error {
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown 优雅关闭服务器
func (s *HttpServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// GetPort 获取端口
func (s *HttpServer) GetPort() int {
	return s.port
}
