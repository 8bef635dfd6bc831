package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LXiong/mahjong/common/config"
	"github.com/LXiong/mahjong/common/http"
	"github.com/LXiong/mahjong/common/log"
	"github.com/LXiong/mahjong/common/utils"
	"github.com/LXiong/mahjong/gate/api"
)

// NewServer 组装 HTTP 服务器与路由
func NewServer(cfg *config.AppConfig, handler *api.HandHandler) *http.HttpServer {
	mode := "release"
	if cfg.Log.Level == "debug" {
		mode = "debug"
	}
	server := http.NewHttpServer(
		http.WithPort(cfg.HttpPort),
		http.WithMode(mode),
	)

	// 中间处理器注册
	server.Use(
		http.RequestIDMiddleware(),
		http.CorsMiddleware(),
		http.LoggerMiddleware(),
	)

	// 路由注册，限流只作用于分析接口
	var apiMiddlewares []http.MiddlewareFunc
	if cfg.RateLimit.Enabled() {
		apiMiddlewares = append(apiMiddlewares, http.RateLimitMiddleware(utils.NewRateLimiter(cfg.RateLimit.Rate, cfg.RateLimit.Burst)))
	}
	api.RegisterRoutes(server, handler, apiMiddlewares...)
	return server
}

// Run 启动网关，configFile 变化时只热更新换牌张数上限，其余配置需要重启
func Run(ctx context.Context, configFile string, cfg *config.AppConfig) error {
	searcher, err := NewSearcher(cfg.Engine)
	if err != nil {
		return err
	}
	handler := api.NewHandHandler(searcher, cfg.Engine.MaxChangeCount)
	server := NewServer(cfg, handler)

	err = config.Watch(configFile, func(next *config.AppConfig) {
		handler.SetMaxChangeCount(next.Engine.MaxChangeCount)
		log.Info("配置已更新: maxChangeCount=%d", next.Engine.MaxChangeCount)
	}, func(err error) {
		log.Warn("忽略非法的配置更新: %v", err)
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("启动 HTTP 服务器，端口: %d", cfg.HttpPort)
		if err := server.Start(); err != nil {
			errCh <- err
		}
	}()

	stop := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP 服务器关闭失败: %v", err)
		} else {
			log.Info("HTTP 服务器已优雅关闭")
		}
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT, syscall.SIGHUP)
	defer signal.Stop(c)
	for {
		select {
		case <-ctx.Done():
			stop()
			return nil
		case err := <-errCh:
			return err
		case s := <-c:
			switch s {
			case syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGINT:
				stop()
				log.Info("中断信号，服务停止")
				return nil
			case syscall.SIGHUP:
				stop()
				log.Info("挂起信号，服务停止")
				return nil
			default:
				return nil
			}
		}
	}
}
