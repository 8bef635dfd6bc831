package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/arl/statsviz"
)

// Serve 可视化实时监控 /debug/statsviz，ctx 取消时关闭
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	if err := statsviz.Register(mux); err != nil {
		return err
	}
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
