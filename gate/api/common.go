package api

import (
	"time"

	"github.com/LXiong/mahjong/common/http"
)

// PingHandler ping 检查
func PingHandler(c *http.Context) error {
	c.Success(map[string]interface{}{
		"message":   "pong",
		"timestamp": time.Now().Unix(),
		"service":   "gate",
	})
	return nil
}

// HealthHandler 健康检查，附带当前启用的和牌类型
func (h *HandHandler) HealthHandler(c *http.Context) error {
	names := make([]string, 0, len(h.searcher.WinTypes()))
	for _, wt := range h.searcher.WinTypes() {
		names = append(names, wt.Name())
	}
	c.Success(map[string]interface{}{
		"healthy":        true,
		"winTypes":       names,
		"maxChangeCount": h.MaxChangeCount(),
		"timestamp":      time.Now().Unix(),
	})
	return nil
}
