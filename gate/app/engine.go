package app

import (
	"fmt"

	"github.com/LXiong/mahjong/common/cache"
	"github.com/LXiong/mahjong/common/config"
	"github.com/LXiong/mahjong/framework/game/engines/mahjong"
)

// NewSearcher 按配置创建和牌类型与结果缓存
func NewSearcher(cfg config.EngineConf) (*mahjong.Searcher, error) {
	winTypes, err := mahjong.NewWinTypes(cfg.WinTypes, mahjong.WinTypeOptions{
		AllowDuplicatePairs: cfg.AllowDuplicatePairs,
		ConcealedQuads:      cfg.ConcealedQuads,
	})
	if err != nil {
		return nil, err
	}

	opts := []mahjong.SearcherOption{
		mahjong.WithWinTypes(winTypes...),
		mahjong.WithWorkers(cfg.Workers),
	}
	if cfg.Cache.Enabled() {
		c, err := cache.NewGeneralCache(cfg.Cache.MaxCost, cfg.Cache.TTL())
		if err != nil {
			return nil, fmt.Errorf("创建结果缓存失败: %w", err)
		}
		opts = append(opts, mahjong.WithCache(c))
	}
	return mahjong.NewSearcher(opts...), nil
}
