package cache

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
)

// GeneralCache 通用本地缓存，支持 TTL
type GeneralCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

// NewGeneralCache 创建通用缓存
// maxCost: 最大成本，每个条目成本为 1，即最多缓存的条目数
// ttl: 默认过期时间，0 表示不过期
func NewGeneralCache(maxCost int64, ttl time.Duration) (*GeneralCache, error) {
	if maxCost <= 0 {
		return nil, fmt.Errorf("创建 ristretto 缓存失败: maxCost 必须大于 0, got %d", maxCost)
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxCost * 10, // 官方建议为条目数的 10 倍
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("创建 ristretto 缓存失败: %w", err)
	}

	return &GeneralCache{
		cache: cache,
		ttl:   ttl,
	}, nil
}

// Set 设置缓存，使用默认 TTL
func (c *GeneralCache) Set(key string, value interface{}) bool {
	return c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL 设置缓存，指定 TTL
func (c *GeneralCache) SetWithTTL(key string, value interface{}, ttl time.Duration) bool {
	return c.cache.SetWithTTL(key, value, 1, ttl)
}

// Get 获取缓存
func (c *GeneralCache) Get(key string) (interface{}, bool) {
	return c.cache.Get(key)
}

// GetBool 获取布尔缓存
func (c *GeneralCache) GetBool(key string) (bool, bool) {
	value, ok := c.cache.Get(key)
	if !ok {
		return false, false
	}
	b, ok := value.(bool)
	return b, ok
}

// Wait 等待写缓冲落盘，ristretto 的 Set 是异步的
func (c *GeneralCache) Wait() {
	c.cache.Wait()
}

// Delete 删除缓存
func (c *GeneralCache) Delete(key string) {
	c.cache.Del(key)
}

// Close 关闭缓存
func (c *GeneralCache) Close() {
	c.cache.Close()
}
