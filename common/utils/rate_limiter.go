package utils

import (
	"sync"
	"time"
)

// RateLimiter 令牌桶限流器，网关用它限制分析接口的请求速率
type RateLimiter struct {
	rate       float64
	capacity   float64
	tokens     float64
	lastRefill time.Time
	now        func() time.Time
	mu         sync.Mutex
}

// NewRateLimiter 创建一个新的限流器
// rate: 每秒补充的令牌数
// burst: 桶的容量，即允许的突发请求数，小于 1 时按 1 处理
func NewRateLimiter(rate float64, burst int) *RateLimiter {
	return newRateLimiter(rate, burst, time.Now)
}

func newRateLimiter(rate float64, burst int, now func() time.Time) *RateLimiter {
	capacity := float64(max(burst, 1))
	return &RateLimiter{
		rate:       rate,
		capacity:   capacity,
		tokens:     capacity, // 初始是满桶
		lastRefill: now(),
		now:        now,
	}
}

// Allow 判断当前请求是否允许通过
// 返回 true 表示允许，false 表示拒绝
func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.refill()
	if rl.tokens >= 1.0 {
		rl.tokens -= 1.0
		return true
	}
	return false
}

// Tokens 当前剩余令牌数
func (rl *RateLimiter) Tokens() float64 {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.refill()
	return rl.tokens
}

// refill 按距离上次填充的时间补充令牌，不超过桶的容量
func (rl *RateLimiter) refill() {
	now := rl.now()
	elapsed := now.Sub(rl.lastRefill).Seconds()
	rl.tokens = min(rl.capacity, rl.tokens+elapsed*rl.rate)
	rl.lastRefill = now
}
