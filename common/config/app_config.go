package config

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// 已知的和牌类型名称，与引擎中注册的保持一致
var knownWinTypes = map[string]bool{
	"normal":          true,
	"sevenPairs":      true,
	"thirteenOrphans": true,
	"knittedHonors":   true,
}

var (
	mu      sync.RWMutex
	current *AppConfig
)

type AppConfig struct {
	AppName    string        `mapstructure:"appName"`
	HttpPort   int           `mapstructure:"httpPort"`
	MetricPort int           `mapstructure:"metricPort"`
	Log        LogConf       `mapstructure:"log"`
	RateLimit  RateLimitConf `mapstructure:"rateLimit"`
	Engine     EngineConf    `mapstructure:"engine"`
}

type LogConf struct {
	Level string `mapstructure:"level"`
}

// RateLimitConf 分析接口限流，rate 为 0 时不限流
type RateLimitConf struct {
	Rate  float64 `mapstructure:"rate"`
	Burst int     `mapstructure:"burst"`
}

func (c RateLimitConf) Enabled() bool {
	return c.Rate > 0
}

type EngineConf struct {
	WinTypes            []string  `mapstructure:"winTypes"`
	AllowDuplicatePairs bool      `mapstructure:"allowDuplicatePairs"`
	ConcealedQuads      bool      `mapstructure:"concealedQuads"`
	MaxChangeCount      int       `mapstructure:"maxChangeCount"`
	Workers             int       `mapstructure:"workers"`
	Cache               CacheConf `mapstructure:"cache"`
}

type CacheConf struct {
	MaxCost    int64 `mapstructure:"maxCost"`
	TtlSeconds int   `mapstructure:"ttlSeconds"`
}

// TTL 缓存过期时间，0 表示不过期
func (c CacheConf) TTL() time.Duration {
	return time.Duration(c.TtlSeconds) * time.Second
}

// Enabled maxCost 为 0 时不启用缓存
func (c CacheConf) Enabled() bool {
	return c.MaxCost > 0
}

func newViper(configFile string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(configFile)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("appName", "mahjong")
	v.SetDefault("httpPort", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("engine.winTypes", []string{"normal", "sevenPairs", "thirteenOrphans"})
	v.SetDefault("engine.maxChangeCount", 2)
	v.SetDefault("engine.cache.maxCost", 1<<16)
	v.SetDefault("engine.cache.ttlSeconds", 600)
	return v
}

func decode(v *viper.Viper) (*AppConfig, error) {
	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 校验配置，并补齐 workers 默认值
func (cfg *AppConfig) Validate() error {
	if cfg.HttpPort < 0 || cfg.HttpPort > 65535 {
		return fmt.Errorf("httpPort 非法: %d", cfg.HttpPort)
	}
	if cfg.MetricPort < 0 || cfg.MetricPort > 65535 {
		return fmt.Errorf("metricPort 非法: %d", cfg.MetricPort)
	}
	if cfg.RateLimit.Rate < 0 || cfg.RateLimit.Burst < 0 {
		return fmt.Errorf("rateLimit 配置非法: %+v", cfg.RateLimit)
	}
	if len(cfg.Engine.WinTypes) == 0 {
		return fmt.Errorf("engine.winTypes 不能为空")
	}
	for _, name := range cfg.Engine.WinTypes {
		if !knownWinTypes[name] {
			return fmt.Errorf("engine.winTypes 包含未知的和牌类型: %s", name)
		}
	}
	if cfg.Engine.MaxChangeCount < 0 {
		return fmt.Errorf("engine.maxChangeCount 不能为负数: %d", cfg.Engine.MaxChangeCount)
	}
	if cfg.Engine.Cache.MaxCost < 0 || cfg.Engine.Cache.TtlSeconds < 0 {
		return fmt.Errorf("engine.cache 配置非法: %+v", cfg.Engine.Cache)
	}
	if cfg.Engine.Workers <= 0 {
		cfg.Engine.Workers = runtime.NumCPU()
	}
	return nil
}

// Load 读取并校验配置文件，成功后替换当前配置
func Load(configFile string) (*AppConfig, error) {
	v := newViper(configFile)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}
	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	set(cfg)
	return cfg, nil
}

// Watch 监听配置文件变化，校验通过的新配置会替换当前配置并回调 onChange，
// 校验失败时保留旧配置并回调 onError
func Watch(configFile string, onChange func(*AppConfig), onError func(error)) error {
	v := newViper(configFile)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("读取配置文件失败: %w", err)
	}
	v.OnConfigChange(func(in fsnotify.Event) {
		if !in.Has(fsnotify.Write) && !in.Has(fsnotify.Create) {
			return
		}
		cfg, err := decode(v)
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		set(cfg)
		if onChange != nil {
			onChange(cfg)
		}
	})
	v.WatchConfig()
	return nil
}

// Current 当前生效的配置，未加载时为 nil
func Current() *AppConfig {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

func set(cfg *AppConfig) {
	mu.Lock()
	current = cfg
	mu.Unlock()
}
