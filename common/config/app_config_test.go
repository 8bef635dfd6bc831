package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
appName: gate
httpPort: 9000
metricPort: 9001
log:
  level: debug
rateLimit:
  rate: 20
  burst: 40
engine:
  winTypes: [normal, sevenPairs, knittedHonors]
  allowDuplicatePairs: true
  maxChangeCount: 1
  workers: 3
  cache:
    maxCost: 1024
    ttlSeconds: 30
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gate", cfg.AppName)
	assert.Equal(t, 9000, cfg.HttpPort)
	assert.Equal(t, 9001, cfg.MetricPort)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.RateLimit.Enabled())
	assert.Equal(t, 40, cfg.RateLimit.Burst)
	assert.Equal(t, []string{"normal", "sevenPairs", "knittedHonors"}, cfg.Engine.WinTypes)
	assert.True(t, cfg.Engine.AllowDuplicatePairs)
	assert.False(t, cfg.Engine.ConcealedQuads)
	assert.Equal(t, 1, cfg.Engine.MaxChangeCount)
	assert.Equal(t, 3, cfg.Engine.Workers)
	assert.Equal(t, int64(1024), cfg.Engine.Cache.MaxCost)
	assert.Equal(t, 30*time.Second, cfg.Engine.Cache.TTL())
	assert.True(t, cfg.Engine.Cache.Enabled())
	assert.Same(t, cfg, Current())
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "appName: gate\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HttpPort)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, []string{"normal", "sevenPairs", "thirteenOrphans"}, cfg.Engine.WinTypes)
	assert.Equal(t, 2, cfg.Engine.MaxChangeCount)
	assert.Equal(t, runtime.NumCPU(), cfg.Engine.Workers)
	assert.Equal(t, 600*time.Second, cfg.Engine.Cache.TTL())
	assert.False(t, cfg.RateLimit.Enabled())
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"unknown win type", "engine:\n  winTypes: [normal, riichi]\n"},
		{"negative change count", "engine:\n  maxChangeCount: -1\n"},
		{"bad port", "httpPort: 70000\n"},
		{"negative cache", "engine:\n  cache:\n    maxCost: -5\n"},
		{"negative rate limit", "rateLimit:\n  rate: -1\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestCacheDisabled(t *testing.T) {
	path := writeConfig(t, "engine:\n  cache:\n    maxCost: 0\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.Engine.Cache.Enabled())
}

func TestWatch(t *testing.T) {
	path := writeConfig(t, "engine:\n  maxChangeCount: 1\n")
	_, err := Load(path)
	require.NoError(t, err)

	changed := make(chan int, 16)
	require.NoError(t, Watch(path, func(cfg *AppConfig) {
		select {
		case changed <- cfg.Engine.MaxChangeCount:
		default:
		}
	}, nil))

	require.NoError(t, os.WriteFile(path, []byte("engine:\n  maxChangeCount: 3\n"), 0o644))

	// 一次写入可能触发多个事件（截断、写入），等到最终内容生效
	timeout := time.After(5 * time.Second)
	for {
		select {
		case n := <-changed:
			if n == 3 {
				return
			}
		case <-timeout:
			t.Fatal("config change not observed")
		}
	}
}
