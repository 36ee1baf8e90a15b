package filter

import (
	"time"

	"go.uber.org/zap"
)

// MonitorConfig 监控配置
type MonitorConfig struct {
	// 监控间隔
	Interval time.Duration

	// 命中率低于该值时告警
	HitRateMin float64

	// 告警回调
	AlertCallback func(alert string)
}

// CacheMonitor 缓存监控服务，定期输出统计并更新指标
type CacheMonitor struct {
	cache    *DecisionCache
	config   MonitorConfig
	stopChan chan struct{}
	logger   *zap.SugaredLogger
}

// NewCacheMonitor 创建缓存监控服务
func NewCacheMonitor(cache *DecisionCache, config MonitorConfig) *CacheMonitor {
	if config.Interval <= 0 {
		config.Interval = time.Minute
	}
	monitor := &CacheMonitor{
		cache:    cache,
		config:   config,
		stopChan: make(chan struct{}),
		logger:   zap.S().Named("cache-monitor"),
	}
	cache.SetEvictionCallback(monitor.handleEviction)
	return monitor
}

// Start 启动监控服务
func (m *CacheMonitor) Start() {
	go m.monitorLoop()
}

// Stop 停止监控服务
func (m *CacheMonitor) Stop() {
	close(m.stopChan)
}

func (m *CacheMonitor) monitorLoop() {
	ticker := time.NewTicker(m.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.check()
		case <-m.stopChan:
			return
		}
	}
}

// check 输出一次统计，必要时告警
func (m *CacheMonitor) check() CacheStats {
	stats := m.cache.GetStats()
	cacheSize.Set(float64(stats.Size))
	m.logger.Infow("decision cache stats",
		"size", stats.Size,
		"hits", stats.Hits,
		"misses", stats.Misses,
		"evictions", stats.Evictions,
		"hit_rate", stats.HitRate,
	)

	if m.config.HitRateMin > 0 && stats.Hits+stats.Misses > 0 && stats.HitRate < m.config.HitRateMin {
		alert := "decision cache hit rate below threshold"
		m.logger.Warnw(alert, "hit_rate", stats.HitRate, "min", m.config.HitRateMin)
		if m.config.AlertCallback != nil {
			m.config.AlertCallback(alert)
		}
	}
	return stats
}

func (m *CacheMonitor) handleEviction(key string, _ Decision) {
	m.logger.Debugw("decision evicted", "key", key)
}
