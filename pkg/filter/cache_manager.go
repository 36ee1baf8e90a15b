package filter

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// CacheStats 缓存统计信息
type CacheStats struct {
	// 当前缓存大小
	Size int

	// 命中次数
	Hits int64

	// 未命中次数
	Misses int64

	// 淘汰次数
	Evictions int64

	// 命中率
	HitRate float64
}

// DecisionCache 决策缓存，相同请求在模型不变时结果相同
type DecisionCache struct {
	data *expirable.LRU[string, Decision]

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64

	mu               sync.RWMutex
	evictionCallback func(string, Decision)
}

// NewDecisionCache 创建决策缓存，maxEntries <= 0 时返回 nil（不缓存）
func NewDecisionCache(maxEntries int, ttl time.Duration) *DecisionCache {
	if maxEntries <= 0 {
		return nil
	}
	cm := &DecisionCache{}
	cm.data = expirable.NewLRU[string, Decision](maxEntries, cm.onEvict, ttl)
	return cm
}

func (cm *DecisionCache) onEvict(key string, value Decision) {
	cm.evictions.Add(1)
	cm.mu.RLock()
	callback := cm.evictionCallback
	cm.mu.RUnlock()
	if callback != nil {
		callback(key, value)
	}
}

// SetEvictionCallback 设置条目淘汰回调
func (cm *DecisionCache) SetEvictionCallback(callback func(string, Decision)) {
	if cm == nil {
		return
	}
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.evictionCallback = callback
}

// GenerateKey 生成缓存键
func GenerateKey(req Request, threshold float64) string {
	hasher := sha256.New()
	writeField(hasher, req.Body)

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], math.Float64bits(threshold))
	hasher.Write(buf[:])

	if req.includeSynonyms() {
		hasher.Write([]byte{1})
	} else {
		hasher.Write([]byte{0})
	}
	for _, w := range req.FilterWords {
		writeField(hasher, w)
	}
	return hex.EncodeToString(hasher.Sum(nil))
}

// writeField 写入长度前缀，避免字段拼接产生歧义
func writeField(h interface{ Write([]byte) (int, error) }, s string) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(len(s)))
	h.Write(buf[:])
	h.Write([]byte(s))
}

// Get 获取缓存条目
func (cm *DecisionCache) Get(key string) (Decision, bool) {
	if cm == nil {
		return Decision{}, false
	}
	d, ok := cm.data.Get(key)
	if ok {
		cm.hits.Add(1)
		cacheRequests.WithLabelValues("hit").Inc()
	} else {
		cm.misses.Add(1)
		cacheRequests.WithLabelValues("miss").Inc()
	}
	return d, ok
}

// Set 设置缓存条目，降级结果不缓存
func (cm *DecisionCache) Set(key string, d Decision) {
	if cm == nil || d.Degraded() {
		return
	}
	cm.data.Add(key, d)
}

// Clear 清空缓存
func (cm *DecisionCache) Clear() {
	if cm == nil {
		return
	}
	cm.data.Purge()
	cm.hits.Store(0)
	cm.misses.Store(0)
	cm.evictions.Store(0)
}

// GetStats 获取缓存统计信息
func (cm *DecisionCache) GetStats() CacheStats {
	if cm == nil {
		return CacheStats{}
	}
	stats := CacheStats{
		Size:      cm.data.Len(),
		Hits:      cm.hits.Load(),
		Misses:    cm.misses.Load(),
		Evictions: cm.evictions.Load(),
	}
	if total := stats.Hits + stats.Misses; total > 0 {
		stats.HitRate = float64(stats.Hits) / float64(total)
	}
	return stats
}
