package database

import (
	"context"

	"github.com/BinLe1988/tweet-content-filter/models"
	"github.com/BinLe1988/tweet-content-filter/pkg/filter"

	"gorm.io/gorm"
)

// DefaultRecentLimit 查询最近决策的默认条数
const DefaultRecentLimit = 50

// MaxRecentLimit 查询最近决策的最大条数
const MaxRecentLimit = 500

// DecisionStore 决策日志存储
type DecisionStore struct {
	db *gorm.DB
}

// NewDecisionStore 创建决策日志存储
func NewDecisionStore(db *gorm.DB) *DecisionStore {
	return &DecisionStore{db: db}
}

// Record 保存一条决策，实现 filter.Recorder
func (s *DecisionStore) Record(ctx context.Context, req filter.Request, d filter.Decision) error {
	return s.db.WithContext(ctx).Create(models.NewFilterDecision(req, d)).Error
}

// Recent 按时间倒序返回最近的决策
func (s *DecisionStore) Recent(ctx context.Context, limit int) ([]models.FilterDecision, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}

	var decisions []models.FilterDecision
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&decisions).Error
	return decisions, err
}

// CountByOutcome 按结果统计决策数量
func (s *DecisionStore) CountByOutcome(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Outcome string
		Count   int64
	}
	err := s.db.WithContext(ctx).
		Model(&models.FilterDecision{}).
		Select("outcome, count(*) as count").
		Group("outcome").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.Outcome] = r.Count
	}
	return counts, nil
}
