package models

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/BinLe1988/tweet-content-filter/pkg/filter"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FilterDecision 决策日志，只保存正文哈希
type FilterDecision struct {
	ID                 string    `gorm:"primaryKey;size:36" json:"id"`
	BodyHash           string    `gorm:"size:64;index" json:"body_hash"`
	Outcome            string    `gorm:"size:20;index;not null" json:"outcome"`
	Filter             bool      `gorm:"not null" json:"filter"`
	ConfidencePositive *float64  `json:"confidence_positive"`
	Threshold          *float64  `json:"threshold"`
	FilterWordCount    int       `json:"filter_word_count"`
	Reason             string    `gorm:"size:255" json:"reason,omitempty"`
	CreatedAt          time.Time `gorm:"index" json:"created_at"`
}

// TableName 指定表名
func (FilterDecision) TableName() string {
	return "filter_decisions"
}

// BeforeCreate 生成主键
func (d *FilterDecision) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// NewFilterDecision 由请求与决策生成日志记录
func NewFilterDecision(req filter.Request, d filter.Decision) *FilterDecision {
	record := &FilterDecision{
		Outcome:            string(d.Outcome),
		Filter:             d.Filter,
		ConfidencePositive: d.ConfidencePositive,
		Threshold:          req.Threshold,
		FilterWordCount:    len(req.FilterWords),
		Reason:             truncate(d.Reason, 255),
	}
	if req.Body != "" {
		sum := sha256.Sum256([]byte(req.Body))
		record.BodyHash = hex.EncodeToString(sum[:])
	}
	return record
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
