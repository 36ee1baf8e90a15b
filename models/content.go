package models

import (
	"github.com/BinLe1988/tweet-content-filter/pkg/filter"
)

// FilterRequest 推文过滤请求
type FilterRequest struct {
	Body            *string  `json:"body" binding:"required"`
	Threshold       *float64 `json:"threshold" binding:"omitempty,gte=0,lte=1"`
	FilterWords     []string `json:"filter_words" binding:"omitempty,dive,required"`
	IncludeSynonyms *bool    `json:"include_synonyms"`
}

// ToFilterRequest 转换为过滤流水线请求
func (r *FilterRequest) ToFilterRequest() filter.Request {
	req := filter.Request{
		Threshold:       r.Threshold,
		FilterWords:     r.FilterWords,
		IncludeSynonyms: r.IncludeSynonyms,
	}
	if r.Body != nil {
		req.Body = *r.Body
	}
	return req
}

// RandomFilterRequest 随机过滤请求
type RandomFilterRequest struct {
	Threshold *float64 `json:"threshold" binding:"omitempty,gte=0,lte=1"`
}

// FilteredContent 过滤结果，未进入分类阶段时 confidence_positive 为 null
type FilteredContent struct {
	Filter             bool     `json:"filter"`
	ConfidencePositive *float64 `json:"confidence_positive"`
}

// NewFilteredContent 由决策生成响应
func NewFilteredContent(d filter.Decision) FilteredContent {
	return FilteredContent{
		Filter:             d.Filter,
		ConfidencePositive: d.ConfidencePositive,
	}
}

// TokenRequest 客户端令牌请求
type TokenRequest struct {
	ClientID     string `json:"client_id" binding:"required"`
	ClientSecret string `json:"client_secret" binding:"required"`
}
