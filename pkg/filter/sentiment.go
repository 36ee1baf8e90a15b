package filter

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Classifier 情感分类器接口，返回 [负面概率, 正面概率]
type Classifier interface {
	PredictProba(ctx context.Context, text string) ([]float64, error)
}

// ClassifierFunc 函数形式的分类器
type ClassifierFunc func(ctx context.Context, text string) ([]float64, error)

func (f ClassifierFunc) PredictProba(ctx context.Context, text string) ([]float64, error) {
	return f(ctx, text)
}

// Calibration 将线性得分映射为概率: sigmoid(A*score + B)
type Calibration struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// LinearModel 预训练的线性情感模型（tf-idf 特征 + 概率校准）
type LinearModel struct {
	Classes     []string           `json:"classes"`
	Intercept   float64            `json:"intercept"`
	Weights     map[string]float64 `json:"weights"`
	IDF         map[string]float64 `json:"idf"`
	SublinearTF bool               `json:"sublinear_tf"`
	Normalize   bool               `json:"normalize"`
	Calibration *Calibration       `json:"calibration"`
}

// LoadLinearModel 从 JSON 文件加载情感模型
func LoadLinearModel(path string) (*LinearModel, error) {
	data, err := readArtifact(path)
	if err != nil {
		return nil, err
	}
	var m LinearModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(ErrInvalidArtifact, "sentiment model %s: %v", path, err)
	}
	if len(m.Classes) != 2 {
		return nil, errors.Wrapf(ErrInvalidArtifact, "sentiment model %s: want 2 classes, got %d", path, len(m.Classes))
	}
	if m.Calibration == nil {
		m.Calibration = &Calibration{A: 1}
	}
	return &m, nil
}

// PredictProba 计算 [负面, 正面] 概率
func (m *LinearModel) PredictProba(ctx context.Context, processed string) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	counts := make(map[string]float64)
	for _, tok := range strings.Fields(processed) {
		counts[tok]++
	}

	features := make(map[string]float64, len(counts))
	var norm float64
	for tok, tf := range counts {
		if m.SublinearTF {
			tf = 1 + math.Log(tf)
		}
		idf, ok := m.IDF[tok]
		if !ok {
			idf = 1
		}
		v := tf * idf
		features[tok] = v
		norm += v * v
	}
	if m.Normalize && norm > 0 {
		norm = math.Sqrt(norm)
		for tok := range features {
			features[tok] /= norm
		}
	}

	score := m.Intercept
	for tok, v := range features {
		score += m.Weights[tok] * v
	}

	cal := m.Calibration
	if cal == nil {
		cal = &Calibration{A: 1}
	}
	pos := 1 / (1 + math.Exp(-(cal.A*score + cal.B)))
	return []float64{1 - pos, pos}, nil
}

// SentimentFilter 情感过滤，推理失败时降级为不过滤
type SentimentFilter struct {
	classifier Classifier
}

// NewSentimentFilter 创建情感过滤器
func NewSentimentFilter(classifier Classifier) *SentimentFilter {
	return &SentimentFilter{classifier: classifier}
}

// Classify 正面概率小于等于阈值时过滤
func (f *SentimentFilter) Classify(ctx context.Context, processed string, threshold float64) (d Decision) {
	defer func() {
		if r := recover(); r != nil {
			zap.S().Warnf("sentiment classifier panicked: %v", r)
			d = degraded(fmt.Sprintf("classifier panic: %v", r))
		}
	}()

	probs, err := f.classifier.PredictProba(ctx, processed)
	if err != nil {
		zap.S().Warnf("an error occurred during classification: %v", err)
		return degraded(err.Error())
	}
	if len(probs) < 2 || math.IsNaN(probs[1]) {
		err := errors.Wrapf(ErrUnexpectedShape, "predict_proba returned %v", probs)
		zap.S().Warnf("index error with classifier response: %v", err)
		return degraded(err.Error())
	}

	prob := probs[1]
	return decided(prob <= threshold, prob)
}
