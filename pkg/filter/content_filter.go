package filter

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BinLe1988/tweet-content-filter/pkg/text"
)

// Recorder 决策记录钩子（决策日志、指标等），错误只记录日志
type Recorder interface {
	Record(ctx context.Context, req Request, d Decision) error
}

// ContentFilterService 内容过滤服务
type ContentFilterService struct {
	gate             LanguageGate
	matcher          *KeywordMatcher
	preprocessor     *Preprocessor
	sentiment        *SentimentFilter
	random           *RandomFilter
	cache            *DecisionCache
	recorders        []Recorder
	defaultThreshold float64
}

// Option 服务选项
type Option func(*ContentFilterService)

// WithCache 启用决策缓存
func WithCache(cache *DecisionCache) Option {
	return func(s *ContentFilterService) { s.cache = cache }
}

// WithRecorder 追加决策记录器
func WithRecorder(r Recorder) Option {
	return func(s *ContentFilterService) {
		if r != nil {
			s.recorders = append(s.recorders, r)
		}
	}
}

// WithDefaultThreshold 修改默认阈值
func WithDefaultThreshold(threshold float64) Option {
	return func(s *ContentFilterService) { s.defaultThreshold = threshold }
}

// WithRandomFilter 替换随机过滤器
func WithRandomFilter(r *RandomFilter) Option {
	return func(s *ContentFilterService) { s.random = r }
}

// NewContentFilterService 创建新的内容过滤服务，产物只读共享
func NewContentFilterService(gate LanguageGate, tokenizer *text.Tokenizer, artifacts *Artifacts, opts ...Option) *ContentFilterService {
	s := &ContentFilterService{
		gate:             gate,
		matcher:          NewKeywordMatcher(tokenizer, artifacts.Thesaurus),
		preprocessor:     NewPreprocessor(tokenizer, artifacts.Phrases),
		sentiment:        NewSentimentFilter(artifacts.Classifier),
		random:           NewRandomFilter(nil),
		defaultThreshold: DefaultThreshold,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Cache 返回决策缓存，未启用时为 nil
func (s *ContentFilterService) Cache() *DecisionCache {
	return s.cache
}

// Filter 过滤内容：校验 -> 屏蔽词 -> 预处理 -> 情感分类
func (s *ContentFilterService) Filter(ctx context.Context, req Request) (Decision, error) {
	threshold := req.threshold(s.defaultThreshold)

	key := ""
	if s.cache != nil {
		key = GenerateKey(req, threshold)
		if d, ok := s.cache.Get(key); ok {
			s.record(ctx, req, d)
			return d, nil
		}
	}

	d, err := s.evaluate(ctx, req, threshold)
	if err != nil {
		return Decision{}, err
	}

	s.cache.Set(key, d)
	s.record(ctx, req, d)
	return d, nil
}

func (s *ContentFilterService) evaluate(ctx context.Context, req Request, threshold float64) (Decision, error) {
	// 1. 文本有效性与语言检测
	start := time.Now()
	valid := ValidBody(s.gate, req.Body)
	stageDuration.WithLabelValues("validate").Observe(time.Since(start).Seconds())
	if !valid {
		return Decision{Outcome: OutcomeInvalid, Filter: false, Reason: "text is not valid English"}, nil
	}

	// 2. 屏蔽词匹配
	start = time.Now()
	matched, err := s.matcher.ContainsFilterWords(req.Body, req.FilterWords, req.includeSynonyms())
	stageDuration.WithLabelValues("keywords").Observe(time.Since(start).Seconds())
	if err != nil {
		return Decision{}, err
	}
	if matched {
		return Decision{Outcome: OutcomeKeywordMatch, Filter: true, Reason: "contains filter word"}, nil
	}

	// 3. 短语预处理
	start = time.Now()
	processed := s.preprocessor.Process(req.Body)
	stageDuration.WithLabelValues("preprocess").Observe(time.Since(start).Seconds())

	// 4. 情感分类
	start = time.Now()
	d := s.sentiment.Classify(ctx, processed, threshold)
	stageDuration.WithLabelValues("classify").Observe(time.Since(start).Seconds())
	return d, nil
}

// Random 随机过滤，不经过任何流水线阶段
func (s *ContentFilterService) Random(ctx context.Context, probability *float64) Decision {
	d := s.random.Decide(probability)
	s.record(ctx, Request{Threshold: probability}, d)
	return d
}

// Preprocess 返回预处理后的文本
func (s *ContentFilterService) Preprocess(body string) string {
	return s.preprocessor.Process(body)
}

func (s *ContentFilterService) record(ctx context.Context, req Request, d Decision) {
	for _, r := range s.recorders {
		if err := r.Record(ctx, req, d); err != nil {
			zap.S().Warnf("failed to record decision: %v", err)
		}
	}
}
