package filter

// Outcome 决策所处的终止状态
type Outcome string

const (
	// OutcomeInvalid 文本无效或非英文，不过滤
	OutcomeInvalid Outcome = "invalid"
	// OutcomeKeywordMatch 命中屏蔽词，直接过滤
	OutcomeKeywordMatch Outcome = "keyword_match"
	// OutcomeDecided 情感模型给出结论
	OutcomeDecided Outcome = "decided"
	// OutcomeDegraded 模型推理失败，降级为不过滤
	OutcomeDegraded Outcome = "degraded"
	// OutcomeRandom 随机过滤基线
	OutcomeRandom Outcome = "random"
)

// DefaultThreshold 未指定阈值时使用
const DefaultThreshold = 0.5

// Decision 过滤决策
type Decision struct {
	Outcome            Outcome  `json:"outcome"`
	Filter             bool     `json:"filter"`
	ConfidencePositive *float64 `json:"confidence_positive"`
	Reason             string   `json:"reason,omitempty"`
}

// Degraded 是否为降级结果
func (d Decision) Degraded() bool {
	return d.Outcome == OutcomeDegraded
}

// Confidence 返回正面情感置信度，未进入分类阶段时 ok 为 false
func (d Decision) Confidence() (float64, bool) {
	if d.ConfidencePositive == nil {
		return 0, false
	}
	return *d.ConfidencePositive, true
}

func decided(filter bool, prob float64) Decision {
	return Decision{Outcome: OutcomeDecided, Filter: filter, ConfidencePositive: &prob}
}

func degraded(reason string) Decision {
	zero := 0.0
	return Decision{Outcome: OutcomeDegraded, Filter: false, ConfidencePositive: &zero, Reason: reason}
}

// Request 过滤请求
type Request struct {
	Body            string
	Threshold       *float64
	FilterWords     []string
	IncludeSynonyms *bool
}

// threshold 返回阈值，未指定时使用默认值
func (r Request) threshold(def float64) float64 {
	if r.Threshold == nil {
		return def
	}
	return *r.Threshold
}

func (r Request) includeSynonyms() bool {
	return r.IncludeSynonyms == nil || *r.IncludeSynonyms
}
