package filter

import (
	"math/rand"
)

// RandomFilter 随机过滤基线，用于 A/B 实验
type RandomFilter struct {
	draw func() float64
}

// NewRandomFilter draw 为 nil 时使用全局随机源，取值范围 [0,1)
func NewRandomFilter(draw func() float64) *RandomFilter {
	if draw == nil {
		draw = rand.Float64
	}
	return &RandomFilter{draw: draw}
}

// Decide 以 probability 的概率过滤，未指定时从不过滤
func (f *RandomFilter) Decide(probability *float64) Decision {
	p := 0.0
	if probability != nil {
		p = *probability
	}
	zero := 0.0
	return Decision{
		Outcome:            OutcomeRandom,
		Filter:             f.draw() < p,
		ConfidencePositive: &zero,
	}
}
