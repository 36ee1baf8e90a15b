package text

import (
	"fmt"
	"strings"

	"github.com/kljensen/snowball"
	porterstemmer "github.com/reiver/go-porterstemmer"
)

// Stemmer 词干提取器接口
type Stemmer interface {
	Stem(word string) string
	Name() string
}

// 词干提取器名称
const (
	StemmerPorter   = "porter"
	StemmerSnowball = "snowball"
)

// NewStemmer 根据名称创建词干提取器
func NewStemmer(name string) (Stemmer, error) {
	switch strings.ToLower(name) {
	case "", StemmerPorter:
		return PorterStemmer{}, nil
	case StemmerSnowball:
		return SnowballStemmer{}, nil
	default:
		return nil, fmt.Errorf("unsupported stemmer: %s", name)
	}
}

// PorterStemmer 经典 Porter 算法，例如 friday -> fridai
type PorterStemmer struct{}

func (PorterStemmer) Name() string { return StemmerPorter }

// Stem 提取词干，算法内部异常时原样返回
func (PorterStemmer) Stem(word string) (stem string) {
	defer func() {
		if r := recover(); r != nil {
			stem = word
		}
	}()
	return porterstemmer.StemString(word)
}

// SnowballStemmer Porter2 英文词干提取
type SnowballStemmer struct{}

func (SnowballStemmer) Name() string { return StemmerSnowball }

func (SnowballStemmer) Stem(word string) string {
	stemmed, err := snowball.Stem(word, "english", true)
	if err != nil {
		return word
	}
	return stemmed
}
