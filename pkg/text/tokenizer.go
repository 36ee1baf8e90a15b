package text

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	tagChars     = regexp.MustCompile(`<([^>]+)>`)
	puncChars    = regexp.MustCompile(`[[:punct:]]+`)
	numericChars = regexp.MustCompile(`[0-9]+`)
)

// DefaultMinLen 短于该长度的词被丢弃
const DefaultMinLen = 3

// Tokenizer 分词器：小写、去标签、去标点、去数字、去停用词、去短词、提取词干
type Tokenizer struct {
	Stemmer   Stemmer
	StopWords WordSet
	MinLen    int
}

// NewTokenizer 创建分词器
func NewTokenizer(stemmer Stemmer) *Tokenizer {
	if stemmer == nil {
		stemmer = PorterStemmer{}
	}
	return &Tokenizer{
		Stemmer:   stemmer,
		StopWords: StopWords,
		MinLen:    DefaultMinLen,
	}
}

// Tokenize 将原始文本切分为词干列表
func (t *Tokenizer) Tokenize(text string) []string {
	s := fold(strings.ToLower(text))
	s = tagChars.ReplaceAllString(s, "")
	s = puncChars.ReplaceAllString(s, " ")
	s = numericChars.ReplaceAllString(s, "")

	fields := strings.Fields(s)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if t.StopWords.Contains(f) {
			continue
		}
		if utf8.RuneCountInString(f) < t.MinLen {
			continue
		}
		out = append(out, t.Stemmer.Stem(f))
	}
	return out
}

// fold 去掉重音等组合符号
func fold(s string) string {
	// transform.Chain 带状态，每次调用都需要新建
	normFunc := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(normFunc, s)
	if err != nil {
		zap.S().Warnf("unicode normalization error: %v", err)
		return s
	}
	return folded
}
