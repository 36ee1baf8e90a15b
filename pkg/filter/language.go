package filter

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

// LanguageGate 语言检测接口
type LanguageGate interface {
	IsEnglish(text string) bool
}

// DefaultLanguages 默认参与检测的语言
var DefaultLanguages = []string{"en", "es", "fr", "de", "it", "pt", "nl", "pl"}

var (
	buildLookupOnce   sync.Once
	languageLookupMap map[string]lingua.Language
)

// LinguaGate 基于 lingua 的语言检测
type LinguaGate struct {
	detector lingua.LanguageDetector
}

// NewLinguaGate 创建语言检测器，English 总会被加入候选语言
func NewLinguaGate(languages []string) (*LinguaGate, error) {
	buildLookupOnce.Do(buildLanguageLookupMap)

	seen := map[lingua.Language]struct{}{lingua.English: {}}
	langs := []lingua.Language{lingua.English}
	for _, name := range languages {
		lang, ok := languageLookupMap[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unsupported language: %s", name)
		}
		if _, dup := seen[lang]; dup {
			continue
		}
		seen[lang] = struct{}{}
		langs = append(langs, lang)
	}
	if len(langs) < 2 {
		return nil, fmt.Errorf("language detection needs at least one language besides English")
	}

	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(langs...).
		Build()
	return &LinguaGate{detector: detector}, nil
}

// IsEnglish 检测到的语言为英文时返回 true，无法判断时返回 false
func (g *LinguaGate) IsEnglish(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	lang, ok := g.detector.DetectLanguageOf(text)
	return ok && lang == lingua.English
}

// ValidBody 推文正文必须是字符串且为英文
func ValidBody(gate LanguageGate, body any) bool {
	s, ok := body.(string)
	if !ok {
		return false
	}
	return gate.IsEnglish(s)
}

func buildLanguageLookupMap() {
	allLangs := lingua.AllLanguages()
	languageLookupMap = make(map[string]lingua.Language, len(allLangs)*3)

	for _, lang := range allLangs {
		languageLookupMap[strings.ToLower(lang.String())] = lang
		languageLookupMap[strings.ToLower(lang.IsoCode639_1().String())] = lang
		languageLookupMap[strings.ToLower(lang.IsoCode639_3().String())] = lang
	}
}
