package filter

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/BinLe1988/tweet-content-filter/pkg/text"
)

// Thesaurus 词干 -> 同义词词干，只读
type Thesaurus struct {
	entries map[string][]string
}

// NewThesaurus 基于给定映射创建同义词表
func NewThesaurus(entries map[string][]string) *Thesaurus {
	copied := make(map[string][]string, len(entries))
	for k, v := range entries {
		copied[k] = append([]string(nil), v...)
	}
	return &Thesaurus{entries: copied}
}

// LoadThesaurus 从 JSON 文件加载同义词表
func LoadThesaurus(path string) (*Thesaurus, error) {
	data, err := readArtifact(path)
	if err != nil {
		return nil, err
	}
	var entries map[string][]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, errors.Wrapf(ErrInvalidArtifact, "thesaurus %s: %v", path, err)
	}
	return &Thesaurus{entries: entries}, nil
}

// Synonyms 未收录的词干返回 nil
func (t *Thesaurus) Synonyms(stem string) []string {
	if t == nil {
		return nil
	}
	return t.entries[stem]
}

// Len 词条数量
func (t *Thesaurus) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// KeywordMatcher 屏蔽词匹配器，文本与屏蔽词使用同一分词器
type KeywordMatcher struct {
	tokenizer *text.Tokenizer
	thesaurus *Thesaurus
}

// NewKeywordMatcher 创建屏蔽词匹配器
func NewKeywordMatcher(tokenizer *text.Tokenizer, thesaurus *Thesaurus) *KeywordMatcher {
	return &KeywordMatcher{tokenizer: tokenizer, thesaurus: thesaurus}
}

// ContainsFilterWords 判断文本的词干中是否包含任何屏蔽词词干（或其同义词）
func (m *KeywordMatcher) ContainsFilterWords(body string, words []string, includeSynonyms bool) (bool, error) {
	if len(words) == 0 {
		return false, nil
	}
	for _, w := range words {
		if strings.TrimSpace(w) == "" {
			return false, ErrInvalidFilterWords
		}
	}

	// 每个屏蔽词只取第一个词干，全部为停用词的屏蔽词不参与匹配
	targets := make(map[string]struct{}, len(words))
	for _, w := range words {
		tokens := m.tokenizer.Tokenize(w)
		if len(tokens) == 0 {
			continue
		}
		targets[tokens[0]] = struct{}{}
	}

	if includeSynonyms {
		stems := make([]string, 0, len(targets))
		for stem := range targets {
			stems = append(stems, stem)
		}
		for _, stem := range stems {
			for _, syn := range m.thesaurus.Synonyms(stem) {
				targets[syn] = struct{}{}
			}
		}
	}

	for _, token := range m.tokenizer.Tokenize(body) {
		if _, ok := targets[token]; ok {
			return true, nil
		}
	}
	return false, nil
}

// CheckFilterWords 面向弱类型输入的入口，参数类型不符时返回类型错误
func (m *KeywordMatcher) CheckFilterWords(body any, words any, includeSynonyms bool) (bool, error) {
	list, err := toStringList(words)
	if err != nil {
		return false, err
	}
	if len(list) == 0 {
		return false, nil
	}
	s, ok := body.(string)
	if !ok {
		return false, ErrInvalidText
	}
	return m.ContainsFilterWords(s, list, includeSynonyms)
}

func toStringList(v any) ([]string, error) {
	switch words := v.(type) {
	case []string:
		return words, nil
	case []any:
		out := make([]string, 0, len(words))
		for _, w := range words {
			s, ok := w.(string)
			if !ok {
				return nil, ErrInvalidFilterWords
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, ErrInvalidFilterWords
	}
}

func readArtifact(path string) ([]byte, error) {
	if path == "" {
		return nil, ErrInvalidPath
	}
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, errors.Wrapf(ErrArtifactNotFound, "the file at the provided path cannot be found: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read artifact %s", path)
	}
	return data, nil
}
