package filter

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"

	"github.com/BinLe1988/tweet-content-filter/pkg/text"
)

// DefaultPhraseDelimiter 二元短语连接符
const DefaultPhraseDelimiter = "_"

// PhraseModel 预训练的二元短语模型，只读
type PhraseModel struct {
	Delimiter string             `json:"delimiter"`
	Threshold float64            `json:"threshold"`
	Phrases   map[string]float64 `json:"phrases"`
}

// LoadPhraseModel 从 JSON 文件加载短语模型
func LoadPhraseModel(path string) (*PhraseModel, error) {
	data, err := readArtifact(path)
	if err != nil {
		return nil, err
	}
	var m PhraseModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(ErrInvalidArtifact, "phrase model %s: %v", path, err)
	}
	if m.Delimiter == "" {
		m.Delimiter = DefaultPhraseDelimiter
	}
	return &m, nil
}

// Apply 从左到右贪心合并相邻词，得分高于阈值的词对合并为一个词，合并后的词不再参与合并
func (m *PhraseModel) Apply(tokens []string) []string {
	if m == nil || len(m.Phrases) == 0 {
		return tokens
	}
	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		if i+1 < len(tokens) {
			phrase := tokens[i] + m.Delimiter + tokens[i+1]
			if score, ok := m.Phrases[phrase]; ok && score > m.Threshold {
				out = append(out, phrase)
				i++
				continue
			}
		}
		out = append(out, tokens[i])
	}
	return out
}

// Preprocessor 分词、去停用词并合并短语
type Preprocessor struct {
	tokenizer *text.Tokenizer
	stop      text.WordSet
	model     *PhraseModel
}

// NewPreprocessor 创建预处理器
func NewPreprocessor(tokenizer *text.Tokenizer, model *PhraseModel) *Preprocessor {
	return &Preprocessor{tokenizer: tokenizer, stop: text.FullStop, model: model}
}

// Process 返回以空格分隔的词串，短语以连接符相连，例如 new_york big_appl
func (p *Preprocessor) Process(body string) string {
	tokens := p.stop.Filter(p.tokenizer.Tokenize(body))
	return strings.Join(p.model.Apply(tokens), " ")
}

// PreprocessText 加载短语模型后处理单条文本
func PreprocessText(path string, body string, tokenizer *text.Tokenizer) (string, error) {
	model, err := LoadPhraseModel(path)
	if err != nil {
		return "", err
	}
	return NewPreprocessor(tokenizer, model).Process(body), nil
}
