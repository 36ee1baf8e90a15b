package filter

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BinLe1988/tweet-content-filter/pkg/text"
)

var (
	phraseModelPath    = filepath.Join("..", "..", "resources", "phrasemodel.json")
	sentimentModelPath = filepath.Join("..", "..", "resources", "sentiment_model.json")
	thesaurusPath      = filepath.Join("..", "..", "resources", "thesaurus.json")
)

// englishGate 测试用：除非显式列出，否则都视为英文
type englishGate struct {
	notEnglish map[string]bool
}

func (g englishGate) IsEnglish(s string) bool {
	return s != "" && !g.notEnglish[s]
}

type memoryRecorder struct {
	mu        sync.Mutex
	decisions []Decision
}

func (r *memoryRecorder) Record(_ context.Context, _ Request, d Decision) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decisions = append(r.decisions, d)
	return nil
}

func testTokenizer() *text.Tokenizer {
	return text.NewTokenizer(text.PorterStemmer{})
}

func loadTestArtifacts(t *testing.T) *Artifacts {
	t.Helper()
	artifacts, err := LoadArtifacts(ArtifactPaths{
		PhraseModel:    phraseModelPath,
		SentimentModel: sentimentModelPath,
		Thesaurus:      thesaurusPath,
	})
	require.NoError(t, err)
	return artifacts
}

func float(v float64) *float64 { return &v }

func boolean(v bool) *bool { return &v }
