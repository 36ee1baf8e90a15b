package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizeDropsStopWordsAndShortTokens(t *testing.T) {
	tok := NewTokenizer(PorterStemmer{})

	assert.Equal(t, []string{"fridai", "super", "open"}, tok.Tokenize("My friday is super open as of now"))
	assert.Empty(t, tok.Tokenize("I to you the at my on"))
}

func TestTokenizeStripsPunctuationTagsAndDigits(t *testing.T) {
	tok := NewTokenizer(PorterStemmer{})

	assert.Equal(t, []string{"love"}, tok.Tokenize("I <b>love</b> this!!! 2024"))
	assert.Equal(t, []string{"test"}, tok.Tokenize("testing, 123"))
}

func TestTokenizeFoldsAccents(t *testing.T) {
	tok := NewTokenizer(PorterStemmer{})

	assert.Equal(t, []string{"cafe"}, tok.Tokenize("Café"))
}

func TestNewStemmer(t *testing.T) {
	s, err := NewStemmer("")
	require.NoError(t, err)
	assert.Equal(t, StemmerPorter, s.Name())

	s, err = NewStemmer("Snowball")
	require.NoError(t, err)
	assert.Equal(t, StemmerSnowball, s.Name())
	assert.Equal(t, "test", s.Stem("testing"))

	_, err = NewStemmer("lancaster")
	assert.Error(t, err)
}

func TestFullStopContainsTwitterNoise(t *testing.T) {
	for _, w := range []string{"rt", "http", "bitly", "the", "you"} {
		assert.True(t, FullStop.Contains(w), w)
	}
	assert.False(t, StopWords.Contains("rt"))
	assert.Equal(t, []string{"hello"}, FullStop.Filter([]string{"rt", "hello", "www"}))
}
