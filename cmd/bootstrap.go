package main

import (
	"github.com/BinLe1988/tweet-content-filter/configs"
	"github.com/BinLe1988/tweet-content-filter/pkg/filter"
	"github.com/BinLe1988/tweet-content-filter/pkg/text"
)

func artifactPaths(cfg *configs.Config) filter.ArtifactPaths {
	return filter.ArtifactPaths{
		PhraseModel:    cfg.Artifacts.PhraseModel,
		SentimentModel: cfg.Artifacts.SentimentModel,
		Thesaurus:      cfg.Artifacts.Thesaurus,
	}
}

func buildTokenizer(cfg *configs.Config) (*text.Tokenizer, error) {
	stemmer, err := text.NewStemmer(cfg.Text.Stemmer)
	if err != nil {
		return nil, err
	}
	return text.NewTokenizer(stemmer), nil
}

// buildService 加载产物并组装过滤流水线
func buildService(cfg *configs.Config, opts ...filter.Option) (*filter.ContentFilterService, error) {
	tokenizer, err := buildTokenizer(cfg)
	if err != nil {
		return nil, err
	}
	artifacts, err := filter.LoadArtifacts(artifactPaths(cfg))
	if err != nil {
		return nil, err
	}
	gate, err := filter.NewLinguaGate(cfg.Language.Languages)
	if err != nil {
		return nil, err
	}

	opts = append([]filter.Option{filter.WithDefaultThreshold(cfg.Filter.DefaultThreshold)}, opts...)
	return filter.NewContentFilterService(gate, tokenizer, artifacts, opts...), nil
}
