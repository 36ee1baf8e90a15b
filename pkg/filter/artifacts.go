package filter

import (
	"go.uber.org/zap"
)

// ArtifactPaths 预训练产物路径
type ArtifactPaths struct {
	PhraseModel    string
	SentimentModel string
	Thesaurus      string
}

// Artifacts 启动时加载一次，之后只读共享
type Artifacts struct {
	Phrases    *PhraseModel
	Classifier Classifier
	Thesaurus  *Thesaurus
}

// LoadArtifacts 加载全部产物，任一缺失立即失败
func LoadArtifacts(paths ArtifactPaths) (*Artifacts, error) {
	phrases, err := LoadPhraseModel(paths.PhraseModel)
	if err != nil {
		return nil, err
	}
	model, err := LoadLinearModel(paths.SentimentModel)
	if err != nil {
		return nil, err
	}
	thesaurus, err := LoadThesaurus(paths.Thesaurus)
	if err != nil {
		return nil, err
	}

	zap.S().Infow("artifacts loaded",
		"phrases", len(phrases.Phrases),
		"vocabulary", len(model.Weights),
		"thesaurus", thesaurus.Len(),
	)
	return &Artifacts{Phrases: phrases, Classifier: model, Thesaurus: thesaurus}, nil
}
