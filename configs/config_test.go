package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer os.Chdir(wd)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 0.5, cfg.Filter.DefaultThreshold)
	assert.Equal(t, 10*time.Minute, cfg.Filter.CacheTTL)
	assert.Equal(t, "porter", cfg.Text.Stemmer)
	assert.Empty(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	cfg, err := Load("config.yaml")
	require.NoError(t, err)

	assert.Equal(t, "resources/phrasemodel.json", cfg.Artifacts.PhraseModel)
	assert.Equal(t, []string{"en", "es", "fr", "de", "it", "pt", "nl", "pl"}, cfg.Language.Languages)
	assert.False(t, cfg.Auth.Enabled)
	assert.Empty(t, cfg.Validate())
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("TCF_SERVER_PORT", "9090")

	cfg, err := Load("config.yaml")
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	cfg.Filter.DefaultThreshold = 1.5
	cfg.Database.Driver = "oracle"
	cfg.Auth.Enabled = true

	errs := cfg.Validate()
	assert.Len(t, errs, 6)
}
