package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInit(t *testing.T) {
	l, err := Init("debug", "console")
	require.NoError(t, err)
	defer zap.ReplaceGlobals(zap.NewNop())

	assert.Same(t, l, zap.L())
	assert.True(t, l.Core().Enabled(zap.DebugLevel))
}

func TestInitRejectsBadInput(t *testing.T) {
	_, err := Init("loud", "json")
	assert.Error(t, err)

	_, err = Init("info", "xml")
	assert.Error(t, err)
}
