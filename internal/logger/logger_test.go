package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rogerio-castellano/promo-quoter/internal/config"
)

func TestInitWritesRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	l, flush, err := Init(config.LogConfig{Mode: "production", Level: "info", FileEnable: true, Filename: path})
	require.NoError(t, err)
	t.Cleanup(func() { zap.ReplaceGlobals(zap.NewNop()) })

	l.Info("quote generated", zap.String("client", "ACME"))
	flush()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"client":"ACME"`)
	assert.Same(t, l, zap.L())
}

func TestInitRejectsBadLevel(t *testing.T) {
	_, _, err := Init(config.LogConfig{Level: "chatty"})
	assert.Error(t, err)
}
