package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLBeforeInitIsNop(t *testing.T) {
	Replace(nil)
	assert.NotPanics(t, func() { Info("ignored") })
}

func TestInitWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	require.NoError(t, Init(Config{Level: "debug", Format: "json", OutputPath: path}))
	t.Cleanup(func() { Replace(nil) })

	Debug("resolved listing", zap.Int("entries", 3))
	require.NoError(t, Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "resolved listing")
	assert.Contains(t, string(data), `"entries":3`)
}

func TestSetLevelFiltersEntries(t *testing.T) {
	core, logs := observer.New(globalLevel)
	Replace(zap.New(core))
	t.Cleanup(func() {
		Replace(nil)
		globalLevel.SetLevel(zapcore.InfoLevel)
	})

	SetLevel("warn")
	Info("dropped")
	Warn("kept")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "kept", entries[0].Message)

	SetLevel("not-a-level")
	assert.Equal(t, zapcore.WarnLevel, globalLevel.Level())
}
