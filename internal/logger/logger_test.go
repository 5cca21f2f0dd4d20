package logger_test

import (
	"testing"

	. "github.com/cozy/contentmodel-go/internal/logger"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetAndRestore(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Set(zap.New(core))
	defer Set(nil)

	L().Debug("classified", zap.String("source", "wordDesktop"))
	if assert.Equal(t, 1, logs.Len()) {
		entry := logs.All()[0]
		assert.Equal(t, "classified", entry.Message)
		assert.Equal(t, "wordDesktop", entry.ContextMap()["source"])
	}

	Set(nil)
	L().Info("dropped")
	assert.Equal(t, 1, logs.Len())
}

func TestNewLevel(t *testing.T) {
	l := New(Options{Level: "warn"})
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))

	l = New(Options{Level: "bogus"})
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestNewWithFile(t *testing.T) {
	file := t.TempDir() + "/contentmodel.log"
	l := New(Options{Level: "debug", File: file, MaxSizeMB: 1, MaxBackups: 1})
	l.Debug("written")
	_ = l.Sync()
	assert.FileExists(t, file)
}
