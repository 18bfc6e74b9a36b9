package logger

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_LevelAndFormat(t *testing.T) {
	l := New("app", &Config{Level: "debug", Format: "json", Output: "stdout"})
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, l.Formatter)

	l = New("app", &Config{Level: "nonsense", Format: "text", Output: "stdout"})
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, l.Formatter)
}

func TestNew_FileOutput(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{Level: "info", Format: "text", Output: "file", Path: dir}
	require.NoError(t, Init(cfg))

	l := New("youtube", cfg)
	l.Info("hello")

	data, err := os.ReadFile(filepath.Join(dir, "youtube.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

func TestGetLogger_ReturnsSameInstance(t *testing.T) {
	require.NoError(t, Init(DefaultConfig()))
	assert.Same(t, GetLogger("access"), GetLogger("access"))
}

func TestDiscard(t *testing.T) {
	assert.Equal(t, io.Discard, Discard().Out)
}
