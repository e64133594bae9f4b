package services

import (
	"MysteryBox/internal/config"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogService_AppliesConfiguration(t *testing.T) {
	cfg := &config.Configuration{}
	cfg.Server.LogConfig = config.LogConfig{Format: "json", Level: "DEBUG", Output: "stdout"}

	log := NewLogService(cfg).Log
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)
	assert.Equal(t, os.Stdout, log.Out)
}

func TestNewLogService_UnknownLevelKeepsInfo(t *testing.T) {
	cfg := &config.Configuration{}
	cfg.Server.LogConfig = config.LogConfig{Format: "text", Level: "chatty"}

	log := NewLogService(cfg).Log
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
}

func TestNewLogService_WritesToDatedFile(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Configuration{}
	cfg.Server.LogConfig = config.LogConfig{Level: "info", Output: "file", LogPath: dir + "/"}

	service := NewLogService(cfg)
	service.Log.Info("hello")
	if f, ok := service.Log.Out.(*os.File); ok {
		t.Cleanup(func() { _ = f.Close() })
	}

	matches, err := filepath.Glob(filepath.Join(dir, "mysterybox-*.log"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}
