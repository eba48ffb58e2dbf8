package logger_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Astemirdum/catalog-service/pkg/logger"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger_Sink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.log")
	log := logger.NewLogger(logger.Log{LogLevel: zapcore.InfoLevel, Sink: path}, "catalog")

	log.Debug("hidden")
	log.Info("book created")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "book created", entry["msg"])
	require.Equal(t, "catalog", entry["logger"])
	require.Equal(t, "info", entry["level"])
}
