package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger_WritesConsoleAndFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	var console bytes.Buffer

	logger, err := InitLogger("test", Options{LogsDir: dir, Console: &console})
	require.NoError(t, err)

	logger.Debug("debug only in file")
	logger.Info("allocated date")
	_ = logger.Sync()

	assert.Contains(t, console.String(), "allocated date")
	assert.NotContains(t, console.String(), "debug only in file")

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.True(t, strings.HasPrefix(files[0].Name(), "test_"))

	content, err := os.ReadFile(filepath.Join(dir, files[0].Name()))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "debug only in file", entry["msg"])
	assert.Equal(t, "test", entry["env"])
	assert.Contains(t, entry, "timestamp")
}

func TestInitLogger_Verbose(t *testing.T) {
	var console bytes.Buffer

	logger, err := InitLogger("", Options{LogsDir: t.TempDir(), Verbose: true, Console: &console})
	require.NoError(t, err)

	logger.Debug("solver detail")
	_ = logger.Sync()

	assert.Contains(t, console.String(), "solver detail")
}
