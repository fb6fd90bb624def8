package logger

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZapLoggerWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l := NewZapLogger(path, true)

	l.Info("Exploration", "request sent", map[string]interface{}{"query": "Salmo 23"})
	l.Error("Exploration", "request failed", map[string]interface{}{"error": errors.New("boom")})
	l.Debug("Exploration", "below file level", nil)
	_ = l.Sync()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var entries []map[string]interface{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}

	require.Len(t, entries, 2)
	assert.Equal(t, "INFO", entries[0]["level"])
	assert.Equal(t, "request sent", entries[0]["message"])
	assert.Equal(t, "Exploration", entries[0]["module"])
	assert.Equal(t, "ERROR", entries[1]["level"])
	assert.Equal(t, "boom", entries[1]["error"])
}

func TestNopLoggerAcceptsNilDetails(t *testing.T) {
	l := NewNopLogger()
	l.Info("Test", "nothing", nil)
	l.Warn("Test", "nothing", nil)
	l.Error("Test", "nothing", nil)
	assert.NoError(t, l.Sync())
}
