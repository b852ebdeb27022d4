package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m), "line: %s", line)
		out = append(out, m)
	}
	return out
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, Debug, ParseLevel("DEBUG"))
	assert.Equal(t, Info, ParseLevel(""))
	assert.Equal(t, Warn, ParseLevel(" warning "))
	assert.Equal(t, Error, ParseLevel("error"))
	assert.Equal(t, Info, ParseLevel("verbose"))
	assert.Equal(t, "warn", Warn.String())
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("JSON"))
	assert.Equal(t, FormatText, ParseFormat("text"))
	assert.Equal(t, FormatText, ParseFormat("whatever"))
}

func TestJSONLogger_FieldsAndLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: Info, Format: FormatJSON, App: "pet-registry", Writer: &buf})

	log.Debug("hidden", nil)
	log.With(map[string]any{"request_id": "r1"}).Warn("photo rejected", map[string]any{
		"error": errors.New("too big"),
		"":      "dropped",
		"bytes": 12,
	})

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)

	l := lines[0]
	assert.Equal(t, "warn", l["level"])
	assert.Equal(t, "photo rejected", l["message"])
	assert.Equal(t, "pet-registry", l["app"])
	assert.Equal(t, "r1", l["request_id"])
	assert.Equal(t, "too big", l["error"])
	assert.Equal(t, float64(12), l["bytes"])
	assert.NotContains(t, l, "")
	assert.Contains(t, l, "time")
}

func TestTextLogger(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: Debug, Format: FormatText, Writer: &buf})

	log.Info("router ready", map[string]any{"upload_dir": "uploads"})

	out := buf.String()
	assert.Contains(t, out, "router ready")
	assert.Contains(t, out, "upload_dir=uploads")
}

func TestNop(t *testing.T) {
	log := Nop()
	log.With(map[string]any{"a": 1}).Error("ignored", map[string]any{"b": 2})
}
