package reporter

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamlvet/yamlvet/internal/aggregate"
	"github.com/yamlvet/yamlvet/internal/issue"
)

func TestJSONReporter_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONReporter(&buf).Report(sampleResult(), nil))

	var decoded aggregate.Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "dir/config.yaml", decoded.FilePath)
	assert.False(t, decoded.SyntaxValid)
	require.Len(t, decoded.Issues, 4)
	assert.Equal(t, issue.SeverityCritical, decoded.Issues[0].Severity)
	assert.Equal(t, 4, decoded.Summary.Total)
}

func TestJSONReporter_FieldShapes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONReporter(&buf).Report(sampleResult(), nil))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	// Top-level keys.
	for _, key := range []string{"file", "syntax_valid", "issues", "summary"} {
		assert.Contains(t, doc, key)
	}

	issues, ok := doc["issues"].([]any)
	require.True(t, ok)

	// Severity is serialized as a lowercase string.
	first, ok := issues[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "critical", first["severity"])
	assert.Equal(t, "syntax-checker", first["tool"])
	assert.Equal(t, float64(3), first["line"])

	// Issues without a location omit line and column entirely.
	last, ok := issues[3].(map[string]any)
	require.True(t, ok)
	assert.NotContains(t, last, "line")
	assert.NotContains(t, last, "column")
}
