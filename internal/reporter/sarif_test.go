package reporter

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sarifDoc declares only the fields the assertions consume.
type sarifDoc struct {
	Version string `json:"version"`
	Runs    []struct {
		Tool struct {
			Driver struct {
				Name  string `json:"name"`
				Rules []struct {
					ID string `json:"id"`
				} `json:"rules"`
			} `json:"driver"`
		} `json:"tool"`
		Results []struct {
			RuleID  string `json:"ruleId"`
			Level   string `json:"level"`
			Message struct {
				Text string `json:"text"`
			} `json:"message"`
			Locations []struct {
				PhysicalLocation struct {
					ArtifactLocation struct {
						URI string `json:"uri"`
					} `json:"artifactLocation"`
					Region struct {
						StartLine   int `json:"startLine"`
						StartColumn int `json:"startColumn"`
					} `json:"region"`
				} `json:"physicalLocation"`
			} `json:"locations"`
		} `json:"results"`
	} `json:"runs"`
}

func TestSARIFReporter(t *testing.T) {
	var buf bytes.Buffer
	r := NewSARIFReporter(&buf, "yamlvet", "1.2.3", "https://github.com/yamlvet/yamlvet")
	require.NoError(t, r.Report(sampleResult(), nil))

	var doc sarifDoc
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "2.1.0", doc.Version)
	require.Len(t, doc.Runs, 1)

	run := doc.Runs[0]
	assert.Equal(t, "yamlvet", run.Tool.Driver.Name)
	require.Len(t, run.Results, 4)

	// One rule per distinct "tool/rule" pair.
	assert.Len(t, run.Tool.Driver.Rules, 4)

	first := run.Results[0]
	assert.Equal(t, "syntax-checker/syntax", first.RuleID)
	assert.Equal(t, "error", first.Level)
	require.Len(t, first.Locations, 1)
	region := first.Locations[0].PhysicalLocation.Region
	assert.Equal(t, 3, region.StartLine)
	assert.Equal(t, 5, region.StartColumn)
	assert.Equal(t, "dir/config.yaml", first.Locations[0].PhysicalLocation.ArtifactLocation.URI)

	// MEDIUM maps to warning, LOW to note; the unlocated security finding
	// still carries the artifact.
	assert.Equal(t, "warning", run.Results[1].Level)
	assert.Equal(t, "note", run.Results[2].Level)
	last := run.Results[3]
	assert.Equal(t, "error", last.Level)
	require.Len(t, last.Locations, 1)
	assert.Zero(t, last.Locations[0].PhysicalLocation.Region.StartLine)
}
