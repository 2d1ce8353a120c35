package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaibhaw-/MediDemo/internal/medidemo/catalog"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	doc, err := catalog.Default()
	require.NoError(t, err)
	return catalog.Build(doc, "embedded")
}

// decodeOutcomes decodes NDJSON output into generic outcomes.
func decodeOutcomes(t *testing.T, out *bytes.Buffer) []map[string]any {
	t.Helper()
	var outcomes []map[string]any
	dec := json.NewDecoder(out)
	for dec.More() {
		var o map[string]any
		require.NoError(t, dec.Decode(&o))
		outcomes = append(outcomes, o)
	}
	return outcomes
}

func TestRunBatch_AllOps(t *testing.T) {
	input := strings.Join([]string{
		`{"id":"a","op":"symptoms","symptoms":["fever","cough"]}`,
		`{"id":"b","op":"bmi","weight_kg":70,"height_cm":175}`,
		`{"id":"c","op":"heart_rate","heart_rate":70,"age":30}`,
		`{"id":"d","op":"drug","name":"  Aspirin "}`,
		`{"id":"e","op":"heart_rate_series","readings":[{"at":"2024-03-01 08:00","bpm":72},{"at":"2024-03-01 08:15","bpm":110}]}`,
	}, "\n")

	var out bytes.Buffer
	err := RunBatch(context.Background(), testCatalog(t), strings.NewReader(input), &out, Options{})
	require.NoError(t, err)

	outcomes := decodeOutcomes(t, &out)
	require.Len(t, outcomes, 5)
	for _, o := range outcomes {
		assert.NotEmpty(t, o["request_id"])
		assert.Nil(t, o["error"], "op %v", o["op"])
		assert.NotNil(t, o["result"], "op %v", o["op"])
	}

	bmiResult := outcomes[1]["result"].(map[string]any)
	assert.Equal(t, "normal", bmiResult["category"])

	hr := outcomes[2]["result"].(map[string]any)
	assert.Equal(t, float64(190), hr["max_hr"])

	drugResult := outcomes[3]["result"].(map[string]any)
	assert.Equal(t, true, drugResult["found"])

	series := outcomes[4]["result"].(map[string]any)
	assert.Equal(t, float64(2), series["count"])
	assert.Equal(t, float64(91), series["mean"])
}

func TestRunBatch_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		kind  string
		field string
	}{
		{"empty symptoms", `{"op":"symptoms","symptoms":[]}`, "validation", "symptoms"},
		{"zero weight", `{"op":"bmi","weight_kg":0,"height_cm":170}`, "validation", "weight_kg"},
		{"missing height", `{"op":"bmi","weight_kg":70}`, "validation", "height_cm"},
		{"rate too high", `{"op":"heart_rate","heart_rate":350,"age":30}`, "validation", "heart_rate"},
		{"missing age", `{"op":"heart_rate","heart_rate":70}`, "validation", "age"},
		{"blank drug", `{"op":"drug","name":"   "}`, "validation", "name"},
		{"bad reading time", `{"op":"heart_rate_series","readings":[{"at":"not a time","bpm":70}]}`, "validation", "readings"},
		{"unknown op", `{"op":"weather"}`, "unsupported_op", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := RunBatch(context.Background(), testCatalog(t), strings.NewReader(tt.line), &out, Options{})
			require.NoError(t, err)

			outcomes := decodeOutcomes(t, &out)
			require.Len(t, outcomes, 1)
			assert.Nil(t, outcomes[0]["result"])
			body, ok := outcomes[0]["error"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, tt.kind, body["kind"])
			if tt.field != "" {
				assert.Equal(t, tt.field, body["field"])
			}
		})
	}
}

func TestRunBatch_UnknownDrugIsNotAnError(t *testing.T) {
	var out bytes.Buffer
	err := RunBatch(context.Background(), testCatalog(t),
		strings.NewReader(`{"op":"drug","name":"unknown-xyz"}`), &out, Options{})
	require.NoError(t, err)

	outcomes := decodeOutcomes(t, &out)
	require.Len(t, outcomes, 1)
	assert.Nil(t, outcomes[0]["error"])
	res := outcomes[0]["result"].(map[string]any)
	assert.Equal(t, false, res["found"])
	assert.Len(t, res["suggestions"], 3)
}

func TestRunBatch_RejectsAndRunLog(t *testing.T) {
	dir := t.TempDir()
	rejectPath := filepath.Join(dir, "rejected.jsonl")
	runLogPath := filepath.Join(dir, "run.jsonl")

	input := strings.Join([]string{
		`{"op":"bmi","weight_kg":45,"height_cm":160}`,
		`not json`,
		``,
		`{"op":"bmi","weight":45}`,
		`{"op":"heart_rate","heart_rate":45,"age":30}`,
		`{"op":"heart_rate","heart_rate":0,"age":30}`,
	}, "\n")

	var out bytes.Buffer
	err := RunBatch(context.Background(), testCatalog(t), strings.NewReader(input), &out, Options{
		InputName:  "stdin",
		OutputName: "stdout",
		RejectFile: rejectPath,
		RunLog:     runLogPath,
	})
	require.NoError(t, err)

	outcomes := decodeOutcomes(t, &out)
	assert.Len(t, outcomes, 3)

	rejectData, err := os.ReadFile(rejectPath)
	require.NoError(t, err)
	rejectLines := strings.Split(strings.TrimSpace(string(rejectData)), "\n")
	require.Len(t, rejectLines, 2)

	var rej Rejection
	require.NoError(t, json.Unmarshal([]byte(rejectLines[0]), &rej))
	assert.Equal(t, 2, rej.Line)
	assert.Equal(t, "not json", rej.Raw)
	assert.NotEmpty(t, rej.RequestID)

	require.NoError(t, json.Unmarshal([]byte(rejectLines[1]), &rej))
	assert.Equal(t, 4, rej.Line)

	logData, err := os.ReadFile(runLogPath)
	require.NoError(t, err)
	var summary RunSummary
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(logData), &summary))
	assert.Equal(t, "stdin", summary.Input)
	assert.Equal(t, 5, summary.RawCount)
	assert.Equal(t, 2, summary.EvaluatedCount)
	assert.Equal(t, 1, summary.InvalidCount)
	assert.Equal(t, 2, summary.RejectedCount)
	assert.Equal(t, map[string]int{"bmi": 1, "heart_rate": 2}, summary.ByOp)
}

func TestRunBatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := RunBatch(ctx, testCatalog(t), strings.NewReader(`{"op":"drug","name":"aspirin"}`), &out, Options{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, out.Len())
}

func TestParseReadings(t *testing.T) {
	readings, err := ParseReadings([]RawReading{
		{At: "2024-03-01T08:00:00Z", BPM: 70},
		{At: "03/01/2024 08:15", BPM: 80},
	}, time.UTC)
	require.NoError(t, err)
	require.Len(t, readings, 2)
	assert.Equal(t, 8, readings[0].At.Hour())
	assert.Equal(t, 15, readings[1].At.Minute())
	assert.Equal(t, 80, readings[1].BPM)
}

func TestRunBatch_OutOfRangeBMIDoesNotStopRun(t *testing.T) {
	input := strings.Join([]string{
		`{"id":"huge","op":"bmi","weight_kg":1e308,"height_cm":1}`,
		`{"id":"tiny","op":"bmi","weight_kg":70,"height_cm":1e-170}`,
		`{"id":"ok","op":"bmi","weight_kg":70,"height_cm":175}`,
	}, "\n")
	runLogPath := filepath.Join(t.TempDir(), "run.jsonl")

	var out bytes.Buffer
	err := RunBatch(context.Background(), testCatalog(t), strings.NewReader(input), &out, Options{RunLog: runLogPath})
	require.NoError(t, err)

	outcomes := decodeOutcomes(t, &out)
	require.Len(t, outcomes, 3)

	huge := outcomes[0]["error"].(map[string]any)
	assert.Equal(t, "validation", huge["kind"])
	assert.Equal(t, "weight_kg", huge["field"])

	tiny := outcomes[1]["error"].(map[string]any)
	assert.Equal(t, "height_cm", tiny["field"])

	assert.Equal(t, "ok", outcomes[2]["id"])
	assert.NotNil(t, outcomes[2]["result"])

	logData, err := os.ReadFile(runLogPath)
	require.NoError(t, err)
	var summary RunSummary
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(logData), &summary))
	assert.Equal(t, 1, summary.EvaluatedCount)
	assert.Equal(t, 2, summary.InvalidCount)
}

func TestEncodeOutcome_UnencodableResult(t *testing.T) {
	o, data, err := encodeOutcome(Outcome{RequestID: "r1", Op: OpBMI, Result: math.Inf(1)})
	require.NoError(t, err)
	assert.Nil(t, o.Result)
	require.NotNil(t, o.Error)
	assert.Equal(t, "internal", o.Error.Kind)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "r1", decoded["request_id"])
	assert.NotContains(t, decoded, "result")
}
