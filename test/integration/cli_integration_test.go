package integration

import (
	"encoding/json"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCLIIntegration_Calculators runs each calculator subcommand with --json
func TestCLIIntegration_Calculators(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	projectRoot, err := getProjectRoot()
	require.NoError(t, err)
	binaryPath := buildMedidemoBinary(t, projectRoot)

	t.Run("bmi", func(t *testing.T) {
		out, _, err := runMedidemo(t, binaryPath, "bmi", "--weight", "70", "--height", "175", "--json")
		require.NoError(t, err)

		var res map[string]interface{}
		require.NoError(t, json.Unmarshal(out, &res))
		assert.Equal(t, "normal", res["category"])
		assert.InDelta(t, 22.86, res["bmi"], 0.01)
		assert.Equal(t, "over", res["direction"])
	})

	t.Run("heart-rate", func(t *testing.T) {
		out, _, err := runMedidemo(t, binaryPath, "heart-rate", "--rate", "70", "--age", "30", "--json")
		require.NoError(t, err)

		var res map[string]interface{}
		require.NoError(t, json.Unmarshal(out, &res))
		assert.Equal(t, float64(190), res["max_hr"])
		assert.Equal(t, "normal", res["status"])
	})

	t.Run("symptoms", func(t *testing.T) {
		out, _, err := runMedidemo(t, binaryPath, "symptoms", "fever", "cough", "--json")
		require.NoError(t, err)

		var res []map[string]interface{}
		require.NoError(t, json.Unmarshal(out, &res))
		require.NotEmpty(t, res)
		assert.LessOrEqual(t, len(res), 3)
	})

	t.Run("drug text output", func(t *testing.T) {
		out, _, err := runMedidemo(t, binaryPath, "drug", "PARACETAMOL")
		require.NoError(t, err)
		assert.Contains(t, string(out), "Manufacturer:")
	})

	t.Run("unknown drug", func(t *testing.T) {
		out, _, err := runMedidemo(t, binaryPath, "drug", "unknown-xyz", "--json")
		require.NoError(t, err)

		var res map[string]interface{}
		require.NoError(t, json.Unmarshal(out, &res))
		assert.Equal(t, false, res["found"])
	})
}

// TestCLIIntegration_ValidationExitCode checks that invalid input fails the command
func TestCLIIntegration_ValidationExitCode(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	projectRoot, err := getProjectRoot()
	require.NoError(t, err)
	binaryPath := buildMedidemoBinary(t, projectRoot)

	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{"zero weight", []string{"bmi", "--weight", "0", "--height", "170"}, "weight_kg"},
		{"rate out of range", []string{"heart-rate", "--rate", "350", "--age", "30"}, "heart_rate"},
		{"no symptoms", []string{"symptoms"}, "no symptoms selected"},
		{"blank drug", []string{"drug", "   "}, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, err := runMedidemo(t, binaryPath, tt.args...)
			var exitErr *exec.ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 1, exitErr.ExitCode())
			assert.Contains(t, string(stderr), tt.wantMsg)
		})
	}
}

// TestCLIIntegration_ExportSQL checks the seed SQL for both dialects
func TestCLIIntegration_ExportSQL(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	projectRoot, err := getProjectRoot()
	require.NoError(t, err)
	binaryPath := buildMedidemoBinary(t, projectRoot)

	for _, dialect := range []string{"postgres", "mysql"} {
		t.Run(dialect, func(t *testing.T) {
			out, _, err := runMedidemo(t, binaryPath, "catalog", "export-sql", "--dialect", dialect)
			require.NoError(t, err)
			sql := string(out)
			assert.Contains(t, sql, "CREATE TABLE medidemo_drug")
			assert.Equal(t, 3, strings.Count(sql, "INSERT INTO medidemo_drug"))
		})
	}
}

// TestCLIIntegration_SampleHeartRate checks that a seeded series is reproducible
func TestCLIIntegration_SampleHeartRate(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	projectRoot, err := getProjectRoot()
	require.NoError(t, err)
	binaryPath := buildMedidemoBinary(t, projectRoot)

	args := []string{"sample", "heart-rate", "--start", "2024-03-01 00:00", "--seed", "42"}
	first, _, err := runMedidemo(t, binaryPath, args...)
	require.NoError(t, err)
	second, _, err := runMedidemo(t, binaryPath, args...)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 96, strings.Count(string(first), "\n"))
}
