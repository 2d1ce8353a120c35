package integration

import (
	"bufio"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Helper functions

func getProjectRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	// Look for go.mod file to identify project root
	for dir := wd; dir != "/"; dir = filepath.Dir(dir) {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
	}

	return wd, nil
}

func buildMedidemoBinary(t *testing.T, projectRoot string) string {
	t.Helper()
	binaryPath := filepath.Join(t.TempDir(), "medidemo_test")

	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/medidemo")
	cmd.Dir = projectRoot

	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Build output: %s", string(output))
		require.NoError(t, err, "Failed to build medidemo binary")
	}

	return binaryPath
}

// runMedidemo runs the binary in an empty directory so no stray config.yaml or .env is picked up.
func runMedidemo(t *testing.T, binaryPath string, args ...string) (stdout []byte, stderr []byte, err error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = t.TempDir()
	cmd.Env = append(os.Environ(), "MEDIDEMO_LOGGING_LEVEL=warn")

	outFile := filepath.Join(cmd.Dir, "stdout")
	errFile := filepath.Join(cmd.Dir, "stderr")
	o, ferr := os.Create(outFile)
	require.NoError(t, ferr)
	e, ferr := os.Create(errFile)
	require.NoError(t, ferr)
	cmd.Stdout = o
	cmd.Stderr = e

	err = cmd.Run()
	o.Close()
	e.Close()

	stdout, ferr = os.ReadFile(outFile)
	require.NoError(t, ferr)
	stderr, ferr = os.ReadFile(errFile)
	require.NoError(t, ferr)
	return stdout, stderr, err
}

func parseJSONLFile(t *testing.T, filePath string) []map[string]interface{} {
	t.Helper()
	file, err := os.Open(filePath)
	require.NoError(t, err)
	defer file.Close()

	var records []map[string]interface{}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec map[string]interface{}
		require.NoError(t, json.Unmarshal(line, &rec), "line: %s", string(line))
		records = append(records, rec)
	}
	require.NoError(t, scanner.Err())
	return records
}
