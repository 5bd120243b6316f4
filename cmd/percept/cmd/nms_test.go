package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDetections(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "detections.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNMSCommand(t *testing.T) {
	path := writeDetections(t, `{
		"boxes": [[0,0,10,10],[1,1,11,11],[100,100,110,110]],
		"scores": [0.9, 0.8, 0.7]
	}`)

	output, err := executeCommand(t, "nms", path)
	require.NoError(t, err)

	var result nmsResult
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	assert.Equal(t, []int{0, 2}, result.Keep)
	assert.Equal(t, 2, result.Count)
}

func TestNMSCommand_TextFormat(t *testing.T) {
	path := writeDetections(t, `{
		"boxes": [[0,0,10,10],[100,100,110,110]],
		"scores": [0.9, 0.8]
	}`)

	output, err := executeCommand(t, "nms", path, "--format", "text")
	require.NoError(t, err)
	assert.Equal(t, "0\n1", output)
}

func TestNMSCommand_ThresholdFlag(t *testing.T) {
	path := writeDetections(t, `{
		"boxes": [[0,0,10,10],[1,1,11,11]],
		"scores": [0.9, 0.8]
	}`)

	output, err := executeCommand(t, "nms", path, "--iou-threshold", "1.0", "--format", "json")
	require.NoError(t, err)

	var result nmsResult
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	assert.Equal(t, []int{0, 1}, result.Keep)
}

func TestNMSCommand_OutputFile(t *testing.T) {
	path := writeDetections(t, `{
		"boxes": [[0,0,10,10]],
		"scores": [0.9]
	}`)
	outPath := filepath.Join(t.TempDir(), "result.json")

	_, err := executeCommand(t, "nms", path, "--format", "json", "-o", outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var result nmsResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, []int{0}, result.Keep)
}

func TestNMSCommand_LengthMismatch(t *testing.T) {
	path := writeDetections(t, `{
		"boxes": [[0,0,10,10]],
		"scores": [0.9, 0.8]
	}`)

	_, err := executeCommand(t, "nms", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mismatch")
}

func TestNMSCommand_MissingFile(t *testing.T) {
	_, err := executeCommand(t, "nms", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestNMSCommand_InvalidFormat(t *testing.T) {
	path := writeDetections(t, `{"boxes": [], "scores": []}`)

	_, err := executeCommand(t, "nms", path, "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}
