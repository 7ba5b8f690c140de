package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/integerize/ndarray"
	"github.com/katalvlaran/integerize/ndround"
)

// invoke runs the CLI with stdin and returns stdout and stderr.
func invoke(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	args = append([]string{"--no-color"}, args...)
	err := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)

	return stdout.String(), stderr.String(), err
}

func TestVector(t *testing.T) {
	out, logs, err := invoke(t, `{"values": [0.3, 0.3, 0.4], "control": 1}`, "vector")
	require.NoError(t, err)

	var res struct{ Result []int }
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, []int{0, 0, 1}, res.Result)
	assert.Contains(t, logs, "vector rounded")
	assert.Contains(t, logs, "run=")
}

func TestVector_PreserveSum(t *testing.T) {
	out, _, err := invoke(t, `{"values": [0.5, 0.5, 1]}`, "vector", "--preserve-sum", "--policy", "largest-difference")
	require.NoError(t, err)

	var res struct{ Result []int }
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, []int{0, 1, 1}, res.Result)
}

func TestVector_Errors(t *testing.T) {
	_, _, err := invoke(t, `{"values": [1, 2]}`, "vector")
	require.Error(t, err)

	_, _, err = invoke(t, `{"values": [1, 2], "control": 2.5}`, "vector")
	require.Error(t, err)

	_, _, err = invoke(t, `{"values": [1, 2], "control": 3, "extra": 1}`, "vector")
	require.ErrorContains(t, err, "decode input")
}

func TestMatrix(t *testing.T) {
	in := `{"values": [[1.4, 1.4], [1.2, 1.0]], "rows": [3, 2], "cols": [3, 2]}`
	out, logs, err := invoke(t, in, "--log-level", "debug", "matrix")
	require.NoError(t, err)
	assert.Contains(t, logs, "matrix input")
	assert.Contains(t, logs, "biproportional pass")

	var res struct{ Result [][]int }
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, [][]int{{1, 2}, {2, 0}}, res.Result)
}

func TestBalance(t *testing.T) {
	in := `{"shape": [2, 2], "data": [1, 1, 1, 1], "marginals": [[3, 1], [2, 2]]}`
	out, _, err := invoke(t, in, "balance")
	require.NoError(t, err)

	var res struct {
		Data      []float64
		Converged bool
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.Converged)
	assert.Equal(t, []float64{1.5, 1.5, 0.5, 0.5}, res.Data)
}

func TestRound_ExactFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "problem.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"shape": [2, 2], "data": [0.6, 0.7, 0, 0.8], "marginals": [[1, 0], [0, 1]]}`), 0o644))

	out, _, err := invoke(t, "", "round", "--method", "exact", "--flow-algorithm", "edmonds-karp", path)
	require.NoError(t, err)

	var res struct {
		Shape          []int
		Data           []int
		RemainingError int `json:"remaining_error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, []int{2, 2}, res.Shape)
	assert.Equal(t, []int{0, 1, 0, 0}, res.Data)
	assert.Zero(t, res.RemainingError)
}

func TestRound_StochasticRunsToZero(t *testing.T) {
	in := `{"shape": [2, 2], "data": [0.5, 0.5, 0.5, 0.5], "marginals": [[1, 1], [1, 1]]}`

	out, _, err := invoke(t, in, "round", "--method", "stochastic")
	require.NoError(t, err)

	var res struct {
		Data           []int
		RemainingError int `json:"remaining_error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Zero(t, res.RemainingError)
	assert.Equal(t, 1, res.Data[0]+res.Data[1])
	assert.Equal(t, 1, res.Data[0]+res.Data[2])
	assert.Equal(t, 1, res.Data[2]+res.Data[3])
}

func TestGenerateThenRound(t *testing.T) {
	problem, _, err := invoke(t, "", "--seed", "5", "generate", "--shape", "6,4")
	require.NoError(t, err)

	db := filepath.Join(t.TempDir(), "ckpt.db")
	out, logs, err := invoke(t, problem, "--log-level", "debug",
		"round", "--safe", "--threshold", "3", "--checkpoint-db", db)
	require.NoError(t, err)
	assert.Contains(t, logs, "checkpoint store")

	var in struct {
		Marginals [][]int
	}
	require.NoError(t, json.Unmarshal([]byte(problem), &in))
	var res struct {
		Shape []int
		Data  []int
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))

	data := make([]float64, len(res.Data))
	for i, v := range res.Data {
		data[i] = float64(v)
	}
	a, err := ndarray.FromSlice(res.Shape, data)
	require.NoError(t, err)
	require.NoError(t, ndround.CheckOutput(a, in.Marginals))
}

func TestGenerate_Deterministic(t *testing.T) {
	a, _, err := invoke(t, "", "--seed", "9", "generate", "--kind", "sparse", "--shape", "5,5")
	require.NoError(t, err)
	b, _, err := invoke(t, "", "--seed", "9", "generate", "--kind", "sparse", "--shape", "5,5")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestConfigFile(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(cfg, []byte(`{"log_level": "debug"}`), 0o644))

	in := `{"shape": [2, 2], "data": [1, 1, 1, 1], "marginals": [[3, 1], [2, 2]]}`
	_, logs, err := invoke(t, in, "--config", cfg, "balance")
	require.NoError(t, err)
	assert.Contains(t, logs, "ipf iteration")
}

func TestJSONLogs(t *testing.T) {
	_, logs, err := invoke(t, `{"values": [1, 1], "control": 2}`, "--log-format", "json", "vector")
	require.NoError(t, err)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(logs)), &rec))
	assert.Equal(t, "vector rounded", rec["msg"])
	assert.NotEmpty(t, rec["run"])
}

func TestVersion(t *testing.T) {
	out, _, err := invoke(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, version)
}
