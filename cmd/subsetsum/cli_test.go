package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/subsetsum/persistence"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	useLogDir(t)
	var out bytes.Buffer
	err := execute(context.Background(), args, &out)
	return out.String(), err
}

func TestSolve_FromFile(t *testing.T) {
	set := writeFile(t, "set.json", `[1, 2, 3, 4, 5, 10]`)

	out, err := run(t, "solve", "--set", set, "--target", "15", "--seed", "3",
		"--generation-size", "20", "--generations", "500")
	require.NoError(t, err)

	assert.Contains(t, out, "[00001] Fitness:")
	assert.Contains(t, out, "threshold satisfied")
	assert.Contains(t, out, "Subset size")
}

func TestSolve_PackedQuietFromBuiltInSet(t *testing.T) {
	out, err := run(t, "solve", "--packed", "--size", "64", "--seed", "1",
		"--generation-size", "20", "--generations", "30", "--threshold", "0.1", "--quiet")
	require.NoError(t, err)

	assert.NotContains(t, out, "[00001]")
	assert.Contains(t, out, "Generations")
}

func TestSolve_PackedRejectsLargeSets(t *testing.T) {
	_, err := run(t, "solve", "--packed", "--size", "200", "--seed", "1", "--quiet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "128")
}

func TestSolve_RejectsBadTarget(t *testing.T) {
	_, err := run(t, "solve", "--target", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid amount")
}

func TestBalance_FromFiles(t *testing.T) {
	first := writeFile(t, "first.json", `[10, 10]`)
	second := writeFile(t, "second.json", `[20]`)

	out, err := run(t, "balance", "--first", first, "--second", second, "--seed", "5",
		"--generation-size", "16", "--generations", "2000", "--quiet")
	require.NoError(t, err)

	assert.Contains(t, out, "threshold satisfied")
	assert.Contains(t, out, "10, 10")
}

func TestBalance_RequiresBothFiles(t *testing.T) {
	first := writeFile(t, "first.json", `[10, 10]`)
	_, err := run(t, "balance", "--first", first)
	require.Error(t, err)
}

func TestBench_WritesReportAndMetrics(t *testing.T) {
	metrics := filepath.Join(t.TempDir(), "metrics.prom")

	out, err := run(t, "bench", "--mode", "balance", "--runs", "3", "--parallelism", "2",
		"--set-size", "20", "--seed", "9", "--generation-size", "10", "--generations", "20",
		"--metrics", metrics)
	require.NoError(t, err)

	assert.Contains(t, out, "Benchmark")
	assert.Contains(t, out, "balance")

	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), "subsetsum_bench_runs_total")
}

func TestBench_RejectsUnknownMode(t *testing.T) {
	_, err := run(t, "bench", "--mode", "quantum")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oneof")
}

func TestConfigFile_AppliesAndFlagsOverride(t *testing.T) {
	cfg := writeFile(t, "config.yaml", `
seed: 11
solver:
  generation_size: 8
  generations_max_count: 5
  ordering: Hump
`)
	// Even values never reach an odd target, so the run uses its whole budget
	set := writeFile(t, "even.json", `[2, 4, 6, 8]`)

	out, err := run(t, "solve", "--config", cfg, "--set", set, "--target", "9", "--threshold", "-1")
	require.Error(t, err, "negative threshold fails validation")
	assert.Empty(t, out)

	out, err = run(t, "solve", "--config", cfg, "--set", set, "--target", "9", "--generations", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "[00007]")
	assert.NotContains(t, out, "[00008]")
	assert.Contains(t, out, "threshold not reached")
}

func TestSolve_WithMonitor(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	old := newScreen
	newScreen = func() (tcell.Screen, error) {
		if err := screen.Init(); err != nil {
			return nil, err
		}
		screen.SetSize(100, 20)
		return screen, nil
	}
	t.Cleanup(func() { newScreen = old })

	out, err := run(t, "solve", "--monitor", "--size", "32", "--seed", "2",
		"--generation-size", "10", "--generations", "50")
	require.NoError(t, err)

	assert.False(t, strings.Contains(out, "[00001]"), "monitor replaces progress lines")
	assert.Contains(t, out, "Generations")
}

func TestDebugFlag_WritesLogFile(t *testing.T) {
	dir := useLogDir(t)
	var out bytes.Buffer
	err := execute(context.Background(), []string{"solve", "--debug", "--size", "16", "--seed", "4",
		"--generation-size", "10", "--generations", "5", "--quiet"}, &out)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, logFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "subset solver created")
	assert.Contains(t, string(data), "run finished")
}

func TestSave_WritesRunRecords(t *testing.T) {
	dir := t.TempDir()
	set := writeFile(t, "set.json", `[1, 2, 3, 4, 5, 10]`)

	_, err := run(t, "solve", "--set", set, "--target", "15", "--seed", "3", "--quiet",
		"--generation-size", "20", "--generations", "500", "--save", dir)
	require.NoError(t, err)
	_, err = run(t, "bench", "--runs", "2", "--set-size", "16", "--seed", "3",
		"--generation-size", "10", "--generations", "10", "--save", dir)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.True(t, strings.HasPrefix(names[0], "bench-"), names[0])
	assert.True(t, strings.HasPrefix(names[1], "solve-"), names[1])

	loaded, err := persistence.NewManager(dir).LoadRun(strings.TrimSuffix(names[1], ".json"))
	require.NoError(t, err)
	assert.True(t, loaded.ThresholdSatisfied)
	assert.Equal(t, "15", loaded.Target.String())
}
