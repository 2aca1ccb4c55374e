package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/rocketbot/internal/replay"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestScenarioThenReplay(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("ROCKETBOT_LOGGER_LEVEL", "error")

	path := filepath.Join(dir, "demo.yaml")
	_, err := execute(t, "scenario", "demo", "--replay.scenario_ticks", "40", "-o", path)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	rec, err := replay.Load(f)
	require.NoError(t, f.Close())
	require.NoError(t, err)
	assert.Len(t, rec.Ticks, 40)

	t.Setenv("ROCKETBOT_REPLAY_SCENARIO_TICKS", "25")
	out, err := execute(t, "replay", path, "-s", "extra", "--agent.strategy", "practice", "--replay.workers", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "demo: 40 ticks")
	assert.Contains(t, out, "extra: 25 ticks")
}

func TestReplayNeedsInput(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ROCKETBOT_LOGGER_LEVEL", "error")

	_, err := execute(t, "replay")
	assert.ErrorIs(t, err, errNoRecordings)
}

func TestReplayRejectsUnknownStrategy(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ROCKETBOT_LOGGER_LEVEL", "error")

	_, err := execute(t, "replay", "-s", "x", "--agent.strategy", "freestyle")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown strategy")
}
