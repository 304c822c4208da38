package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	dir := t.TempDir()
	replay := filepath.Join(dir, "replay.json")
	require.NoError(t, os.WriteFile(replay, []byte("{}"), 0o644))

	command, err := Parse([]string{"--trace", "verify", "--fps", "60", replay, dir})
	require.NoError(t, err)
	assert.Equal(t, Verify.FullCommand(), command)
	assert.True(t, *Trace)
	assert.Equal(t, 60.0, *VerifyFPS)
	assert.Equal(t, replay, *VerifyReplay)

	command, err = Parse([]string{"simulate_fps", "--runs=5", "--workers", "2", replay, dir})
	require.NoError(t, err)
	assert.Equal(t, Simulate.FullCommand(), command)
	assert.Equal(t, 5, *Runs)
	assert.Equal(t, 2, *Workers)
	assert.Equal(t, int64(1), *Seed)

	command, err = Parse([]string{"--db", "x.db", "history", dir})
	require.NoError(t, err)
	assert.Equal(t, History.FullCommand(), command)
	assert.Equal(t, "x.db", *Database)

	command, err = Parse([]string{"dump_inputs", replay})
	require.NoError(t, err)
	assert.Equal(t, DumpInputs.FullCommand(), command)
	assert.Equal(t, 0, *RawFrame)
}

func TestParseRejects(t *testing.T) {
	// usage errors return instead of exiting
	App.Terminate(nil)
	App.UsageWriter(io.Discard)
	App.ErrorWriter(io.Discard)
	dir := t.TempDir()
	for _, args := range [][]string{
		{},
		{"verify", filepath.Join(dir, "missing.json"), dir},
		{"simulate_fps", "--runs", "many"},
		{"unknown"},
	} {
		if _, err := Parse(args); nil == err {
			t.Log("args    ", args)
			t.Fail()
		}
	}
}
