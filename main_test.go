package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/percona-lab/percona-dlist/list"
	"github.com/percona-lab/percona-dlist/scenario"
)

func TestBuildServerAddr(t *testing.T) {
	t.Parallel()

	addr, err := buildServerAddr("2242")
	require.NoError(t, err)
	assert.Equal(t, "localhost:2242", addr)

	_, err = buildServerAddr("80")
	require.ErrorIs(t, err, errUnsupportedPortRange)

	_, err = buildServerAddr("65536")
	require.ErrorIs(t, err, errUnsupportedPortRange)

	_, err = buildServerAddr("port")
	require.Error(t, err)
}

func TestFuzzOptions(t *testing.T) {
	t.Setenv("DLIST_FUZZ_SEED", "99")

	cmd := newRootCmd()
	fuzzCmd, _, err := cmd.Find([]string{"fuzz"})
	require.NoError(t, err)

	require.NoError(t, fuzzCmd.Flags().Parse([]string{"--steps", "50", "--workers", "2"}))

	opts, err := fuzzOptions(fuzzCmd.Flags())
	require.NoError(t, err)
	assert.Equal(t, 50, opts.Steps)
	assert.Equal(t, 2, opts.Workers)
	assert.Equal(t, int64(99), opts.Seed)
	assert.Equal(t, list.KindLinked, opts.Kind)

	require.NoError(t, fuzzCmd.Flags().Parse([]string{"--seed", "3", "--kind", "array"}))
	_, err = fuzzOptions(fuzzCmd.Flags())
	require.ErrorIs(t, err, list.ErrUnknownKind)
}

func TestReplay(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	bad := filepath.Join(dir, "bad.yaml")

	require.NoError(t, os.WriteFile(good,
		[]byte("steps:\n  - {op: append, value: 1}\n  - {op: insertAt, index: 0, value: 0}\nexpect: [0, 1]\n"), 0o600))
	require.NoError(t, os.WriteFile(bad,
		[]byte("steps:\n  - {op: append, value: 1}\n  - {op: removeAt, index: 0, want: true}\n"), 0o600))

	var out bytes.Buffer

	err := replay(context.Background(), &out, []string{good, bad, filepath.Join(dir, "missing.yaml")})
	require.ErrorIs(t, err, scenario.ErrMismatch)
	require.ErrorIs(t, err, os.ErrNotExist)

	assert.Contains(t, out.String(), "ok   good.yaml: 2 steps, [0, 1]")
	assert.Contains(t, out.String(), "FAIL bad.yaml")
}

func TestFuzzCommand(t *testing.T) {
	cmd := newRootCmd()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"fuzz", "--log-level", "warn", "--steps", "300", "--workers", "2", "--seed", "5"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "600 steps across 2 workers (seed 5)")
}
