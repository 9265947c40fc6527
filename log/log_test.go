package log_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/percona-lab/percona-dlist/errors"
	"github.com/percona-lab/percona-dlist/log"
)

func TestCtxAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	zl := zerolog.New(&buf).Level(zerolog.TraceLevel)
	ctx := zl.WithContext(context.Background())

	ctx = log.WithAttrs(ctx, log.Scope("fuzz"), log.Name("l0"), log.Worker(3))
	log.Ctx(ctx).With(log.Operation("append")).Error(errors.New("boom"), "failed")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))

	assert.Equal(t, "fuzz", rec["s"])
	assert.Equal(t, "l0", rec["list"])
	assert.InDelta(t, 3, rec["worker"], 0)
	assert.Equal(t, "append", rec["op"])
	assert.Equal(t, "boom", rec["error"])
	assert.Equal(t, "failed", rec["message"])
	assert.Equal(t, "error", rec["level"])
}

func TestLevels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	zl := zerolog.New(&buf).Level(zerolog.InfoLevel)
	lg := log.Ctx(zl.WithContext(context.Background()))

	assert.False(t, lg.Enabled(zerolog.DebugLevel))
	assert.True(t, lg.Enabled(zerolog.WarnLevel))

	lg.Tracef("hidden %d", 1)
	lg.Debug("hidden")
	assert.Zero(t, buf.Len())

	lg.Infof("shown %d", 2)
	assert.Contains(t, buf.String(), "shown 2")
}

func TestNewUsesGlobal(t *testing.T) {
	var buf bytes.Buffer

	prev := zerolog.DefaultContextLogger
	t.Cleanup(func() { zerolog.DefaultContextLogger = prev })

	zl := zerolog.New(&buf)
	zerolog.DefaultContextLogger = &zl

	log.New("soak").Warnf("round %d", 1)
	assert.Contains(t, buf.String(), `"s":"soak"`)
	assert.Contains(t, buf.String(), "round 1")

	buf.Reset()
	log.Ctx(context.Background()).Warn("fallback")
	assert.Contains(t, buf.String(), "fallback")
}
