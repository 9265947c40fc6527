package metrics //nolint:testpackage

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	Init(reg)

	AddOperation("append", true)
	SetElements("registered", 1)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, mf := range families {
		names[mf.GetName()] = true
	}

	assert.True(t, names["percona_dlist_operations_total"])
	assert.True(t, names["percona_dlist_fuzz_steps_total"])
	assert.True(t, names["percona_dlist_invariant_violations_total"])
	assert.True(t, names["percona_dlist_elements"])
}

func TestCounters(t *testing.T) {
	t.Parallel()

	removed := operationsTotal.WithLabelValues("remove", "false")
	before := testutil.ToFloat64(removed)
	AddOperation("remove", false)
	AddOperation("remove", false)
	assert.InDelta(t, before+2, testutil.ToFloat64(removed), 0)

	steps := testutil.ToFloat64(fuzzStepsTotal)
	AddFuzzSteps(10)
	assert.InDelta(t, steps+10, testutil.ToFloat64(fuzzStepsTotal), 0)

	SetElements("counters", 5)
	assert.InDelta(t, 5, testutil.ToFloat64(elements.WithLabelValues("counters")), 0)

	ForgetList("counters")
	SetElements("counters", 0)
	assert.InDelta(t, 0, testutil.ToFloat64(elements.WithLabelValues("counters")), 0)
}
