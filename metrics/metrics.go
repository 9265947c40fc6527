package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/percona-lab/percona-dlist/config"
)

// Counters.
var (
	//nolint:gochecknoglobals
	operationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:      "operations_total",
		Help:      "Total number of list operations by operation and result.",
		Namespace: config.MetricNamespace,
	}, []string{"op", "result"})

	//nolint:gochecknoglobals
	fuzzStepsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name:      "fuzz_steps_total",
		Help:      "Total number of fuzz steps applied and verified.",
		Namespace: config.MetricNamespace,
	})

	//nolint:gochecknoglobals
	invariantViolationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name:      "invariant_violations_total",
		Help:      "Total number of structural checks that failed.",
		Namespace: config.MetricNamespace,
	})
)

// Gauges.
var (
	//nolint:gochecknoglobals
	elements = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name:      "elements",
		Help:      "Number of elements held by a list after its last mutation.",
		Namespace: config.MetricNamespace,
	}, []string{"list"})
)

// Init initializes and registers the metrics.
func Init(reg prometheus.Registerer) {
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{
		Namespace: config.MetricNamespace,
	}))

	reg.MustRegister(
		operationsTotal,
		fuzzStepsTotal,
		invariantViolationsTotal,
		elements,
	)
}

// AddOperation increments the operation counter. ok is the boolean result of
// the operation; operations without a result count as true.
func AddOperation(op string, ok bool) {
	operationsTotal.WithLabelValues(op, strconv.FormatBool(ok)).Inc()
}

// AddFuzzSteps increments the fuzz steps counter.
func AddFuzzSteps(v int) {
	fuzzStepsTotal.Add(float64(v))
}

// AddInvariantViolation increments the invariant violations counter.
func AddInvariantViolation() {
	invariantViolationsTotal.Inc()
}

// SetElements sets the element count gauge for the named list.
func SetElements(list string, size int) {
	elements.WithLabelValues(list).Set(float64(size))
}

// ForgetList drops the element gauge of a list that is gone.
func ForgetList(list string) {
	elements.DeleteLabelValues(list)
}
