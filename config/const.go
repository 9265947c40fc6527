package config

import "time"

// MetricNamespace prefixes every exported metric.
const MetricNamespace = "percona_dlist"

// Fuzz defaults.
const (
	// DefaultFuzzSteps is the number of operations each fuzz worker applies.
	DefaultFuzzSteps = 10_000
	// DefaultFuzzWorkers is the number of independent lists fuzzed at once.
	DefaultFuzzWorkers = 4
	// DefaultFuzzMaxValue bounds the values fed to the lists. Small values
	// keep duplicates frequent so Remove sweeps more than one node.
	DefaultFuzzMaxValue = 16
)

// HTTP server settings for the soak command.
const (
	DefaultPort             = "2242"
	ServerReadTimeout       = 30 * time.Second
	ServerReadHeaderTimeout = 3 * time.Second
	ServerShutdownTimeout   = 5 * time.Second
)
