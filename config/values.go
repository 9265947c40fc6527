package config

import (
	"os"
	"strconv"
)

// FuzzSeed returns the seed set by the DLIST_FUZZ_SEED environment variable.
// The second value is false when the variable is unset or not an integer.
func FuzzSeed() (int64, bool) {
	s := os.Getenv("DLIST_FUZZ_SEED")
	if s == "" {
		return 0, false
	}

	seed, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}

	return seed, true
}
