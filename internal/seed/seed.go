// Package seed derives the deterministic selectors used for every template
// choice in a chronicle. There is no shared RNG: a seed is a pure hash of the
// event-derived values it is computed from.
package seed

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Derive returns the seed for a choice keyed on a year, a significance and a salt
// naming the kind of choice being made.
func Derive(year int, significance float64, salt string) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(int64(year)))
	binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(significance))

	d := xxhash.New()
	d.Write(buf[:])
	d.WriteString(salt)
	return d.Sum64()
}

// Of returns the seed for a choice keyed on strings alone.
func Of(parts ...string) uint64 {
	d := xxhash.New()
	for _, p := range parts {
		d.WriteString(p)
		d.Write([]byte{0})
	}
	return d.Sum64()
}

// Pick maps s onto an index in [0, n). It returns 0 when n <= 0.
func Pick(s uint64, n int) int {
	if n <= 0 {
		return 0
	}
	return int(s % uint64(n))
}

// Choose returns the option selected by s. options must not be empty.
func Choose[T any](s uint64, options []T) T {
	return options[Pick(s, len(options))]
}
