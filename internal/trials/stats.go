package trials

import (
	"math/cmplx"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/VidhiDesai2/QuantumTeleportation/internal/sim"
)

// BitFrequency returns the fraction of trials in which the classical bit
// holds outcome 1. An unwritten bit counts as not-1.
func BitFrequency(results []Result, bit int) float64 {
	if len(results) == 0 {
		return 0
	}
	xs := make([]float64, len(results))
	for i, r := range results {
		if v, ok := r.Register.Get(bit); ok && v == 1 {
			xs[i] = 1
		}
	}
	return stat.Mean(xs, nil)
}

// OutcomeCounts tallies the joint outcome string of the given classical bits
// across trials, most significant bit first. Unwritten bits read as "-".
func OutcomeCounts(results []Result, bits []int) map[string]int {
	counts := make(map[string]int)
	var sb strings.Builder
	for _, r := range results {
		sb.Reset()
		for _, b := range bits {
			v, ok := r.Register.Get(b)
			switch {
			case !ok:
				sb.WriteByte('-')
			case v == 1:
				sb.WriteByte('1')
			default:
				sb.WriteByte('0')
			}
		}
		counts[sb.String()]++
	}
	return counts
}

// Outcomes returns the tallied outcome strings sorted by descending count,
// ties broken lexically.
func Outcomes(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}

// Fidelity returns |<a|b>|^2 between two pure states of equal size.
func Fidelity(a, b *sim.StateVector) float64 {
	if len(a.Amplitudes) != len(b.Amplitudes) {
		return 0
	}
	var overlap complex128
	for i, amp := range a.Amplitudes {
		overlap += cmplx.Conj(amp) * b.Amplitudes[i]
	}
	m := cmplx.Abs(overlap)
	return m * m
}

// Mean is the arithmetic mean of the samples.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

// StdDev is the sample standard deviation.
func StdDev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.StdDev(xs, nil)
}
