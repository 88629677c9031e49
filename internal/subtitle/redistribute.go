package subtitle

import "math"

const (
	// entries closer than this share a timestamp
	sameTimeEpsilon = 1e-9

	// gaps at or below this are too narrow to spread a run across
	minSpreadGap = 1e-6

	// per-member step when a run has no usable gap to the next timestamp
	FallbackStep = 0.05
)

// Redistribute spreads runs of entries that share one timestamp across
// the gap to the next distinct timestamp. entries must be sorted by
// time. The k-th member of a run of length L starting at t0 is moved to
// t0 + k*(tNext-t0)/L, or to t0 + k*FallbackStep when the run is last or
// the gap is degenerate. Fallback times are not clamped against tNext.
// The input is not modified; the result is sorted by time.
func Redistribute(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	n := len(entries)

	for i := 0; i < n; {
		j := runEnd(entries, i)

		run := entries[i:j]
		if len(run) == 1 {
			out = append(out, run[0])
			i = j
			continue
		}

		t0 := run[0].Time
		step := FallbackStep
		if j < n {
			if gap := entries[j].Time - t0; gap > minSpreadGap {
				step = gap / float64(len(run))
			}
		}

		for k, e := range run {
			out = append(out, NewEntry(t0+step*float64(k), e.Text))
		}
		i = j
	}

	SortEntries(out)

	return out
}

// Runs returns the lengths of consecutive same-time groups in sorted
// entries.
func Runs(entries []Entry) []int {
	var runs []int
	for i := 0; i < len(entries); {
		j := runEnd(entries, i)
		runs = append(runs, j-i)
		i = j
	}
	return runs
}

// index one past the run that starts at i
func runEnd(entries []Entry, i int) int {
	j := i + 1
	for j < len(entries) && math.Abs(entries[j].Time-entries[i].Time) < sameTimeEpsilon {
		j++
	}
	return j
}
