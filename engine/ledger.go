package engine

import "math"

// Entry is one recorded operation: the tag, a snapshot of the inputs at
// call time, the result, and the entry's position in the ledger.
type Entry struct {
	Inputs   map[string]float64
	Op       Op
	Result   float64
	Sequence int
}

// Ledger is the append-only per-engine record of operations. Entries are
// never reordered or mutated after insertion.
type Ledger struct {
	entries []Entry
}

// record appends an entry with Sequence equal to the current length. The
// inputs map is owned by the ledger from this point on; callers build a
// fresh map per call.
func (l *Ledger) record(op Op, inputs map[string]float64, result float64) {
	l.entries = append(l.entries, Entry{
		Op:       op,
		Inputs:   inputs,
		Result:   result,
		Sequence: len(l.entries),
	})
}

// History returns a copy of the ledger. Mutating the returned entries or
// their input maps does not affect the ledger.
func (l *Ledger) History() []Entry {
	out := make([]Entry, len(l.entries))
	for i, e := range l.entries {
		inputs := make(map[string]float64, len(e.Inputs))
		for k, v := range e.Inputs {
			inputs[k] = v
		}
		e.Inputs = inputs
		out[i] = e
	}
	return out
}

// Len returns the number of recorded entries.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Clear empties the ledger. It does not touch the engine's random source.
func (l *Ledger) Clear() {
	l.entries = l.entries[:0]
}

// ResultStats summarizes the recorded result values.
type ResultStats struct {
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Stats describes the ledger contents. For an empty ledger only
// TotalOperations is meaningful; OperationCounts is nil and Results is nil.
type Stats struct {
	OperationCounts map[Op]int
	Results         *ResultStats
	TotalOperations int
}

// Stats computes summary statistics over all recorded entries.
func (l *Ledger) Stats() Stats {
	if len(l.entries) == 0 {
		return Stats{}
	}

	counts := make(map[Op]int, len(opTags))
	sum := 0.0
	min := math.Inf(1)
	max := math.Inf(-1)
	for _, e := range l.entries {
		counts[e.Op]++
		sum += e.Result
		min = math.Min(min, e.Result)
		max = math.Max(max, e.Result)
	}

	n := float64(len(l.entries))
	mean := sum / n
	variance := 0.0
	for _, e := range l.entries {
		d := e.Result - mean
		variance += d * d
	}
	variance /= n

	return Stats{
		TotalOperations: len(l.entries),
		OperationCounts: counts,
		Results: &ResultStats{
			Mean:   mean,
			StdDev: math.Sqrt(variance),
			Min:    min,
			Max:    max,
		},
	}
}
