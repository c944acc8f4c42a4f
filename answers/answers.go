// Package answers holds query answers, (source, target) pairs with their
// minimal discovered cost, and the post-processing applied to them: top-K
// trimming, threshold trimming, largest weight and summary statistics.
package answers

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Pair identifies an answer by its source and target database nodes.
type Pair struct {
	Source string
	Target string
}

// String renders the pair as (source, target).
func (p Pair) String() string {
	return fmt.Sprintf("(%s, %s)", p.Source, p.Target)
}

// Map is an answer set: pair → minimal cost. Only finite costs are stored.
type Map map[Pair]float64

// Entry is one answer of a Map, used for ordered output.
type Entry struct {
	Pair
	Cost float64
}

// String renders the entry in the report format "(s, t) with cost c".
func (e Entry) String() string {
	return fmt.Sprintf("%s with cost %g", e.Pair, e.Cost)
}

// Merge copies src into m; entries already in m are overwritten.
func (m Map) Merge(src Map) {
	for k, v := range src {
		m[k] = v
	}
}

// Sorted returns the entries ordered by cost ascending, then source, then target.
func (m Map) Sorted() []Entry {
	out := make([]Entry, 0, len(m))
	for p, c := range m {
		out = append(out, Entry{Pair: p, Cost: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Cost != out[j].Cost {
			return out[i].Cost < out[j].Cost
		}
		if out[i].Source != out[j].Source {
			return out[i].Source < out[j].Source
		}
		return out[i].Target < out[j].Target
	})

	return out
}

// Costs returns the costs in Sorted order.
func (m Map) Costs() []float64 {
	entries := m.Sorted()
	out := make([]float64, len(entries))
	for i, e := range entries {
		out[i] = e.Cost
	}

	return out
}

// TopK returns the k cheapest answers of m. Ties on cost keep the entry whose
// (source, target) sorts first. k <= 0 yields an empty map.
func TopK(m Map, k int) Map {
	out := make(Map, min(max(k, 0), len(m)))
	if k <= 0 {
		return out
	}
	for i, e := range m.Sorted() {
		if i == k {
			break
		}
		out[e.Pair] = e.Cost
	}

	return out
}

// Threshold returns the answers of m whose cost is at most bound.
func Threshold(m Map, bound float64) Map {
	out := make(Map)
	for p, c := range m {
		if c <= bound {
			out[p] = c
		}
	}

	return out
}

// Largest returns the maximum cost in m; ok is false when m is empty.
func Largest(m Map) (float64, bool) {
	if len(m) == 0 {
		return 0, false
	}

	return floats.Max(m.Costs()), true
}

// Summary describes the cost distribution of an answer set.
type Summary struct {
	Count int
	Min   float64
	Max   float64
	Mean  float64
}

// Summarize computes count, min, max and mean of the costs in m.
// An empty map yields the zero Summary.
func Summarize(m Map) Summary {
	if len(m) == 0 {
		return Summary{}
	}
	costs := m.Costs()

	return Summary{
		Count: len(costs),
		Min:   floats.Min(costs),
		Max:   floats.Max(costs),
		Mean:  stat.Mean(costs, nil),
	}
}
