package aggregate

import (
	"slices"

	"github.com/vietdv277/irsstat/pkg/types"
)

// Buckets groups parsed events by scenario label. Scenarios keep the order
// in which they first appeared in the log and events keep log line order.
type Buckets struct {
	order  []string
	events map[string][]types.Event
}

// NewBuckets returns an empty set of buckets
func NewBuckets() *Buckets {
	return &Buckets{
		events: make(map[string][]types.Event),
	}
}

// Add appends an event to its scenario bucket
func (b *Buckets) Add(ev types.Event) {
	b.declare(ev.Scenario)
	b.events[ev.Scenario] = append(b.events[ev.Scenario], ev)
}

func (b *Buckets) declare(scenario string) {
	if _, ok := b.events[scenario]; !ok {
		b.order = append(b.order, scenario)
		b.events[scenario] = nil
	}
}

// Scenarios returns the scenario labels in first-appearance order
func (b *Buckets) Scenarios() []string {
	return slices.Clone(b.order)
}

// Has reports whether the scenario was seen
func (b *Buckets) Has(scenario string) bool {
	_, ok := b.events[scenario]
	return ok
}

// Len returns the number of events recorded for a scenario
func (b *Buckets) Len(scenario string) int {
	return len(b.events[scenario])
}

// Total returns the number of events across all scenarios
func (b *Buckets) Total() int {
	n := 0
	for _, evs := range b.events {
		n += len(evs)
	}
	return n
}

// Events returns a copy of the events recorded for a scenario
func (b *Buckets) Events(scenario string) []types.Event {
	return slices.Clone(b.events[scenario])
}

// Throughputs returns the raw throughput values of a scenario in log order
func (b *Buckets) Throughputs(scenario string) []float64 {
	evs := b.events[scenario]
	out := make([]float64, len(evs))
	for i, ev := range evs {
		out[i] = ev.Throughput
	}
	return out
}

// Select returns the buckets restricted to the given scenarios, in that
// order. Scenarios absent from b are kept as empty buckets.
func (b *Buckets) Select(scenarios []string) *Buckets {
	sel := NewBuckets()
	for _, s := range scenarios {
		if sel.Has(s) {
			continue
		}
		sel.declare(s)
		sel.events[s] = append(sel.events[s], b.events[s]...)
	}
	return sel
}
