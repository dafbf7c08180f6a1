package aggregate

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/vietdv277/irsstat/pkg/types"
)

// Summarize computes the mean of every field per scenario, in scenario
// order. A scenario without events yields an *EmptyBucketError.
func Summarize(b *Buckets) ([]types.Summary, error) {
	out := make([]types.Summary, 0, len(b.order))
	for _, scenario := range b.order {
		events := b.events[scenario]
		if len(events) == 0 {
			return nil, &EmptyBucketError{Scenario: scenario}
		}

		tp := make([]float64, len(events))
		snr := make([]float64, len(events))
		dr := make([]float64, len(events))
		sr := make([]float64, len(events))
		for i, ev := range events {
			tp[i] = ev.Throughput
			snr[i] = ev.SNR
			dr[i] = ev.DataRate
			sr[i] = ev.SuccessRate
		}

		s := types.Summary{
			Scenario:    scenario,
			Count:       len(events),
			Throughput:  stat.Mean(tp, nil),
			SNR:         stat.Mean(snr, nil),
			DataRate:    stat.Mean(dr, nil),
			SuccessRate: stat.Mean(sr, nil),
		}
		// sample standard deviation is undefined below two samples
		if len(tp) > 1 {
			s.ThroughputStdD = stat.StdDev(tp, nil)
		}
		out = append(out, s)
	}
	return out, nil
}

// FormatSummary renders one summary as a single human readable line
func FormatSummary(s types.Summary) string {
	return fmt.Sprintf("[%s] Throughput: %.2f Mbps, SNR: %.2f dB, Data Rate: %.2f Mbps, Success Rate: %.2f%%",
		s.Scenario, s.Throughput, s.SNR, s.DataRate, s.SuccessRate)
}
