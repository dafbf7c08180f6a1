package hiddennode

import (
	"bufio"
	"cmp"
	"encoding/csv"
	"io"
	"slices"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"github.com/vietdv277/irsstat/internal/config"
	"github.com/vietdv277/irsstat/pkg/types"
)

type groupKey struct {
	time     float64
	scenario string
}

// Average groups rows by (Time, Scenario) and averages both throughputs
// across runs. Points are sorted by time, then scenario.
func Average(rows []types.HiddenNodeRow) []types.HiddenNodePoint {
	tx1 := make(map[groupKey][]float64)
	tx2 := make(map[groupKey][]float64)
	for _, r := range rows {
		k := groupKey{r.Time, r.Scenario}
		tx1[k] = append(tx1[k], r.Tx1Throughput)
		tx2[k] = append(tx2[k], r.Tx2Throughput)
	}

	points := make([]types.HiddenNodePoint, 0, len(tx1))
	for k, v := range tx1 {
		points = append(points, types.HiddenNodePoint{
			Time:          k.time,
			Scenario:      k.scenario,
			Tx1Throughput: stat.Mean(v, nil),
			Tx2Throughput: stat.Mean(tx2[k], nil),
			Runs:          len(v),
		})
	}

	slices.SortFunc(points, func(a, b types.HiddenNodePoint) int {
		if c := cmp.Compare(a.Time, b.Time); c != 0 {
			return c
		}
		return cmp.Compare(a.Scenario, b.Scenario)
	})
	return points
}

// ScenarioSeries is the averaged time series of one scenario
type ScenarioSeries struct {
	Scenario string // display name after renaming
	Time     []float64
	Tx1      []float64
	Tx2      []float64
}

// Split turns averaged points into one series per scenario, in order of
// first appearance. Scenario names found in rename are replaced.
func Split(points []types.HiddenNodePoint, rename map[string]string) []ScenarioSeries {
	var out []ScenarioSeries
	index := make(map[string]int)
	for _, p := range points {
		name := p.Scenario
		if to, ok := config.Lookup(rename, name); ok {
			name = to
		}
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, ScenarioSeries{Scenario: name})
		}
		out[i].Time = append(out[i].Time, p.Time)
		out[i].Tx1 = append(out[i].Tx1, p.Tx1Throughput)
		out[i].Tx2 = append(out[i].Tx2, p.Tx2Throughput)
	}
	return out
}

// WriteCSV writes averaged points with a header row
func WriteCSV(w io.Writer, points []types.HiddenNodePoint) error {
	bw := bufio.NewWriter(w)
	cw := csv.NewWriter(bw)
	if err := cw.Write([]string{ColTime, ColScenario, ColTx1, ColTx2, "Runs"}); err != nil {
		return err
	}
	for _, p := range points {
		rec := []string{
			strconv.FormatFloat(p.Time, 'f', -1, 64),
			p.Scenario,
			strconv.FormatFloat(p.Tx1Throughput, 'f', -1, 64),
			strconv.FormatFloat(p.Tx2Throughput, 'f', -1, 64),
			strconv.Itoa(p.Runs),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return bw.Flush()
}
