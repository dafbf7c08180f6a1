package aggregate

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// DefaultColumnOrder is the column layout expected by the validation plots
var DefaultColumnOrder = []string{"LOS", "IRS", "IRSConstructive", "IRSDestructive", "MultiIRS"}

// ExportColumns lines up the raw throughput values of the requested
// scenarios. Row i holds the i-th measurement of every scenario in order.
// All requested scenarios must have the same number of measurements.
func ExportColumns(b *Buckets, order []string) ([][]float64, error) {
	if len(order) == 0 {
		return nil, ErrNoScenarios
	}

	cols := make([][]float64, len(order))
	lengths := make([]int, len(order))
	for i, scenario := range order {
		if !b.Has(scenario) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownScenario, scenario)
		}
		cols[i] = b.Throughputs(scenario)
		lengths[i] = len(cols[i])
	}

	n := lengths[0]
	for _, l := range lengths[1:] {
		if l != n {
			return nil, &LengthMismatchError{Scenarios: append([]string(nil), order...), Lengths: lengths}
		}
	}

	rows := make([][]float64, n)
	for i := range rows {
		row := make([]float64, len(cols))
		for j, col := range cols {
			row[j] = col[i]
		}
		rows[i] = row
	}
	return rows, nil
}

// WriteColumns writes one row per line with space separated values
func WriteColumns(w io.Writer, rows [][]float64) error {
	bw := bufio.NewWriter(w)
	for _, row := range rows {
		fields := make([]string, len(row))
		for i, v := range row {
			fields[i] = FormatValue(v)
		}
		if _, err := bw.WriteString(strings.Join(fields, " ") + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// FormatValue renders v in its shortest form, always keeping a decimal
// point for finite values ("10.0", "93.12")
func FormatValue(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if math.IsInf(v, 0) || math.IsNaN(v) || strings.Contains(s, ".") {
		return s
	}
	return s + ".0"
}
