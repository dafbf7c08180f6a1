// Package hiddennode averages the per-run throughput CSVs of the hidden-node
// experiment.
package hiddennode

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vietdv277/irsstat/internal/source"
	"github.com/vietdv277/irsstat/pkg/provider"
	"github.com/vietdv277/irsstat/pkg/types"
)

// CSV column names written by the hidden-node example
const (
	ColTime     = "Time"
	ColScenario = "Scenario"
	ColTx1      = "Tx1_Throughput"
	ColTx2      = "Tx2_Throughput"
)

// maxParallel bounds how many run files are read at once
const maxParallel = 8

var (
	ErrMissingColumn = errors.New("missing CSV column")
	ErrNoRuns        = errors.New("no runs selected")
	ErrBadPattern    = errors.New("run pattern must contain exactly one integer verb")
)

// verbRe matches one fmt verb with optional flags and width
var verbRe = regexp.MustCompile(`%[-+# 0]*[0-9]*(\.[0-9]*)?[a-zA-Z]`)

// RunSet selects the run files to load
type RunSet struct {
	Dir     string // local directory or s3:// prefix
	Pattern string // fmt pattern taking the run number
	First   int
	Last    int
}

// ValidatePattern checks that pattern formats exactly one run number, as
// in "hidden-node-problem_%d.csv" or "run-%03d.csv"
func ValidatePattern(pattern string) error {
	verbs := verbRe.FindAllString(strings.ReplaceAll(pattern, "%%", ""), -1)
	if len(verbs) != 1 || !strings.HasSuffix(verbs[0], "d") {
		return fmt.Errorf("%w: %q", ErrBadPattern, pattern)
	}
	return nil
}

// Location returns the file location of one run
func (rs RunSet) Location(run int) string {
	name := fmt.Sprintf(rs.Pattern, run)
	if source.Scheme(rs.Dir) != "" {
		return strings.TrimSuffix(rs.Dir, "/") + "/" + name
	}
	return filepath.Join(rs.Dir, name)
}

// LoadRuns reads every run of rs. Rows keep file order, runs are
// concatenated in run order.
func LoadRuns(ctx context.Context, src provider.LogSource, rs RunSet) ([]types.HiddenNodeRow, error) {
	if rs.Last < rs.First {
		return nil, fmt.Errorf("%w: %d..%d", ErrNoRuns, rs.First, rs.Last)
	}
	if err := ValidatePattern(rs.Pattern); err != nil {
		return nil, err
	}

	results := make([][]types.HiddenNodeRow, rs.Last-rs.First+1)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)

	for i := range results {
		i := i
		run := rs.First + i
		g.Go(func() error {
			rows, err := loadRun(ctx, src, rs.Location(run), run)
			if err != nil {
				return err
			}
			results[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []types.HiddenNodeRow
	for _, rows := range results {
		all = append(all, rows...)
	}
	slog.Debug("loaded hidden-node runs", "runs", len(results), "rows", len(all))
	return all, nil
}

func loadRun(ctx context.Context, src provider.LogSource, location string, run int) ([]types.HiddenNodeRow, error) {
	rc, err := src.Open(ctx, location)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	rows, err := ReadRun(rc, run)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", location, err)
	}
	return rows, nil
}

// ReadRun parses one run CSV. The header may list the columns in any order.
func ReadRun(r io.Reader, run int) ([]types.HiddenNodeRow, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, name := range []string{ColTime, ColScenario, ColTx1, ColTx2} {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("%w %q", ErrMissingColumn, name)
		}
	}

	var rows []types.HiddenNodeRow
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)

		row := types.HiddenNodeRow{Run: run, Scenario: rec[idx[ColScenario]]}
		fields := []struct {
			name string
			dst  *float64
		}{
			{ColTime, &row.Time},
			{ColTx1, &row.Tx1Throughput},
			{ColTx2, &row.Tx2Throughput},
		}
		for _, f := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[idx[f.name]]), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %s: %w", line, f.name, err)
			}
			*f.dst = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}
