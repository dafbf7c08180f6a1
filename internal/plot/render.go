package plot

import (
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/vietdv277/irsstat/internal/output"
	"github.com/vietdv277/irsstat/internal/source"
	"github.com/vietdv277/irsstat/pkg/provider"
	"github.com/vietdv277/irsstat/pkg/types"
)

// Series is one line of a line chart
type Series struct {
	Label    string
	Scenario string // selects the colour
	X, Y     []float64
	Dashed   bool
}

// LineChart describes a chart of one or more series
type LineChart struct {
	Title  string
	XLabel string
	YLabel string
	XMin   float64 // XMin == XMax means autoscale
	XMax   float64
	Series []Series
}

func newPlot(cfg Config, title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel

	big := vg.Points(cfg.FontSize)
	small := vg.Points(cfg.FontSize * 0.8)
	p.Title.TextStyle.Font.Size = big
	p.X.Label.TextStyle.Font.Size = big
	p.Y.Label.TextStyle.Font.Size = big
	p.X.Tick.Label.Font.Size = small
	p.Y.Tick.Label.Font.Size = small
	p.Legend.TextStyle.Font.Size = small
	p.Legend.Top = true

	p.Add(plotter.NewGrid())
	return p
}

// seriesColors assigns the configured scenario colour where present and
// colour-map entries otherwise. Series of the same scenario share a colour.
func seriesColors(cfg Config, series []Series) []color.Color {
	var scenarios []string
	index := make(map[string]int)
	for _, s := range series {
		if _, ok := index[s.Scenario]; !ok {
			index[s.Scenario] = len(scenarios)
			scenarios = append(scenarios, s.Scenario)
		}
	}

	pal := cfg.palette(len(scenarios))
	out := make([]color.Color, len(series))
	for i, s := range series {
		if c, ok := cfg.scenarioColor(s.Scenario); ok {
			out[i] = c
			continue
		}
		out[i] = pal[index[s.Scenario]]
	}
	return out
}

// RenderLines draws a line chart to path
func RenderLines(cfg Config, chart LineChart, path string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if len(chart.Series) == 0 {
		return ErrNoData
	}

	p := newPlot(cfg, chart.Title, chart.XLabel, chart.YLabel)
	colors := seriesColors(cfg, chart.Series)

	for i, s := range chart.Series {
		if len(s.X) != len(s.Y) {
			return fmt.Errorf("series %s: %d x values but %d y values", s.Label, len(s.X), len(s.Y))
		}
		pts := make(plotter.XYs, len(s.X))
		for j := range s.X {
			pts[j].X = s.X[j]
			pts[j].Y = s.Y[j]
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("series %s: %w", s.Label, err)
		}
		line.LineStyle.Color = colors[i]
		line.LineStyle.Width = vg.Points(1)
		if s.Dashed {
			line.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		}

		p.Add(line)
		p.Legend.Add(s.Label, line)
	}

	if chart.XMax > chart.XMin {
		p.X.Min = chart.XMin
		p.X.Max = chart.XMax
	}

	return save(cfg, p, path)
}

// RenderValidation plots the aligned per-run throughput of each scenario
func RenderValidation(cfg Config, order []string, rows [][]float64, path string) error {
	if len(rows) == 0 {
		return ErrNoData
	}

	chart := LineChart{
		Title:  "Throughput per run",
		XLabel: "Run",
		YLabel: "Throughput (Mbps)",
	}
	for j, scenario := range order {
		s := Series{Label: scenario, Scenario: scenario}
		for i, row := range rows {
			s.X = append(s.X, float64(i+1))
			s.Y = append(s.Y, row[j])
		}
		chart.Series = append(chart.Series, s)
	}
	return RenderLines(cfg, chart, path)
}

// RenderMeans draws a bar chart of mean throughput per scenario
func RenderMeans(cfg Config, sums []types.Summary, path string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if len(sums) == 0 {
		return ErrNoData
	}

	p := newPlot(cfg, "Mean throughput", "Scenario", "Throughput (Mbps)")

	w, _ := cfg.size()
	barWidth := w / vg.Length(2*len(sums)+1)
	names := make([]string, len(sums))
	series := make([]Series, len(sums))
	for i, s := range sums {
		names[i] = s.Scenario
		series[i] = Series{Scenario: s.Scenario}
	}
	colors := seriesColors(cfg, series)

	for i, s := range sums {
		bars, err := plotter.NewBarChart(plotter.Values{s.Throughput}, barWidth)
		if err != nil {
			return fmt.Errorf("scenario %s: %w", s.Scenario, err)
		}
		bars.XMin = float64(i)
		bars.Color = colors[i]
		bars.LineStyle.Width = 0
		p.Add(bars)
	}
	p.NominalX(names...)

	return save(cfg, p, path)
}

func save(cfg Config, p *plot.Plot, path string) error {
	w, h := cfg.size()
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if format == "" {
		format = strings.ToLower(cfg.Format)
	}

	wt, err := p.WriterTo(w, h, format)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}

	store := cfg.Store
	if store == nil {
		if scheme := source.Scheme(path); scheme != "" {
			return fmt.Errorf("%w: cannot write chart to %s", provider.ErrUnsupportedScheme, scheme)
		}
		store = output.WriteFile
	}

	err = store(path, func(out io.Writer) error {
		_, err := wt.WriteTo(out)
		return err
	})
	if err != nil {
		return err
	}
	slog.Info("wrote plot", "path", path, "format", format)
	return nil
}
