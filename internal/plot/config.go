// Package plot renders simulation comparison charts with gonum/plot.
package plot

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/vietdv277/irsstat/internal/config"
)

// Common errors
var (
	ErrInvalidSize   = errors.New("plot size must be positive")
	ErrInvalidFont   = errors.New("font size must be positive")
	ErrUnknownFormat = errors.New("unknown plot format")
	ErrUnknownColors = errors.New("unknown color map")
	ErrNoData        = errors.New("nothing to plot")
)

// Formats supported by gonum/plot writers
var Formats = []string{"png", "svg", "pdf", "eps", "jpg", "jpeg", "tif", "tiff"}

// ColorMaps recognised by Config.ColorMap
var ColorMaps = []string{"soft", "dark", "moreland"}

// Config is passed to every render call
type Config struct {
	FontSize       float64 // points
	Width          float64 // inches
	Height         float64 // inches
	ColorMap       string
	Format         string
	ScenarioColors map[string]string // hex colours by scenario

	// Store writes the rendered chart to path. When nil only local paths
	// are accepted and written atomically.
	Store func(path string, write func(w io.Writer) error) error
}

// FromConfig converts the plot section of the app config
func FromConfig(pc config.PlotConfig) Config {
	return Config{
		FontSize:       pc.FontSize,
		Width:          pc.Width,
		Height:         pc.Height,
		ColorMap:       pc.ColorMap,
		Format:         pc.Format,
		ScenarioColors: pc.ScenarioColors,
	}
}

// Validate checks every option before anything is drawn
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %vx%v", ErrInvalidSize, c.Width, c.Height)
	}
	if c.FontSize <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidFont, c.FontSize)
	}
	if !slices.Contains(Formats, strings.ToLower(c.Format)) {
		return fmt.Errorf("%w %q", ErrUnknownFormat, c.Format)
	}
	if !slices.Contains(ColorMaps, strings.ToLower(c.ColorMap)) {
		return fmt.Errorf("%w %q", ErrUnknownColors, c.ColorMap)
	}
	for name, hex := range c.ScenarioColors {
		if _, err := colorful.Hex(hex); err != nil {
			return fmt.Errorf("color for %s: %w", name, err)
		}
	}
	return nil
}

// OutputPath appends the configured format as extension when base has none
func (c Config) OutputPath(base string) string {
	if filepath.Ext(base) != "" {
		return base
	}
	return base + "." + strings.ToLower(c.Format)
}

func (c Config) size() (vg.Length, vg.Length) {
	return vg.Length(c.Width) * vg.Inch, vg.Length(c.Height) * vg.Inch
}

// palette returns n distinct colours from the configured colour map
func (c Config) palette(n int) []color.Color {
	if n <= 0 {
		return nil
	}
	var base []color.Color
	switch strings.ToLower(c.ColorMap) {
	case "dark":
		base = plotutil.DarkColors
	case "moreland":
		return morelandColors(n)
	default:
		base = plotutil.SoftColors
	}

	out := make([]color.Color, n)
	for i := range out {
		out[i] = base[i%len(base)]
	}
	return out
}

// morelandColors samples n colours evenly from the smooth blue-red map. A
// single colour takes the middle of the map.
func morelandColors(n int) []color.Color {
	cm := moreland.SmoothBlueRed()
	cm.SetMin(0)
	cm.SetMax(1)

	out := make([]color.Color, n)
	for i := range out {
		v := 0.5
		if n > 1 {
			v = float64(i) / float64(n-1)
		}
		col, err := cm.At(v)
		if err != nil {
			col = plotutil.SoftColors[i%len(plotutil.SoftColors)]
		}
		out[i] = col
	}
	return out
}

// scenarioColor returns the configured colour for a scenario, if any
func (c Config) scenarioColor(scenario string) (color.Color, bool) {
	hex, ok := config.Lookup(c.ScenarioColors, scenario)
	if !ok {
		return nil, false
	}
	col, err := colorful.Hex(hex)
	if err != nil {
		return nil, false
	}
	return col, true
}
