package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override, e.g. IRSSTAT_PLOT_FORMAT
const EnvPrefix = "IRSSTAT"

// Config is the effective irsstat configuration
type Config struct {
	Format     string           `mapstructure:"format" yaml:"format"`           // legacy, kv, jsonl
	Output     string           `mapstructure:"output" yaml:"output"`           // text, table, yaml
	Scenarios  []string         `mapstructure:"scenarios" yaml:"scenarios"`     // column order
	ColumnsOut string           `mapstructure:"columns_out" yaml:"columns_out"` // columnar export path
	AWS        AWSConfig        `mapstructure:"aws" yaml:"aws"`
	Plot       PlotConfig       `mapstructure:"plot" yaml:"plot"`
	HiddenNode HiddenNodeConfig `mapstructure:"hidden_node" yaml:"hidden_node"`
}

// AWSConfig selects credentials for s3:// locations
type AWSConfig struct {
	Profile  string `mapstructure:"profile" yaml:"profile,omitempty"`
	Region   string `mapstructure:"region" yaml:"region,omitempty"`
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint,omitempty"` // S3-compatible store
}

// PlotConfig controls chart rendering. Sizes are in inches, font size in points.
type PlotConfig struct {
	FontSize       float64           `mapstructure:"font_size" yaml:"font_size"`
	Width          float64           `mapstructure:"width" yaml:"width"`
	Height         float64           `mapstructure:"height" yaml:"height"`
	ColorMap       string            `mapstructure:"color_map" yaml:"color_map"`
	Format         string            `mapstructure:"format" yaml:"format"`
	ScenarioColors map[string]string `mapstructure:"scenario_colors" yaml:"scenario_colors,omitempty"`
}

// HiddenNodeConfig describes the multi-run hidden-node CSV layout
type HiddenNodeConfig struct {
	FirstRun int               `mapstructure:"first_run" yaml:"first_run"`
	LastRun  int               `mapstructure:"last_run" yaml:"last_run"`
	Pattern  string            `mapstructure:"pattern" yaml:"pattern"` // fmt pattern taking the run number
	XMin     float64           `mapstructure:"x_min" yaml:"x_min"`
	XMax     float64           `mapstructure:"x_max" yaml:"x_max"`
	Out      string            `mapstructure:"out" yaml:"out"`
	Rename   map[string]string `mapstructure:"rename" yaml:"rename,omitempty"`
}

// columnWidth is the single column width of the paper layout, in inches
const columnWidth = 4.5

// Default returns the configuration used when no file overrides it
func Default() *Config {
	return &Config{
		Format:     "legacy",
		Output:     "text",
		Scenarios:  []string{"LOS", "IRS", "IRSConstructive", "IRSDestructive", "MultiIRS"},
		ColumnsOut: "irs-validation.dat",
		Plot: PlotConfig{
			FontSize: 10,
			Width:    columnWidth,
			Height:   columnWidth * 0.6,
			ColorMap: "soft",
			Format:   "pdf",
			ScenarioColors: map[string]string{
				"Baseline": "#017f3f",
				"RIS":      "#0d8ad8",
				"RTS/CTS":  "#903bab",
			},
		},
		HiddenNode: HiddenNodeConfig{
			FirstRun: 1,
			LastRun:  49,
			Pattern:  "hidden-node-problem_%d.csv",
			XMin:     1,
			XMax:     15,
			Out:      "hidden_node_problem",
			Rename:   map[string]string{"IRS": "RIS"},
		},
	}
}

// GetConfigDir returns the config directory ($XDG_CONFIG_HOME/irsstat)
func GetConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "irsstat")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".irsstat"
	}
	return filepath.Join(home, ".config", "irsstat")
}

// GetConfigPath returns the default config file path
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

// SetDefaults registers every default with v so env and flags can override it
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("format", d.Format)
	v.SetDefault("output", d.Output)
	v.SetDefault("scenarios", d.Scenarios)
	v.SetDefault("columns_out", d.ColumnsOut)
	v.SetDefault("aws.profile", "")
	v.SetDefault("aws.region", "")
	v.SetDefault("aws.endpoint", "")
	v.SetDefault("plot.font_size", d.Plot.FontSize)
	v.SetDefault("plot.width", d.Plot.Width)
	v.SetDefault("plot.height", d.Plot.Height)
	v.SetDefault("plot.color_map", d.Plot.ColorMap)
	v.SetDefault("plot.format", d.Plot.Format)
	v.SetDefault("plot.scenario_colors", d.Plot.ScenarioColors)
	v.SetDefault("hidden_node.first_run", d.HiddenNode.FirstRun)
	v.SetDefault("hidden_node.last_run", d.HiddenNode.LastRun)
	v.SetDefault("hidden_node.pattern", d.HiddenNode.Pattern)
	v.SetDefault("hidden_node.x_min", d.HiddenNode.XMin)
	v.SetDefault("hidden_node.x_max", d.HiddenNode.XMax)
	v.SetDefault("hidden_node.out", d.HiddenNode.Out)
	v.SetDefault("hidden_node.rename", d.HiddenNode.Rename)
}

// Init prepares v: defaults, environment overrides and the config file.
// An explicit path must exist; the default path is optional.
func Init(v *viper.Viper, path string) error {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(GetConfigDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// Load decodes the effective configuration held by v
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// SaveConfig writes cfg as YAML to path
func SaveConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Marshal renders cfg as YAML
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Lookup finds key in m ignoring case. Map keys read through viper are
// lower-cased, so scenario names must be matched this way.
func Lookup(m map[string]string, key string) (string, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return "", false
}
