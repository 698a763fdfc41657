// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Interface defines the contract for accessing application configuration.
// This allows for dependency injection and mocking in tests.
type Interface interface {
	Logger() LoggerConfig
	Layout() LayoutConfig
	Render() RenderConfig
	Engine() EngineConfig

	// Engine Setters
	SetEngineWorkerConcurrency(int)

	// Render Setters
	SetRenderFormat(string)
	SetRenderOutputDir(string)
}

// Config holds the entire application configuration.
type Config struct {
	LoggerCfg LoggerConfig `mapstructure:"logger" yaml:"logger"`
	LayoutCfg LayoutConfig `mapstructure:"layout" yaml:"layout"`
	RenderCfg RenderConfig `mapstructure:"render" yaml:"render"`
	EngineCfg EngineConfig `mapstructure:"engine" yaml:"engine"`
}

var _ Interface = (*Config)(nil)

// -- Getters --

func (c *Config) Logger() LoggerConfig { return c.LoggerCfg }
func (c *Config) Layout() LayoutConfig { return c.LayoutCfg }
func (c *Config) Render() RenderConfig { return c.RenderCfg }
func (c *Config) Engine() EngineConfig { return c.EngineCfg }

// -- Setters --

func (c *Config) SetEngineWorkerConcurrency(w int) { c.EngineCfg.WorkerConcurrency = w }
func (c *Config) SetRenderFormat(f string)         { c.RenderCfg.Format = f }
func (c *Config) SetRenderOutputDir(d string)      { c.RenderCfg.OutputDir = d }

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string      `mapstructure:"level" yaml:"level"`
	Format      string      `mapstructure:"format" yaml:"format"`
	AddSource   bool        `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string      `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string      `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int         `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int         `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool        `mapstructure:"compress" yaml:"compress"`
	Colors      ColorConfig `mapstructure:"colors" yaml:"colors"`
}

// ColorConfig defines the color codes for different log levels.
type ColorConfig struct {
	Debug  string `mapstructure:"debug" yaml:"debug"`
	Info   string `mapstructure:"info" yaml:"info"`
	Warn   string `mapstructure:"warn" yaml:"warn"`
	Error  string `mapstructure:"error" yaml:"error"`
	DPanic string `mapstructure:"dpanic" yaml:"dpanic"`
	Panic  string `mapstructure:"panic" yaml:"panic"`
	Fatal  string `mapstructure:"fatal" yaml:"fatal"`
}

// LayoutConfig tunes style resolution and box layout. Lengths are in points.
type LayoutConfig struct {
	DPI             float64 `mapstructure:"dpi" yaml:"dpi"`
	DefaultFontSize float64 `mapstructure:"default_font_size" yaml:"default_font_size"`
	// PageSize names a paper size such as "a4" or "letter landscape". When
	// set it replaces PageWidth and PageHeight.
	PageSize   string  `mapstructure:"page_size" yaml:"page_size"`
	PageWidth  float64 `mapstructure:"page_width" yaml:"page_width"`
	PageHeight float64 `mapstructure:"page_height" yaml:"page_height"`
	PageMargin float64 `mapstructure:"page_margin" yaml:"page_margin"`
	// CharWidth is the average glyph advance as a fraction of the font size.
	CharWidth float64 `mapstructure:"char_width" yaml:"char_width"`
	// LineHeight is the line box height as a multiple of the font size.
	LineHeight     float64 `mapstructure:"line_height" yaml:"line_height"`
	UserStylesheet string  `mapstructure:"user_stylesheet" yaml:"user_stylesheet"`
}

// RenderConfig controls what the layout command writes.
type RenderConfig struct {
	// Format is one of text, json, xml or ops (the recorded draw operations).
	Format      string `mapstructure:"format" yaml:"format"`
	OutputDir   string `mapstructure:"output_dir" yaml:"output_dir"`
	FontFamily  string `mapstructure:"font_family" yaml:"font_family"`
	DrawBorders bool   `mapstructure:"draw_borders" yaml:"draw_borders"`
}

// EngineConfig configures document processing.
type EngineConfig struct {
	WorkerConcurrency int           `mapstructure:"worker_concurrency" yaml:"worker_concurrency"`
	DocumentTimeout   time.Duration `mapstructure:"document_timeout" yaml:"document_timeout"`
}

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values for various configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "folio")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)

	// -- Layout --
	// A4 portrait.
	v.SetDefault("layout.dpi", 96.0)
	v.SetDefault("layout.default_font_size", 12.0)
	v.SetDefault("layout.page_size", "")
	v.SetDefault("layout.page_width", 595.28)
	v.SetDefault("layout.page_height", 841.89)
	v.SetDefault("layout.page_margin", 36.0)
	v.SetDefault("layout.char_width", 0.5)
	v.SetDefault("layout.line_height", 1.2)
	v.SetDefault("layout.user_stylesheet", "")

	// -- Render --
	v.SetDefault("render.format", "text")
	v.SetDefault("render.output_dir", "")
	v.SetDefault("render.font_family", "Helvetica")
	v.SetDefault("render.draw_borders", true)

	// -- Engine --
	v.SetDefault("engine.worker_concurrency", 4)
	v.SetDefault("engine.document_timeout", "30s")
}

// NewConfigFromViper creates a new configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config

	v.BindEnv("render.output_dir", "FOLIO_OUTPUT_DIR")
	v.BindEnv("layout.user_stylesheet", "FOLIO_STYLESHEET")

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if cfg.RenderCfg.OutputDir == "" {
		cfg.RenderCfg.OutputDir = os.Getenv("FOLIO_OUTPUT_DIR")
	}
	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}
	if err := cfg.LayoutCfg.ApplyPageSize(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// expandPaths resolves a leading ~ in every path setting.
func (c *Config) expandPaths() error {
	for _, p := range []*string{&c.LoggerCfg.LogFile, &c.LayoutCfg.UserStylesheet, &c.RenderCfg.OutputDir} {
		if *p == "" {
			continue
		}
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("failed to expand path %q: %w", *p, err)
		}
		*p = expanded
	}
	return nil
}

// Validate checks the configuration for required fields and sane values.
func (c *Config) Validate() error {
	if c.EngineCfg.WorkerConcurrency <= 0 {
		return fmt.Errorf("engine.worker_concurrency must be a positive integer")
	}
	if err := c.LayoutCfg.Validate(); err != nil {
		return fmt.Errorf("layout configuration invalid: %w", err)
	}
	if err := c.RenderCfg.Validate(); err != nil {
		return fmt.Errorf("render configuration invalid: %w", err)
	}
	return nil
}

// paperSizes are portrait page sizes in points.
var paperSizes = map[string][2]float64{
	"a3":     {841.89, 1190.55},
	"a4":     {595.28, 841.89},
	"a5":     {419.53, 595.28},
	"letter": {612, 792},
	"legal":  {612, 1008},
}

// ApplyPageSize sets PageWidth and PageHeight from PageSize. The name may be
// followed by "portrait" or "landscape". An empty PageSize changes nothing.
func (l *LayoutConfig) ApplyPageSize() error {
	fields := strings.Fields(strings.ToLower(l.PageSize))
	if len(fields) == 0 {
		return nil
	}
	size, ok := paperSizes[fields[0]]
	if !ok || len(fields) > 2 {
		return fmt.Errorf("unknown page_size %q", l.PageSize)
	}
	w, h := size[0], size[1]
	if len(fields) == 2 {
		switch fields[1] {
		case "portrait":
		case "landscape":
			w, h = h, w
		default:
			return fmt.Errorf("unknown page_size orientation %q", fields[1])
		}
	}
	l.PageWidth, l.PageHeight = w, h
	return nil
}

// Validate checks the layout settings.
func (l *LayoutConfig) Validate() error {
	if l.DPI <= 0 {
		return fmt.Errorf("dpi must be positive")
	}
	if l.DefaultFontSize <= 0 {
		return fmt.Errorf("default_font_size must be positive")
	}
	if l.PageWidth <= 0 || l.PageHeight <= 0 {
		return fmt.Errorf("page_width and page_height must be positive")
	}
	if l.PageMargin < 0 || 2*l.PageMargin >= l.PageWidth || 2*l.PageMargin >= l.PageHeight {
		return fmt.Errorf("page_margin must leave a non-empty content area")
	}
	if l.CharWidth <= 0 || l.LineHeight <= 0 {
		return fmt.Errorf("char_width and line_height must be positive")
	}
	return nil
}

// Validate checks the render settings.
func (r *RenderConfig) Validate() error {
	switch r.Format {
	case "text", "json", "xml", "ops":
		return nil
	default:
		return fmt.Errorf("format must be one of text, json, xml, ops; got %q", r.Format)
	}
}
