// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultOutputSubdir = "komprimiert"
	DefaultMergeName    = "Zusammengefuehrt.pdf"

	// ModeReset clears the /Rotate flag of every page, content stays untouched.
	ModeReset = "reset"
	// ModeRasterize renders every page and paints the rotated bitmap onto a new page.
	ModeRasterize = "rasterize"

	ValidationRelaxed = "relaxed"
	ValidationStrict  = "strict"
)

type Rotation struct {
	Mode          string  `yaml:"mode"`
	RasterDPI     float64 `yaml:"raster_dpi"`
	RasterDegrees int     `yaml:"raster_degrees"`
	PageWidth     float64 `yaml:"page_width"`
	PageHeight    float64 `yaml:"page_height"`
}

type Compression struct {
	DeflateStreams bool `yaml:"deflate_streams"`
	ObjectStreams  bool `yaml:"object_streams"`
}

type Config struct {
	OutputSubdir     string      `yaml:"output_subdir"`
	MergeDefaultName string      `yaml:"merge_default_name"`
	Validation       string      `yaml:"validation"`
	Rotation         Rotation    `yaml:"rotation"`
	Compression      Compression `yaml:"compression"`
}

// Default returns the configuration used when no file is given. The raster
// page box is three quarters of A4 (595x842 pt).
func Default() *Config {
	return &Config{
		OutputSubdir:     DefaultOutputSubdir,
		MergeDefaultName: DefaultMergeName,
		Validation:       ValidationRelaxed,
		Rotation: Rotation{
			Mode:          ModeReset,
			RasterDPI:     144,
			RasterDegrees: 180,
			PageWidth:     446,
			PageHeight:    631,
		},
		Compression: Compression{
			DeflateStreams: true,
			ObjectStreams:  true,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if cfg.OutputSubdir == "" {
		cfg.OutputSubdir = DefaultOutputSubdir
	}
	if cfg.MergeDefaultName == "" {
		cfg.MergeDefaultName = DefaultMergeName
	}
	if cfg.Validation == "" {
		cfg.Validation = ValidationRelaxed
	}
	if cfg.Rotation.Mode == "" {
		cfg.Rotation.Mode = ModeReset
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Rotation.Mode {
	case ModeReset, ModeRasterize:
	default:
		return fmt.Errorf("unknown rotation mode %q (want %q or %q)", c.Rotation.Mode, ModeReset, ModeRasterize)
	}
	switch c.Validation {
	case ValidationRelaxed, ValidationStrict:
	default:
		return fmt.Errorf("unknown validation mode %q", c.Validation)
	}
	if c.Rotation.RasterDegrees%90 != 0 {
		return fmt.Errorf("raster_degrees must be a multiple of 90, got %d", c.Rotation.RasterDegrees)
	}
	if c.Rotation.RasterDPI <= 0 || c.Rotation.PageWidth <= 0 || c.Rotation.PageHeight <= 0 {
		return fmt.Errorf("raster dpi and page size must be greater than 0")
	}
	return nil
}
