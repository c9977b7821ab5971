package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/ncpeek/internal/mask"
	"github.com/san-kum/ncpeek/internal/render"
	"github.com/san-kum/ncpeek/internal/scale"
	"github.com/san-kum/ncpeek/internal/slice"
)

const (
	DefaultMargin    = slice.DefaultMargin
	DefaultTicks     = scale.DefaultTicks
	DefaultGlyphBase = scale.DefaultBase
	DefaultColormap  = "viridis"
)

// Animation domain modes.
const (
	DomainPinned = "pinned"
	DomainFrame  = "frame"
)

// AllTimes selects every time index during conversion.
const AllTimes = -1

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Variable   string    `yaml:"variable"`
	Dims       DimConfig `yaml:"dims"`
	Margin     int       `yaml:"margin"`
	Ticks      int       `yaml:"ticks"`
	GlyphBase  int       `yaml:"glyph_base"`
	Colormap   string    `yaml:"colormap"`
	Domain     string    `yaml:"domain"`
	Exclude    []string  `yaml:"exclude"`
	YearOffset int       `yaml:"year_offset"`
	TimeIndex  int       `yaml:"time_index"`
	Output     string    `yaml:"output"`
}

type DimConfig struct {
	Time string `yaml:"time"`
	Lat  string `yaml:"lat"`
	Lon  string `yaml:"lon"`
}

func DefaultConfig() *Config {
	return &Config{
		Dims:      DimConfig{Time: "time", Lat: "lat", Lon: "lon"},
		Margin:    DefaultMargin,
		Ticks:     DefaultTicks,
		GlyphBase: DefaultGlyphBase,
		Colormap:  DefaultColormap,
		Domain:    DomainPinned,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values no component can act on.
func (c *Config) Validate() error {
	if _, err := render.GetColormap(c.Colormap); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Domain != DomainPinned && c.Domain != DomainFrame {
		return fmt.Errorf("%w: domain mode %q (want %s or %s)", ErrInvalid, c.Domain, DomainPinned, DomainFrame)
	}
	for _, name := range c.Exclude {
		if _, err := mask.PredicateByName(name); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	}
	switch {
	case c.Margin < 0:
		return fmt.Errorf("%w: margin %d", ErrInvalid, c.Margin)
	case c.Ticks < 1:
		return fmt.Errorf("%w: ticks %d", ErrInvalid, c.Ticks)
	case c.GlyphBase <= ' ' || c.GlyphBase > '~':
		return fmt.Errorf("%w: glyph base %d is not a printable character", ErrInvalid, c.GlyphBase)
	case !scale.NewGlyphs(rune(c.GlyphBase), scale.GlyphQuote, scale.GlyphBackslash).Fits(scale.MaxBuckets(c.Ticks)):
		return fmt.Errorf("%w: glyph base %d leaves no room for %d ticks before %q", ErrInvalid, c.GlyphBase, c.Ticks, scale.LastPrintable)
	case c.TimeIndex < AllTimes:
		return fmt.Errorf("%w: time index %d", ErrInvalid, c.TimeIndex)
	case c.Dims.Lat == "" || c.Dims.Lon == "":
		return fmt.Errorf("%w: lat and lon dimension names are required", ErrInvalid)
	}
	return nil
}

func (c *Config) DimNames() slice.DimNames {
	return slice.DimNames{Time: c.Dims.Time, Lat: c.Dims.Lat, Lon: c.Dims.Lon}
}

// PinDomain reports whether animation frames share one domain.
func (c *Config) PinDomain() bool { return c.Domain == DomainPinned }

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Exclude = append([]string(nil), c.Exclude...)
	return &out
}
