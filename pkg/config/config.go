// Package config loads scatterplot settings from TOML.
//
// [Default] reproduces the reference college chart exactly; a config file
// only needs the keys it changes:
//
//	[frame]
//	width = 1024
//
//	[columns]
//	earnings = "MD_EARN_WNE_P8"
//
//	[cache]
//	backend = "redis"
//	redis.addr = "localhost:6379"
//
// CLI flags are applied on top of the loaded file.
package config

import (
	"bytes"
	"errors"
	"io/fs"
	"math"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/scatterplot/pkg/cache"
	"github.com/matzehuels/scatterplot/pkg/chart"
	"github.com/matzehuels/scatterplot/pkg/dataset"
	perrors "github.com/matzehuels/scatterplot/pkg/errors"
	"github.com/matzehuels/scatterplot/pkg/interact"
	"github.com/matzehuels/scatterplot/pkg/mark"
)

// Config is the full set of settings.
type Config struct {
	Frame       chart.Frame     `toml:"frame"`
	Labels      chart.Labels    `toml:"labels"`
	Columns     dataset.Columns `toml:"columns"`
	Data        Data            `toml:"data"`
	Marks       Marks           `toml:"marks"`
	Interaction Interaction     `toml:"interaction"`
	Export      Export          `toml:"export"`
	Cache       cache.Config    `toml:"cache"`
}

// Data controls record parsing.
type Data struct {
	Invalid string `toml:"invalid"` // hide, zero or drop
}

// Marks controls mark appearance.
type Marks struct {
	Radius float64 `toml:"radius"`
}

// Export controls the static png and pdf renderings.
type Export struct {
	Scale float64 `toml:"scale"` // size multiplier
}

// Interaction holds hover parameters. Durations are milliseconds.
type Interaction struct {
	Tooltip          bool    `toml:"tooltip"`
	EmphasizedRadius float64 `toml:"emphasized_radius"`
	GrowMS           int     `toml:"grow_ms"`
	ShrinkMS         int     `toml:"shrink_ms"`
	TooltipShowMS    int     `toml:"tooltip_show_ms"`
	TooltipHideMS    int     `toml:"tooltip_hide_ms"`
	TooltipOpacity   float64 `toml:"tooltip_opacity"`
	OffsetX          float64 `toml:"offset_x"`
	OffsetY          float64 `toml:"offset_y"`
}

// Default returns the reference configuration.
func Default() Config {
	ic := interact.DefaultConfig()
	return Config{
		Frame:   chart.DefaultFrame(),
		Labels:  chart.DefaultLabels(),
		Columns: dataset.DefaultColumns(),
		Data:    Data{Invalid: string(dataset.DefaultPolicy)},
		Marks:   Marks{Radius: mark.DefaultRadius},
		Interaction: Interaction{
			Tooltip:          true,
			EmphasizedRadius: ic.EmphasizedRadius,
			GrowMS:           int(ic.Grow.Milliseconds()),
			ShrinkMS:         int(ic.Shrink.Milliseconds()),
			TooltipShowMS:    int(ic.TooltipShow.Milliseconds()),
			TooltipHideMS:    int(ic.TooltipHide.Milliseconds()),
			TooltipOpacity:   ic.TooltipOpacity,
			OffsetX:          ic.Offset.X,
			OffsetY:          ic.Offset.Y,
		},
		Export: Export{Scale: 1},
		Cache:  cache.Config{Backend: cache.BackendFile, TTL: "24h"},
	}
}

// Load reads path over [Default]. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, perrors.Wrap(perrors.ErrCodeFileNotFound, err, "config file not found: %s", path)
	}
	if err != nil {
		return cfg, perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if err := checkUndecoded(md, path); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Decode parses TOML text over [Default].
func Decode(text string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(text, &cfg)
	if err != nil {
		return cfg, perrors.Wrap(perrors.ErrCodeInvalidConfig, err, "parse config")
	}
	if err := checkUndecoded(md, "config"); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func checkUndecoded(md toml.MetaData, where string) error {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return perrors.New(perrors.ErrCodeInvalidConfig, "unknown config key %q in %s", undecoded[0].String(), where)
	}
	return nil
}

// Encode renders cfg as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Frame.Validate(); err != nil {
		return err
	}
	if err := c.Columns.Validate(); err != nil {
		return err
	}
	if _, err := dataset.ParsePolicy(c.Data.Invalid); err != nil {
		return err
	}
	if !finitePositive(c.Marks.Radius) {
		return perrors.New(perrors.ErrCodeInvalidConfig, "marks.radius must be positive, got %g", c.Marks.Radius)
	}
	i := c.Interaction
	if !finitePositive(i.EmphasizedRadius) {
		return perrors.New(perrors.ErrCodeInvalidConfig, "interaction.emphasized_radius must be positive, got %g", i.EmphasizedRadius)
	}
	if i.GrowMS < 0 || i.ShrinkMS < 0 || i.TooltipShowMS < 0 || i.TooltipHideMS < 0 {
		return perrors.New(perrors.ErrCodeInvalidConfig, "interaction durations must not be negative")
	}
	if !(i.TooltipOpacity >= 0 && i.TooltipOpacity <= 1) {
		return perrors.New(perrors.ErrCodeInvalidConfig, "interaction.tooltip_opacity must be within [0, 1], got %g", i.TooltipOpacity)
	}
	if !finitePositive(c.Export.Scale) {
		return perrors.New(perrors.ErrCodeInvalidConfig, "export.scale must be positive, got %g", c.Export.Scale)
	}
	if _, err := c.CacheTTL(); err != nil {
		return err
	}
	return nil
}

// Policy returns the parsed invalid-value policy.
func (c Config) Policy() dataset.InvalidPolicy {
	p, err := dataset.ParsePolicy(c.Data.Invalid)
	if err != nil {
		return dataset.DefaultPolicy
	}
	return p
}

// InteractConfig converts the interaction section.
func (c Config) InteractConfig() interact.Config {
	i := c.Interaction
	return interact.Config{
		RestRadius:       c.Marks.Radius,
		EmphasizedRadius: i.EmphasizedRadius,
		Grow:             ms(i.GrowMS),
		Shrink:           ms(i.ShrinkMS),
		TooltipShow:      ms(i.TooltipShowMS),
		TooltipHide:      ms(i.TooltipHideMS),
		TooltipOpacity:   i.TooltipOpacity,
		Offset:           interact.Point{X: i.OffsetX, Y: i.OffsetY},
	}
}

// ChartOptions converts the frame, label and mark sections.
func (c Config) ChartOptions() chart.Options {
	return chart.Options{Frame: c.Frame, Labels: c.Labels, Radius: c.Marks.Radius}
}

// CacheTTL parses cache.ttl. Empty means [source.DefaultTTL] is used.
func (c Config) CacheTTL() (time.Duration, error) {
	if c.Cache.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil || d < 0 {
		return 0, perrors.New(perrors.ErrCodeInvalidConfig, "cache.ttl: invalid duration %q", c.Cache.TTL)
	}
	return d, nil
}

func finitePositive(v float64) bool { return v > 0 && !math.IsInf(v, 0) }

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }
