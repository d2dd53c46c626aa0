// Package config holds the inspector's runtime configuration.
//
// Configuration is read from an optional JSON file via viper; every
// key has a default so the tool runs with no file at all. The label
// set is closed: markings may only carry labels enumerated here.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Label identifiers. The set is fixed at startup and not
// user-extensible at runtime.
const (
	LabelBFill      = "bfill"
	LabelFFill      = "ffill"
	LabelDiscard    = "discard"
	LabelZero       = "zero"
	LabelGood       = "good"
	LabelComment    = "comment"
	LabelLinearFill = "linear-fill"
)

// TagCleaned marks interval-tagged export output.
const TagCleaned = "cleaned"

// Config is the typed snapshot handed to the rest of the program.
type Config struct {
	LogLevel string
	LogFile  string
	DBPath   string

	// Labels maps each recognized label to its display color (hex).
	Labels map[string]string

	// Palette assigns default item colors by display slot.
	Palette []string

	// FractionPreshown controls the initial shown interval: the first
	// item added selects min(MaxPreshownPoints, len/FractionPreshown)
	// points from the start.
	FractionPreshown  int
	MaxPreshownPoints int

	// MinimumYRange floors the detail view's vertical span so
	// near-constant data doesn't collapse to a zero-height scale.
	MinimumYRange float64

	// DecimateThreshold and DecimatePoints bound the outline render:
	// series beyond the threshold are down-sampled to roughly
	// DecimatePoints.
	DecimateThreshold int
	DecimatePoints    int

	// RedrawDelay is the debounce quiet period for render requests.
	RedrawDelay time.Duration

	// DefaultGapLimit is the gap-scan threshold offered by the
	// auto-mark path (interpreted as a plain delta for number-indexed
	// sessions).
	DefaultGapLimit time.Duration
}

func setDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logFile", "inspector.log")
	viper.SetDefault("db.path", "")

	viper.SetDefault("labels", map[string]string{
		LabelBFill:      "#9400d3",
		LabelFFill:      "#fa8072",
		LabelDiscard:    "#ffa500",
		LabelZero:       "#4682b4",
		LabelGood:       "#008000",
		LabelComment:    "#8fbc8f",
		LabelLinearFill: "#ff69b4",
	})

	viper.SetDefault("palette", []string{
		"#0000ff", "#ff0000", "#228b22",
		"#ff00ff", "#ff8c00", "#008080",
		"#ff1493", "#000080", "#1e90ff",
		"#40e0d0", "#9400d3", "#8b0000",
		"#00ff00", "#ffd700", "#4682b4",
		"#00ffff", "#006400", "#808000",
	})

	viper.SetDefault("view.fractionPreshown", 6)
	viper.SetDefault("view.maxPreshownPoints", 50000)
	viper.SetDefault("view.minimumYRange", 10.0)
	viper.SetDefault("view.decimateThreshold", 8000)
	viper.SetDefault("view.decimatePoints", 2000)
	viper.SetDefault("view.redrawDelayMs", 10)

	viper.SetDefault("gapLimitSeconds", 20)
}

// Load reads configuration from inspector.cfg.json in configDir,
// falling back to defaults when the file is absent.
func Load(configDir string) (Config, error) {
	setDefaults()

	viper.SetConfigName("inspector.cfg.json")
	viper.SetConfigType("json")
	viper.AddConfigPath(configDir)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := Config{
		LogLevel:          viper.GetString("logLevel"),
		LogFile:           viper.GetString("logFile"),
		DBPath:            viper.GetString("db.path"),
		Labels:            viper.GetStringMapString("labels"),
		Palette:           viper.GetStringSlice("palette"),
		FractionPreshown:  viper.GetInt("view.fractionPreshown"),
		MaxPreshownPoints: viper.GetInt("view.maxPreshownPoints"),
		MinimumYRange:     viper.GetFloat64("view.minimumYRange"),
		DecimateThreshold: viper.GetInt("view.decimateThreshold"),
		DecimatePoints:    viper.GetInt("view.decimatePoints"),
		RedrawDelay:       time.Duration(viper.GetInt("view.redrawDelayMs")) * time.Millisecond,
		DefaultGapLimit:   time.Duration(viper.GetInt("gapLimitSeconds")) * time.Second,
	}
	return cfg, nil
}

// Default returns the built-in configuration without touching the
// filesystem. Used by tests and as a fallback.
func Default() Config {
	setDefaults()
	return Config{
		LogLevel:          viper.GetString("logLevel"),
		LogFile:           viper.GetString("logFile"),
		DBPath:            viper.GetString("db.path"),
		Labels:            viper.GetStringMapString("labels"),
		Palette:           viper.GetStringSlice("palette"),
		FractionPreshown:  viper.GetInt("view.fractionPreshown"),
		MaxPreshownPoints: viper.GetInt("view.maxPreshownPoints"),
		MinimumYRange:     viper.GetFloat64("view.minimumYRange"),
		DecimateThreshold: viper.GetInt("view.decimateThreshold"),
		DecimatePoints:    viper.GetInt("view.decimatePoints"),
		RedrawDelay:       time.Duration(viper.GetInt("view.redrawDelayMs")) * time.Millisecond,
		DefaultGapLimit:   time.Duration(viper.GetInt("gapLimitSeconds")) * time.Second,
	}
}

// KnownLabel reports whether label belongs to the configured set.
func (c Config) KnownLabel(label string) bool {
	_, ok := c.Labels[label]
	return ok
}

// PaletteColor returns the color for a display slot, saturating at
// the last palette entry.
func (c Config) PaletteColor(slot int) string {
	if len(c.Palette) == 0 {
		return "#ffffff"
	}
	if slot >= len(c.Palette) {
		slot = len(c.Palette) - 1
	}
	return c.Palette[slot]
}
