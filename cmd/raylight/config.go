package main

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"strconv"
	"strings"

	"github.com/taigrr/raylight/pkg/render"
	"golang.org/x/image/colornames"
	xdraw "golang.org/x/image/draw"
)

// ErrInvalidConfig is wrapped by every Config validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the command line settings for one run.
type Config struct {
	Width    int     // render width in pixels
	Height   int     // render height in pixels
	FOV      float64 // vertical field of view in degrees
	Workers  int     // row bands per frame
	FPS      int     // target frames per second
	Bg       string  // "R,G,B" or a color name
	Scene    string  // glTF/GLB scene file; empty uses the built-in scene
	Export   string  // write the scene as glTF and exit
	Snapshot string  // render one frame to PNG and exit
	Smooth   bool    // spring-eased light motion
	Filter   string  // display scaler
	Log      string  // log file; empty disables logging
	LogLevel string
}

// DefaultConfig returns the settings used when no flags are given.
func DefaultConfig() Config {
	return Config{
		Width:    1280,
		Height:   720,
		FOV:      30,
		Workers:  8,
		FPS:      60,
		Bg:       "0,0,0",
		Filter:   "bilinear",
		LogLevel: "info",
	}
}

// Settings are the parsed forms of the Config string settings.
type Settings struct {
	Background color.RGBA
	Scaler     xdraw.Scaler
	LogLevel   slog.Level
}

// Resolve checks ranges and parses every string setting.
func (c Config) Resolve() (Settings, error) {
	var s Settings
	if c.Width <= 0 || c.Height <= 0 {
		return s, fmt.Errorf("%w: resolution %dx%d must be positive", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.FOV <= 0 || c.FOV >= 180 {
		return s, fmt.Errorf("%w: fov %v must be in (0, 180)", ErrInvalidConfig, c.FOV)
	}
	if c.Workers < 1 {
		return s, fmt.Errorf("%w: workers %d must be at least 1", ErrInvalidConfig, c.Workers)
	}
	if c.FPS < 1 {
		return s, fmt.Errorf("%w: fps %d must be at least 1", ErrInvalidConfig, c.FPS)
	}

	var err error
	if s.Background, err = parseColor(c.Bg); err != nil {
		return s, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if s.Scaler, err = render.ParseScaler(c.Filter); err != nil {
		return s, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if s.LogLevel, err = parseLevel(c.LogLevel); err != nil {
		return s, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return s, nil
}

// Validate reports whether Resolve would succeed.
func (c Config) Validate() error {
	_, err := c.Resolve()
	return err
}

// parseColor accepts "R,G,B" with components in [0, 255] or a CSS color
// name such as "midnightblue".
func parseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if named, ok := colornames.Map[strings.ToLower(s)]; ok {
		return named, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return color.RGBA{}, fmt.Errorf("color %q: want R,G,B or a color name", s)
	}
	var rgb [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
		}
		rgb[i] = uint8(v)
	}
	return color.RGBA{rgb[0], rgb[1], rgb[2], 255}, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", s, err)
	}
	return level, nil
}
