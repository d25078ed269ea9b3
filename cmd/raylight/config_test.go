package main

import (
	"errors"
	"image/color"
	"log/slog"
	"testing"

	xdraw "golang.org/x/image/draw"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -1 }},
		{"zero fov", func(c *Config) { c.FOV = 0 }},
		{"straight fov", func(c *Config) { c.FOV = 180 }},
		{"no workers", func(c *Config) { c.Workers = 0 }},
		{"no fps", func(c *Config) { c.FPS = 0 }},
		{"bad background", func(c *Config) { c.Bg = "1,2" }},
		{"bad filter", func(c *Config) { c.Filter = "box" }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.modify(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		input    string
		expected color.RGBA
		wantErr  bool
	}{
		{"0,0,0", color.RGBA{0, 0, 0, 255}, false},
		{"30, 30, 40", color.RGBA{30, 30, 40, 255}, false},
		{"midnightblue", color.RGBA{25, 25, 112, 255}, false},
		{"White", color.RGBA{255, 255, 255, 255}, false},
		{"256,0,0", color.RGBA{}, true},
		{"-1,0,0", color.RGBA{}, true},
		{"red,green,blue", color.RGBA{}, true},
		{"notacolor", color.RGBA{}, true},
		{"", color.RGBA{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := parseColor(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("parseColor(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
			if got != tc.expected {
				t.Errorf("parseColor(%q) = %v, want %v", tc.input, got, tc.expected)
			}
		})
	}
}

func TestConfigResolve(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bg = "10,20,30"
	cfg.Filter = "nearest"
	cfg.LogLevel = "warn"

	s, err := cfg.Resolve()
	if err != nil {
		t.Fatal(err)
	}
	if s.Background != (color.RGBA{10, 20, 30, 255}) {
		t.Errorf("Background = %v", s.Background)
	}
	if s.Scaler != xdraw.NearestNeighbor {
		t.Errorf("Scaler = %v, want NearestNeighbor", s.Scaler)
	}
	if s.LogLevel != slog.LevelWarn {
		t.Errorf("LogLevel = %v, want WARN", s.LogLevel)
	}

	cfg.Filter = "box"
	if _, err := cfg.Resolve(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Resolve() with bad filter = %v, want ErrInvalidConfig", err)
	}
}

func TestParseLevel(t *testing.T) {
	for input, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := parseLevel(input)
		if err != nil {
			t.Fatalf("parseLevel(%q): %v", input, err)
		}
		if got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}
