package julia

import (
	"errors"
	"math"
	"testing"
)

func TestConfigValidate(t *testing.T) {
	base := DefaultConfig()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(*Config) {}, false},
		{"zero zoom defaults", func(c *Config) { c.Zoom = 0 }, false},
		{"zero scale defaults", func(c *Config) { c.Scale = 0 }, false},
		{"scale 255", func(c *Config) { c.Scale = Scale255 }, false},
		{"zero width", func(c *Config) { c.Width = 0 }, true},
		{"negative height", func(c *Config) { c.Height = -3 }, true},
		{"zero iterations", func(c *Config) { c.MaxIterations = 0 }, true},
		{"zero radius", func(c *Config) { c.EscapeRadius = 0 }, true},
		{"nan radius", func(c *Config) { c.EscapeRadius = math.NaN() }, true},
		{"infinite radius", func(c *Config) { c.EscapeRadius = math.Inf(1) }, true},
		{"negative zoom", func(c *Config) { c.Zoom = -1 }, true},
		{"unsupported scale", func(c *Config) { c.Scale = 128 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if c.Width != 800 || c.Height != 800 || c.MaxIterations != 150 || c.EscapeRadius != 2 {
		t.Errorf("DefaultConfig() = %+v", c)
	}
	if c.Scale != Scale250 {
		t.Errorf("default scale = %d, want 250", c.Scale)
	}
}

func TestColorScaleValid(t *testing.T) {
	for _, s := range []ColorScale{0, 1, 249, 254} {
		if s.Valid() {
			t.Errorf("ColorScale(%d).Valid() = true", s)
		}
	}
	for _, s := range []ColorScale{Scale250, Scale255} {
		if !s.Valid() {
			t.Errorf("ColorScale(%d).Valid() = false", s)
		}
	}
}
