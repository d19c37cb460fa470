package tileatlas

import (
	"errors"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if c.MinSize != 128 || c.MaxSize != 4096 || c.MipLevels != 4 {
		t.Errorf("DefaultConfig sizes = %d/%d/%d", c.MinSize, c.MaxSize, c.MipLevels)
	}
	if c.RepackThreshold != 0.35 {
		t.Errorf("RepackThreshold = %v, want 0.35", c.RepackThreshold)
	}
	if !c.CropBorders {
		t.Error("CropBorders = false, want true")
	}
	if err := c.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"min not power of two", func(c *Config) { c.MinSize = 100 }, "MinSize"},
		{"min zero", func(c *Config) { c.MinSize = 0 }, "MinSize"},
		{"max not power of two", func(c *Config) { c.MaxSize = 3000 }, "MaxSize"},
		{"max too large", func(c *Config) { c.MaxSize = 1 << 16 }, "MaxSize"},
		{"min above max", func(c *Config) { c.MinSize, c.MaxSize = 512, 256 }, "MinSize"},
		{"no mip levels", func(c *Config) { c.MipLevels = 0 }, "MipLevels"},
		{"too many mip levels", func(c *Config) { c.MinSize, c.MipLevels = 4, 4 }, "MipLevels"},
		{"mip levels past min size", func(c *Config) { c.MipLevels = 9 }, "MipLevels"},
		{"mip shift overflow", func(c *Config) { c.MipLevels = 65 }, "MipLevels"},
		{"negative threshold", func(c *Config) { c.RepackThreshold = -0.1 }, "RepackThreshold"},
		{"threshold of one", func(c *Config) { c.RepackThreshold = 1 }, "RepackThreshold"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.modify(&c)
			err := c.Validate()
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Fatalf("Validate() = %v, want *ConfigError", err)
			}
			if ce.Field != tt.field {
				t.Errorf("Field = %q, want %q", ce.Field, tt.field)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Error("ConfigError does not match ErrInvalidConfig")
			}
		})
	}
}

func TestConfigMipLevelsBound(t *testing.T) {
	c := DefaultConfig()
	c.MipLevels = 8
	if err := c.Validate(); err != nil {
		t.Errorf("MipLevels 8 at MinSize 128: %v, want valid", err)
	}
}

func TestOptions(t *testing.T) {
	custom := Config{MinSize: 64, MaxSize: 1024, MipLevels: 1, RepackThreshold: 0.5}
	o := defaultOptions()
	for _, opt := range []Option{
		WithConfig(custom),
		WithMaxSize(2048),
		WithCropBorders(true),
	} {
		opt(&o)
	}
	want := custom
	want.MaxSize = 2048
	want.CropBorders = true
	if o.config != want {
		t.Errorf("config = %+v, want %+v", o.config, want)
	}
}
