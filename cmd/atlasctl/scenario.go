package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/tileatlas"
)

// Scenario is a scripted sequence of atlas operations.
type Scenario struct {
	Atlas AtlasConfig `toml:"atlas" yaml:"atlas"`
	Ops   []Op        `toml:"op" yaml:"ops"`
}

// AtlasConfig overrides the aggregator defaults. Zero fields keep the
// default.
type AtlasConfig struct {
	MinSize         int      `toml:"min_size" yaml:"min_size"`
	MaxSize         int      `toml:"max_size" yaml:"max_size"`
	MipLevels       int      `toml:"mip_levels" yaml:"mip_levels"`
	RepackThreshold *float64 `toml:"repack_threshold" yaml:"repack_threshold"`
	CropBorders     *bool    `toml:"crop_borders" yaml:"crop_borders"`
}

// Op is one scenario step.
//
//	add       adds a solid tile of Size pixels named Name
//	del       deletes the tile named Name
//	repack    repacks the atlas
//	lost      simulates device loss
//	restored  restores the device
type Op struct {
	Kind  string `toml:"kind" yaml:"kind"`
	Name  string `toml:"name" yaml:"name"`
	Size  int    `toml:"size" yaml:"size"`
	Color string `toml:"color" yaml:"color"`
}

// loadScenario reads a TOML or YAML scenario, chosen by file extension.
func loadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}

	var sc Scenario
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, &sc)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &sc)
	default:
		return nil, fmt.Errorf("unsupported scenario format %q (want .toml, .yaml or .yml)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := sc.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &sc, nil
}

func (sc *Scenario) validate() error {
	for i, op := range sc.Ops {
		switch op.Kind {
		case "add":
			if op.Size <= 0 {
				return fmt.Errorf("op %d: add needs a positive size", i+1)
			}
			if op.Name == "" {
				return fmt.Errorf("op %d: add needs a name", i+1)
			}
			if _, err := parseColor(op.Color); err != nil {
				return fmt.Errorf("op %d: %w", i+1, err)
			}
		case "del":
			if op.Name == "" {
				return fmt.Errorf("op %d: del needs a name", i+1)
			}
		case "repack", "lost", "restored":
		default:
			return fmt.Errorf("op %d: unknown kind %q", i+1, op.Kind)
		}
	}
	return nil
}

// options converts the scenario overrides into aggregator options.
func (c AtlasConfig) options() []tileatlas.Option {
	var opts []tileatlas.Option
	if c.MinSize > 0 {
		opts = append(opts, tileatlas.WithMinSize(c.MinSize))
	}
	if c.MaxSize > 0 {
		opts = append(opts, tileatlas.WithMaxSize(c.MaxSize))
	}
	if c.MipLevels > 0 {
		opts = append(opts, tileatlas.WithMipLevels(c.MipLevels))
	}
	if c.RepackThreshold != nil {
		opts = append(opts, tileatlas.WithRepackThreshold(*c.RepackThreshold))
	}
	if c.CropBorders != nil {
		opts = append(opts, tileatlas.WithCropBorders(*c.CropBorders))
	}
	return opts
}

// parseColor accepts "#rrggbb" or "#rrggbbaa". Empty means opaque white.
func parseColor(s string) (color.RGBA, error) {
	if s == "" {
		return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil //nolint:gosec // G115: masked bytes
}

// solidTile returns a size x size image filled with c.
func solidTile(size int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}
