package tileatlas

import "math/bits"

// Default configuration values.
const (
	// DefaultMinSize is the edge of the first page created.
	DefaultMinSize = 128

	// DefaultMaxSize caps page width and height.
	DefaultMaxSize = 4096

	// DefaultMipLevels is the mip count of every page.
	DefaultMipLevels = 4

	// DefaultRepackThreshold is the usage ratio below which a deletion
	// schedules a repack.
	DefaultRepackThreshold = 0.35

	// maxPageSize bounds MaxSize regardless of provider limits.
	maxPageSize = 1 << 15
)

// Config holds Aggregator configuration.
type Config struct {
	// MinSize is the edge of the first page, and the page height at or
	// below which deletions never schedule a repack.
	// Must be a power of 2. Default: 128
	MinSize int

	// MaxSize is the largest page width or height.
	// Must be a power of 2, at least MinSize. Default: 4096
	MaxSize int

	// MipLevels is the number of mip levels of every page.
	// Default: 4
	MipLevels int

	// RepackThreshold is the usage ratio in [0, 1) below which a deletion
	// schedules a repack. Default: 0.35
	RepackThreshold float64

	// CropBorders insets every tile by the provider's border so adjacent
	// tiles do not bleed into each other when minified. Default: true
	CropBorders bool
}

// DefaultConfig returns default configuration.
func DefaultConfig() Config {
	return Config{
		MinSize:         DefaultMinSize,
		MaxSize:         DefaultMaxSize,
		MipLevels:       DefaultMipLevels,
		RepackThreshold: DefaultRepackThreshold,
		CropBorders:     true,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validateSize("MinSize", c.MinSize); err != nil {
		return err
	}
	if err := validateSize("MaxSize", c.MaxSize); err != nil {
		return err
	}
	if c.MinSize > c.MaxSize {
		return &ConfigError{Field: "MinSize", Reason: "must be at most MaxSize"}
	}
	if c.MipLevels < 1 {
		return &ConfigError{Field: "MipLevels", Reason: "must be at least 1"}
	}
	if c.MipLevels > bits.Len(uint(c.MinSize)) {
		return &ConfigError{Field: "MipLevels", Reason: "must leave at least one pixel at MinSize"}
	}
	if c.RepackThreshold < 0 || c.RepackThreshold >= 1 {
		return &ConfigError{Field: "RepackThreshold", Reason: "must be in [0, 1)"}
	}
	return nil
}

func validateSize(field string, size int) error {
	if size < 1 {
		return &ConfigError{Field: field, Reason: "must be positive"}
	}
	if size > maxPageSize {
		return &ConfigError{Field: field, Reason: "must be at most 32768"}
	}
	if size&(size-1) != 0 {
		return &ConfigError{Field: field, Reason: "must be power of 2"}
	}
	return nil
}
