package tileatlas

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the tileatlas package.
var (
	// ErrInvalidArgument is returned when a tile region is empty or not square.
	ErrInvalidArgument = errors.New("tileatlas: invalid argument")

	// ErrTileNotFound is returned when a tile id is not registered.
	ErrTileNotFound = errors.New("tileatlas: tile not found")

	// ErrNoSlot is returned for a tile that lost its slot in a failed repack.
	// The next repack tries to place it again.
	ErrNoSlot = errors.New("tileatlas: tile has no slot")

	// ErrMaxSizeExceeded is returned when growing the page would exceed the
	// configured maximum size.
	ErrMaxSizeExceeded = errors.New("tileatlas: page reached maximum size")

	// ErrInvalidConfig is matched by every ConfigError.
	ErrInvalidConfig = errors.New("tileatlas: invalid config")

	// ErrClosed is returned when operating on a closed Aggregator.
	ErrClosed = errors.New("tileatlas: aggregator is closed")
)

// DeviceError reports that a backing surface could not be created or
// manipulated. It wraps the provider failure, or ErrMaxSizeExceeded.
type DeviceError struct {
	// Op is the surface operation that failed ("create", "copy", "render").
	Op string

	// Width and Height are the surface dimensions involved.
	Width, Height int

	// Err is the underlying failure.
	Err error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("tileatlas: %s surface %dx%d: %v", e.Op, e.Width, e.Height, e.Err)
}

// Unwrap returns the underlying failure.
func (e *DeviceError) Unwrap() error {
	return e.Err
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "tileatlas: invalid config." + e.Field + ": " + e.Reason
}

// Is reports whether target is ErrInvalidConfig.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// RepackError lists the tiles a repack could not place. The repack itself
// always completes; these tiles are left without a slot.
type RepackError struct {
	Failed []TileID
	Errs   []error
}

func (e *RepackError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "tileatlas: repack left %d tile(s) without a slot", len(e.Failed))
	if len(e.Errs) > 0 {
		b.WriteString(": ")
		b.WriteString(e.Errs[0].Error())
	}
	return b.String()
}

// Unwrap returns the per-tile failures.
func (e *RepackError) Unwrap() []error {
	return e.Errs
}
