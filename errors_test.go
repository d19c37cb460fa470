package tileatlas

import (
	"errors"
	"strings"
	"testing"
)

func TestDeviceError(t *testing.T) {
	err := error(&DeviceError{Op: "create", Width: 256, Height: 512, Err: errOutOfMemory})
	if got := err.Error(); got != "tileatlas: create surface 256x512: test: out of video memory" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, errOutOfMemory) {
		t.Error("DeviceError does not unwrap to its cause")
	}
}

func TestConfigErrorMessage(t *testing.T) {
	err := &ConfigError{Field: "MinSize", Reason: "must be power of 2"}
	if got := err.Error(); got != "tileatlas: invalid config.MinSize: must be power of 2" {
		t.Errorf("Error() = %q", got)
	}
}

func TestRepackErrorMessage(t *testing.T) {
	err := &RepackError{
		Failed: []TileID{3, 7},
		Errs:   []error{ErrMaxSizeExceeded, errOutOfMemory},
	}
	if got := err.Error(); !strings.HasPrefix(got, "tileatlas: repack left 2 tile(s) without a slot: ") {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, errOutOfMemory) || !errors.Is(err, ErrMaxSizeExceeded) {
		t.Error("RepackError does not match its per-tile causes")
	}
}
