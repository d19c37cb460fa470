// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import xdraw "golang.org/x/image/draw"

// Default provider limits.
const (
	// DefaultMaxTextureSize is the largest page edge a Provider creates.
	DefaultMaxTextureSize = 8192

	// DefaultTileBorder is the per-level inset applied when tiles are
	// rendered with border cropping.
	DefaultTileBorder = 1
)

// Option configures a Provider.
type Option func(*options)

type options struct {
	maxTextureSize int
	border         int
	interp         xdraw.Interpolator
	budget         *Budget
}

func defaultOptions() options {
	return options{
		maxTextureSize: DefaultMaxTextureSize,
		border:         DefaultTileBorder,
		interp:         xdraw.NearestNeighbor,
	}
}

// WithMaxTextureSize caps page width and height. Values <= 0 are ignored.
func WithMaxTextureSize(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.maxTextureSize = size
		}
	}
}

// WithTileBorder sets the border cropped from every tile side when the
// aggregator asks for it. Negative values are ignored.
func WithTileBorder(border int) Option {
	return func(o *options) {
		if border >= 0 {
			o.border = border
		}
	}
}

// WithInterpolator sets the scaler used to draw tiles into mip levels.
// The default point-samples like a texture unit with nearest filtering.
//
// Example:
//
//	p := surface.NewProvider(surface.WithInterpolator(xdraw.CatmullRom))
func WithInterpolator(interp xdraw.Interpolator) Option {
	return func(o *options) {
		if interp != nil {
			o.interp = interp
		}
	}
}

// WithBudget charges every page against b. Several providers may share one
// budget.
func WithBudget(b *Budget) Option {
	return func(o *options) {
		o.budget = b
	}
}
