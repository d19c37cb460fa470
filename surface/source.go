// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import "image"

// Source adapts an image.Image so tiles can be cut from it.
type Source struct {
	img image.Image
}

// NewSource wraps img as a tile source.
func NewSource(img image.Image) *Source {
	return &Source{img: img}
}

// Width returns the image width in pixels.
func (s *Source) Width() int { return s.img.Bounds().Dx() }

// Height returns the image height in pixels.
func (s *Source) Height() int { return s.img.Bounds().Dy() }

// Image returns the wrapped image.
func (s *Source) Image() image.Image { return s.img }
