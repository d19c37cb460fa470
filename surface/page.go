// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/draw"
)

// Page is a mip-chained RGBA surface created by Provider.
// Level 0 is full size and each following level halves both dimensions.
type Page struct {
	levels   []*image.RGBA
	released bool
}

func newPage(width, height, mipLevels int) *Page {
	p := &Page{levels: make([]*image.RGBA, mipLevels)}
	for i := range p.levels {
		// image.NewRGBA is zeroed, i.e. transparent black.
		p.levels[i] = image.NewRGBA(image.Rect(0, 0, max(width>>i, 1), max(height>>i, 1)))
	}
	return p
}

// Width returns the level-0 width in pixels.
func (p *Page) Width() int {
	if len(p.levels) == 0 {
		return 0
	}
	return p.levels[0].Rect.Dx()
}

// Height returns the level-0 height in pixels.
func (p *Page) Height() int {
	if len(p.levels) == 0 {
		return 0
	}
	return p.levels[0].Rect.Dy()
}

// MipLevels returns the number of mip levels.
func (p *Page) MipLevels() int {
	return len(p.levels)
}

// Level returns the pixels of mip level i. The image is owned by the page
// and is modified by later provider calls.
func (p *Page) Level(i int) *image.RGBA {
	if i < 0 || i >= len(p.levels) {
		return nil
	}
	return p.levels[i]
}

// Released reports whether the page was handed back to its provider.
func (p *Page) Released() bool {
	return p.released
}

// Snapshot returns a copy of level 0.
func (p *Page) Snapshot() *image.RGBA {
	return p.SnapshotLevel(0)
}

// SnapshotLevel returns a copy of mip level i, or nil if it does not exist.
func (p *Page) SnapshotLevel(i int) *image.RGBA {
	src := p.Level(i)
	if src == nil {
		return nil
	}
	dst := image.NewRGBA(src.Rect)
	draw.Draw(dst, dst.Rect, src, src.Rect.Min, draw.Src)
	return dst
}

// Bytes returns the memory held by all levels.
func (p *Page) Bytes() int {
	return pageBytes(p.Width(), p.Height(), len(p.levels))
}

// pageBytes is the RGBA footprint of a mip chain.
func pageBytes(width, height, mipLevels int) int {
	total := 0
	for i := 0; i < mipLevels; i++ {
		total += max(width>>i, 1) * max(height>>i, 1) * 4
	}
	return total
}
