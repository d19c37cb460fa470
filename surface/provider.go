// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/tileatlas"
)

// Provider errors.
var (
	// ErrTooLarge is returned when a page exceeds the maximum texture size.
	ErrTooLarge = errors.New("surface: dimensions exceed maximum texture size")

	// ErrInvalidSize is returned for non-positive page dimensions.
	ErrInvalidSize = errors.New("surface: invalid dimensions")

	// ErrForeignSurface is returned for surfaces this package did not create.
	ErrForeignSurface = errors.New("surface: surface not created by this package")

	// ErrUnsupportedSource is returned for tile sources without pixels.
	ErrUnsupportedSource = errors.New("surface: unsupported tile source")

	// ErrReleased is returned when drawing into a released page.
	ErrReleased = errors.New("surface: page released")
)

// Provider is a tileatlas.Provider that keeps pages in memory.
//
// Provider is not safe for concurrent use.
type Provider struct {
	maxTextureSize int
	border         int
	interp         xdraw.Interpolator
	budget         *Budget
	live           int
}

var _ tileatlas.Provider = (*Provider)(nil)

// NewProvider creates an in-memory provider.
func NewProvider(opts ...Option) *Provider {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Provider{
		maxTextureSize: o.maxTextureSize,
		border:         o.border,
		interp:         o.interp,
		budget:         o.budget,
	}
}

// MaxTextureSize returns the largest page edge.
func (p *Provider) MaxTextureSize() int { return p.maxTextureSize }

// TileBorder returns the border cropped from cropped tiles.
func (p *Provider) TileBorder() int { return p.border }

// LivePages returns the number of pages not yet released.
func (p *Provider) LivePages() int { return p.live }

// CreateSurface allocates a transparent page.
func (p *Provider) CreateSurface(width, height, mipLevels int) (tileatlas.Surface, error) {
	return p.CreatePage(width, height, mipLevels)
}

// CreatePage is CreateSurface returning the concrete page.
func (p *Provider) CreatePage(width, height, mipLevels int) (*Page, error) {
	if width <= 0 || height <= 0 || mipLevels <= 0 {
		return nil, fmt.Errorf("%w: %dx%d with %d levels", ErrInvalidSize, width, height, mipLevels)
	}
	if width > p.maxTextureSize || height > p.maxTextureSize {
		return nil, fmt.Errorf("%w: %dx%d > %d", ErrTooLarge, width, height, p.maxTextureSize)
	}
	if p.budget != nil {
		if err := p.budget.Reserve(uint64(pageBytes(width, height, mipLevels))); err != nil { //nolint:gosec // G115: page sizes are positive
			return nil, err
		}
	}
	p.live++
	tileatlas.Logger().Debug("surface: page allocated", "width", width, "height", height, "levels", mipLevels)
	return newPage(width, height, mipLevels), nil
}

// CopySurface copies every shared mip level of src into the top-left
// corner of dst.
func (p *Provider) CopySurface(src, dst tileatlas.Surface) error {
	s, err := livePage(src)
	if err != nil {
		return err
	}
	d, err := livePage(dst)
	if err != nil {
		return err
	}
	if d.Width() < s.Width() || d.Height() < s.Height() {
		return fmt.Errorf("%w: cannot copy %dx%d into %dx%d",
			ErrInvalidSize, s.Width(), s.Height(), d.Width(), d.Height())
	}
	levels := min(s.MipLevels(), d.MipLevels())
	for i := 0; i < levels; i++ {
		sl := s.levels[i]
		draw.Draw(d.levels[i], sl.Rect, sl, image.Point{}, draw.Src)
	}
	return nil
}

// CopyRegion scales the normalized region [srcMin, srcMax] of src into
// dstRect on every mip level of dst.
//
// The destination rectangle of each level is cleared first. With
// cropBorders, the tile border is cut from the source and the destination
// of each level is inset by the same number of that level's pixels.
func (p *Provider) CopyRegion(src tileatlas.Image, srcMin, srcMax tileatlas.Point, dst tileatlas.Surface, dstRect tileatlas.Rect, cropBorders bool) error {
	d, err := livePage(dst)
	if err != nil {
		return err
	}
	img, err := sourceImage(src)
	if err != nil {
		return err
	}

	border := 0
	if cropBorders {
		border = p.border
	}
	sr := sourceRect(img.Bounds(), srcMin, srcMax).Inset(border)

	for i, level := range d.levels {
		r := dstRect.Scale(i)
		full := image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height).Intersect(level.Rect)
		if full.Empty() {
			break
		}
		draw.Draw(level, full, image.Transparent, image.Point{}, draw.Src)

		dr := full.Inset(border)
		if dr.Empty() || sr.Empty() {
			continue
		}
		p.interp.Scale(level, dr, img, sr, xdraw.Src, nil)
	}
	return nil
}

// ReleaseSurface frees a page. Releasing twice is a no-op.
func (p *Provider) ReleaseSurface(s tileatlas.Surface) {
	pg, ok := s.(*Page)
	if !ok || pg.released {
		return
	}
	if p.budget != nil {
		p.budget.Release(uint64(pg.Bytes())) //nolint:gosec // G115: page sizes are positive
	}
	pg.released = true
	pg.levels = nil
	p.live--
}

func livePage(s tileatlas.Surface) (*Page, error) {
	pg, ok := s.(*Page)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrForeignSurface, s)
	}
	if pg.released {
		return nil, ErrReleased
	}
	return pg, nil
}

func sourceImage(src tileatlas.Image) (image.Image, error) {
	switch s := src.(type) {
	case *Source:
		return s.img, nil
	case *Page:
		if s.released {
			return nil, ErrReleased
		}
		return s.levels[0], nil
	case interface{ Image() image.Image }:
		return s.Image(), nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedSource, src)
}

// sourceRect converts a normalized region into pixels of b. The extent
// is truncated the same way the aggregator sizes the tile.
func sourceRect(b image.Rectangle, min, max tileatlas.Point) image.Rectangle {
	w, h := float64(b.Dx()), float64(b.Dy())
	x := b.Min.X + int(min.X*w)
	y := b.Min.Y + int(min.Y*h)
	return image.Rect(
		x,
		y,
		x+int((max.X-min.X)*w),
		y+int((max.Y-min.Y)*h),
	).Intersect(b)
}
