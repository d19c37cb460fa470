package tileatlas

import (
	"errors"

	"github.com/gogpu/tileatlas/internal/buddy"
)

// page owns the single backing surface and grows it by doubling.
// It is the buddy.Grower of the aggregator's slot pool.
type page struct {
	provider Provider
	config   *Config

	surface       Surface
	width, height int
	transform     Matrix
	grows         int
}

func newPage(p Provider, c *Config) *page {
	return &page{provider: p, config: c, transform: Identity()}
}

// NeedsGrowth reports whether class c cannot be carved from the current page.
func (p *page) NeedsGrowth(c buddy.Class) bool {
	return p.surface == nil || c.Size() >= p.width
}

// Grow creates the first page or doubles the current one, and returns the
// slots covering the new area.
//
// A square page doubles its height and gains one slot below the old
// content. Otherwise the width doubles and two slots stack to the right.
func (p *page) Grow(hint buddy.Class) ([]buddy.Slot, error) {
	if p.surface == nil {
		size := max(p.config.MinSize, hint.Size())
		s, err := p.create(size, size)
		if err != nil {
			return nil, err
		}
		p.surface = s
		p.width, p.height = size, size
		p.transform = pageTransform(size, size)
		p.grows++
		slogger().Debug("tileatlas: page created", "width", size, "height", size)
		return []buddy.Slot{{X: 0, Y: 0, Size: size}}, nil
	}

	w, h := p.width, p.height
	newW, newH := w, h
	if w == h {
		newH *= 2
	} else {
		newW *= 2
	}

	s, err := p.create(newW, newH)
	if err != nil {
		return nil, err
	}
	if err := p.provider.CopySurface(p.surface, s); err != nil {
		p.provider.ReleaseSurface(s)
		slogger().Warn("tileatlas: page copy failed, keeping old page",
			"width", w, "height", h, "error", err)
		return nil, &DeviceError{Op: "copy", Width: newW, Height: newH, Err: err}
	}
	p.provider.ReleaseSurface(p.surface)
	p.surface = s
	p.width, p.height = newW, newH
	p.transform = pageTransform(newW, newH)
	p.grows++
	slogger().Debug("tileatlas: page grown", "width", newW, "height", newH)

	if newH != h {
		return []buddy.Slot{{X: 0, Y: h, Size: w}}, nil
	}
	return []buddy.Slot{{X: w, Y: w, Size: w}, {X: w, Y: 0, Size: w}}, nil
}

func (p *page) create(width, height int) (Surface, error) {
	if width > p.config.MaxSize || height > p.config.MaxSize {
		slogger().Warn("tileatlas: page reached maximum size", "max", p.config.MaxSize)
		return nil, &DeviceError{Op: "create", Width: width, Height: height, Err: ErrMaxSizeExceeded}
	}
	s, err := p.provider.CreateSurface(width, height, p.mipLevels(width, height))
	if err != nil {
		return nil, &DeviceError{Op: "create", Width: width, Height: height, Err: err}
	}
	if s == nil {
		return nil, &DeviceError{Op: "create", Width: width, Height: height,
			Err: errors.New("provider returned no surface")}
	}
	return s, nil
}

// mipLevels clamps the configured mip count to what a page of the given
// size can hold.
func (p *page) mipLevels(width, height int) int {
	levels := p.config.MipLevels
	for levels > 1 && (width>>(levels-1) == 0 || height>>(levels-1) == 0) {
		levels--
	}
	return levels
}

// area returns the page area in pixels, or 0 without a page.
func (p *page) area() int {
	if p.surface == nil {
		return 0
	}
	return p.width * p.height
}

// release frees the surface and forgets the page geometry.
func (p *page) release() {
	if p.surface != nil {
		p.provider.ReleaseSurface(p.surface)
	}
	p.surface = nil
	p.width, p.height = 0, 0
	p.transform = Identity()
}
