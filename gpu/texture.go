package gpu

import (
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/tileatlas/surface"
)

// Texture is a page backed by a hal.Texture and its CPU shadow.
type Texture struct {
	tex    hal.Texture
	shadow *surface.Page

	// dirty levels are uploaded on the next Flush.
	dirty    bool
	released bool
}

// Width returns the level-0 width in pixels.
func (t *Texture) Width() int { return t.shadow.Width() }

// Height returns the level-0 height in pixels.
func (t *Texture) Height() int { return t.shadow.Height() }

// MipLevels returns the number of mip levels.
func (t *Texture) MipLevels() int { return t.shadow.MipLevels() }

// HAL returns the GPU texture. It is nil after release.
func (t *Texture) HAL() hal.Texture { return t.tex }

// Shadow returns the CPU copy of the page.
func (t *Texture) Shadow() *surface.Page { return t.shadow }

// Dirty reports whether the shadow has changes not yet uploaded.
func (t *Texture) Dirty() bool { return t.dirty }

// Released reports whether the texture was destroyed.
func (t *Texture) Released() bool { return t.released }
