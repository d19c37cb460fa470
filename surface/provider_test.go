// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/gogpu/tileatlas"
)

var (
	red         = color.RGBA{255, 0, 0, 255}
	green       = color.RGBA{0, 255, 0, 255}
	blue        = color.RGBA{0, 0, 255, 255}
	transparent = color.RGBA{}
)

func solid(size int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Rect, &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}

func assertPixel(t *testing.T, img *image.RGBA, x, y int, want color.RGBA) {
	t.Helper()
	if got := img.RGBAAt(x, y); got != want {
		t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
	}
}

func TestCreatePage(t *testing.T) {
	p := NewProvider()
	pg, err := p.CreatePage(256, 128, 4)
	if err != nil {
		t.Fatalf("CreatePage: %v", err)
	}
	if pg.Width() != 256 || pg.Height() != 128 || pg.MipLevels() != 4 {
		t.Errorf("page = %dx%d levels %d", pg.Width(), pg.Height(), pg.MipLevels())
	}
	if b := pg.Level(3).Rect; b.Dx() != 32 || b.Dy() != 16 {
		t.Errorf("level 3 = %v, want 32x16", b)
	}
	if pg.Level(4) != nil {
		t.Error("Level(4) exists on a 4-level page")
	}
	assertPixel(t, pg.Level(0), 100, 100, transparent)
	if p.LivePages() != 1 {
		t.Errorf("LivePages = %d, want 1", p.LivePages())
	}
	if want := (256*128 + 128*64 + 64*32 + 32*16) * 4; pg.Bytes() != want {
		t.Errorf("Bytes = %d, want %d", pg.Bytes(), want)
	}
}

func TestCreatePageErrors(t *testing.T) {
	p := NewProvider(WithMaxTextureSize(512))
	if _, err := p.CreateSurface(1024, 512, 1); !errors.Is(err, ErrTooLarge) {
		t.Errorf("too large: err = %v, want %v", err, ErrTooLarge)
	}
	if _, err := p.CreateSurface(0, 512, 1); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("zero width: err = %v, want %v", err, ErrInvalidSize)
	}
	if p.MaxTextureSize() != 512 {
		t.Errorf("MaxTextureSize = %d, want 512", p.MaxTextureSize())
	}
}

func TestCopyRegionMipLevels(t *testing.T) {
	p := NewProvider()
	pg, _ := p.CreatePage(128, 128, 3)
	rect := tileatlas.Rect{X: 64, Y: 64, Width: 64, Height: 64}

	err := p.CopyRegion(NewSource(solid(64, red)), tileatlas.Pt(0, 0), tileatlas.Pt(1, 1), pg, rect, false)
	if err != nil {
		t.Fatalf("CopyRegion: %v", err)
	}
	for level, at := range []int{64, 32, 16} {
		img := pg.Level(level)
		assertPixel(t, img, at, at, red)
		assertPixel(t, img, at-1, at-1, transparent)
		assertPixel(t, img, 2*at-1, 2*at-1, red)
	}
}

func TestCopyRegionCropBorders(t *testing.T) {
	p := NewProvider()
	pg, _ := p.CreatePage(128, 128, 2)
	draw.Draw(pg.Level(0), pg.Level(0).Rect, &image.Uniform{C: blue}, image.Point{}, draw.Src)
	rect := tileatlas.Rect{X: 0, Y: 0, Width: 32, Height: 32}

	err := p.CopyRegion(NewSource(solid(32, red)), tileatlas.Pt(0, 0), tileatlas.Pt(1, 1), pg, rect, true)
	if err != nil {
		t.Fatalf("CopyRegion: %v", err)
	}
	l0 := pg.Level(0)
	// Leftovers inside the slot are cleared, outside they stay.
	assertPixel(t, l0, 0, 0, transparent)
	assertPixel(t, l0, 31, 31, transparent)
	assertPixel(t, l0, 1, 1, red)
	assertPixel(t, l0, 30, 30, red)
	assertPixel(t, l0, 32, 32, blue)

	l1 := pg.Level(1)
	assertPixel(t, l1, 0, 0, transparent)
	assertPixel(t, l1, 1, 1, red)
	assertPixel(t, l1, 14, 14, red)
	assertPixel(t, l1, 15, 15, transparent)
}

func TestCopyRegionSubImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 64, 32))
	draw.Draw(src, image.Rect(0, 0, 32, 32), &image.Uniform{C: red}, image.Point{}, draw.Src)
	draw.Draw(src, image.Rect(32, 0, 64, 32), &image.Uniform{C: green}, image.Point{}, draw.Src)

	p := NewProvider(WithTileBorder(0))
	pg, _ := p.CreatePage(32, 32, 1)
	rect := tileatlas.Rect{X: 0, Y: 0, Width: 32, Height: 32}
	if err := p.CopyRegion(NewSource(src), tileatlas.Pt(0.5, 0), tileatlas.Pt(1, 1), pg, rect, true); err != nil {
		t.Fatalf("CopyRegion: %v", err)
	}
	assertPixel(t, pg.Level(0), 0, 0, green)
	assertPixel(t, pg.Level(0), 31, 31, green)
}

func TestSourceRectMatchesTileSize(t *testing.T) {
	tests := []struct {
		b        image.Rectangle
		min, max tileatlas.Point
	}{
		{image.Rect(0, 0, 10, 10), tileatlas.Pt(0.14, 0.14), tileatlas.Pt(0.66, 0.66)},
		{image.Rect(0, 0, 10, 10), tileatlas.Pt(0.35, 0.35), tileatlas.Pt(0.8, 0.8)},
		{image.Rect(5, 5, 105, 105), tileatlas.Pt(0.333, 0.333), tileatlas.Pt(0.999, 0.999)},
		{image.Rect(0, 0, 64, 64), tileatlas.Pt(0, 0), tileatlas.Pt(1, 1)},
	}
	for _, tt := range tests {
		r := sourceRect(tt.b, tt.min, tt.max)
		// The aggregator sizes a tile as the truncated region extent.
		want := int((tt.max.X - tt.min.X) * float64(tt.b.Dx()))
		if r.Dx() != want || r.Dy() != want {
			t.Errorf("sourceRect(%v, %v, %v) = %v, want %dx%d", tt.b, tt.min, tt.max, r, want, want)
		}
		if x := tt.b.Min.X + int(tt.min.X*float64(tt.b.Dx())); r.Min.X != x {
			t.Errorf("sourceRect(%v, %v, %v) starts at x=%d, want %d", tt.b, tt.min, tt.max, r.Min.X, x)
		}
	}
}

func TestCopySurface(t *testing.T) {
	p := NewProvider()
	src, _ := p.CreatePage(64, 64, 2)
	dst, _ := p.CreatePage(128, 64, 3)
	draw.Draw(src.Level(0), src.Level(0).Rect, &image.Uniform{C: red}, image.Point{}, draw.Src)
	draw.Draw(src.Level(1), src.Level(1).Rect, &image.Uniform{C: green}, image.Point{}, draw.Src)

	if err := p.CopySurface(src, dst); err != nil {
		t.Fatalf("CopySurface: %v", err)
	}
	assertPixel(t, dst.Level(0), 63, 63, red)
	assertPixel(t, dst.Level(0), 64, 0, transparent)
	assertPixel(t, dst.Level(1), 31, 31, green)
	assertPixel(t, dst.Level(2), 0, 0, transparent)

	if err := p.CopySurface(dst, src); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("copy into smaller page: err = %v, want %v", err, ErrInvalidSize)
	}
}

type otherSurface struct{}

func (otherSurface) Width() int     { return 1 }
func (otherSurface) Height() int    { return 1 }
func (otherSurface) MipLevels() int { return 1 }

func TestReleaseSurface(t *testing.T) {
	b := NewBudget(1 << 20)
	p := NewProvider(WithBudget(b))
	pg, _ := p.CreatePage(64, 64, 1)
	if b.Stats().UsedBytes != 64*64*4 {
		t.Errorf("UsedBytes = %d, want %d", b.Stats().UsedBytes, 64*64*4)
	}

	p.ReleaseSurface(pg)
	p.ReleaseSurface(pg)
	if !pg.Released() || p.LivePages() != 0 {
		t.Errorf("released = %v live = %d", pg.Released(), p.LivePages())
	}
	if s := b.Stats(); s.UsedBytes != 0 || s.PageCount != 0 {
		t.Errorf("budget after release = %v", s)
	}
	err := p.CopyRegion(NewSource(solid(8, red)), tileatlas.Pt(0, 0), tileatlas.Pt(1, 1), pg, tileatlas.Rect{Width: 8, Height: 8}, false)
	if !errors.Is(err, ErrReleased) {
		t.Errorf("draw into released page: err = %v, want %v", err, ErrReleased)
	}
	if err := p.CopySurface(otherSurface{}, pg); !errors.Is(err, ErrForeignSurface) {
		t.Errorf("foreign surface: err = %v, want %v", err, ErrForeignSurface)
	}
}

func TestSnapshot(t *testing.T) {
	p := NewProvider()
	pg, _ := p.CreatePage(16, 16, 2)
	draw.Draw(pg.Level(0), pg.Level(0).Rect, &image.Uniform{C: red}, image.Point{}, draw.Src)

	snap := pg.Snapshot()
	snap.SetRGBA(0, 0, green)
	assertPixel(t, pg.Level(0), 0, 0, red)
	if pg.SnapshotLevel(1).Rect.Dx() != 8 {
		t.Error("level 1 snapshot has wrong size")
	}
	if pg.SnapshotLevel(5) != nil {
		t.Error("snapshot of missing level is not nil")
	}
}
