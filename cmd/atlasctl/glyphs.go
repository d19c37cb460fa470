package main

import (
	"fmt"
	"image"

	"github.com/spf13/cobra"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/tileatlas"
	"github.com/gogpu/tileatlas/surface"
)

var (
	glyphText string
	glyphCell int
	glyphOut  string
)

// printableASCII is the default glyph set.
var printableASCII = func() string {
	b := make([]byte, 0, 126-33+1)
	for c := byte(33); c <= 126; c++ {
		b = append(b, c)
	}
	return string(b)
}()

func init() {
	cmd := newGlyphsCmd()
	cmd.Flags().StringVar(&glyphText, "text", printableASCII, "Glyphs to pack")
	cmd.Flags().IntVar(&glyphCell, "cell", 16, "Tile edge per glyph in pixels")
	cmd.Flags().StringVarP(&glyphOut, "out", "o", "", "Write the packed page to a PNG file")
	rootCmd.AddCommand(cmd)
}

func newGlyphsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "glyphs",
		Short: "Pack a bitmap glyph set into an atlas",
		Long: `The glyphs command rasterizes each distinct glyph of the basic 7x13
bitmap font into its own tile and packs the set into one page.

Example:
  atlasctl glyphs
  atlasctl glyphs --text "0123456789" --out digits.png
  atlasctl glyphs --cell 32 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGlyphs()
		},
	}
	return cmd
}

func runGlyphs() error {
	face := basicfont.Face7x13
	if glyphCell < face.Width || glyphCell < face.Height {
		return fmt.Errorf("cell %d is smaller than the %dx%d glyph box", glyphCell, face.Width, face.Height)
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.close()

	type placed struct {
		name string
		id   tileatlas.TileID
	}
	var glyphs []placed
	seen := make(map[rune]bool)

	for _, ch := range glyphText {
		if seen[ch] {
			continue
		}
		seen[ch] = true

		img := renderGlyph(face, ch, glyphCell)
		id, err := s.atlas.AddTile(surface.NewSource(img),
			tileatlas.Pt(0, 0), tileatlas.Pt(1, 1))
		if err != nil {
			return fmt.Errorf("glyph %q: %w", ch, err)
		}
		glyphs = append(glyphs, placed{name: string(ch), id: id})
	}

	if err := s.flush(); err != nil {
		return fmt.Errorf("failed to flush pages: %w", err)
	}

	r := newReport(s.atlas)
	r.Counters = map[string]int{"glyphs": len(glyphs)}
	for _, g := range glyphs {
		r.addTile(s.atlas, g.name, g.id)
	}

	if glyphOut != "" && s.atlas.Texture() != nil {
		if err := s.writePNG(glyphOut); err != nil {
			return err
		}
	}
	return r.print()
}

// renderGlyph draws ch centered in a cell x cell transparent tile.
func renderGlyph(face *basicfont.Face, ch rune, cell int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, cell, cell))
	d := font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P((cell-face.Width)/2, (cell-face.Height)/2+face.Ascent),
	}
	d.DrawString(string(ch))
	return img
}
