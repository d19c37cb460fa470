package buddy

import "fmt"

// Slot is a square region of a page in level-0 pixel coordinates.
type Slot struct {
	X    int
	Y    int
	Size int
}

// Width returns the slot width. Slots are square.
func (s Slot) Width() int { return s.Size }

// Height returns the slot height. Slots are square.
func (s Slot) Height() int { return s.Size }

// Class returns the size class of the slot.
func (s Slot) Class() Class {
	return SizeToLog2(s.Size)
}

// Area returns the pixel area covered by the slot.
func (s Slot) Area() int {
	return s.Size * s.Size
}

// Overlaps reports whether s and o share at least one pixel.
func (s Slot) Overlaps(o Slot) bool {
	return s.X < o.X+o.Size && o.X < s.X+s.Size &&
		s.Y < o.Y+o.Size && o.Y < s.Y+s.Size
}

// Subdivide splits the slot into four children of half the edge.
// The children tile s exactly. The last child is the bottom-left one,
// which is the one a stack pop hands out first.
func (s Slot) Subdivide() [4]Slot {
	h := s.Size >> 1
	return [4]Slot{
		{X: s.X + h, Y: s.Y, Size: h},
		{X: s.X, Y: s.Y, Size: h},
		{X: s.X + h, Y: s.Y + h, Size: h},
		{X: s.X, Y: s.Y + h, Size: h},
	}
}

// Parent returns the slot of twice the edge, aligned to a grid of that
// edge, that contains s.
func (s Slot) Parent() Slot {
	w := s.Size * 2
	return Slot{X: (s.X / w) * w, Y: (s.Y / w) * w, Size: w}
}

// Siblings returns the 2x2 group of same-class slots that make up the
// parent of s, s included. The first entry is the group origin.
func (s Slot) Siblings() [4]Slot {
	p := s.Parent()
	w := s.Size
	return [4]Slot{
		{X: p.X, Y: p.Y, Size: w},
		{X: p.X, Y: p.Y + w, Size: w},
		{X: p.X + w, Y: p.Y, Size: w},
		{X: p.X + w, Y: p.Y + w, Size: w},
	}
}

// String returns a string representation of the slot.
func (s Slot) String() string {
	return fmt.Sprintf("Slot(%d,%d %dx%d)", s.X, s.Y, s.Size, s.Size)
}
