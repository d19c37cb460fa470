package tileatlas

import "fmt"

// Stats is a snapshot of aggregator state.
type Stats struct {
	// Tiles is the number of registered tiles.
	Tiles int

	// Unplaced is the number of tiles without a slot.
	Unplaced int

	// PageWidth and PageHeight are the page dimensions, 0 without a page.
	PageWidth, PageHeight int

	// UsedArea is the slot area held by tiles, in pixels.
	UsedArea int

	// FreeArea is the area of free slots, in pixels.
	FreeArea int

	// FreeSlots maps slot edge length to the number of free slots.
	FreeSlots map[int]int

	// Grows is the number of page creations and doublings.
	Grows int

	// Repacks is the number of completed repacks.
	Repacks int

	// Usage is TextureUsage at the time of the snapshot.
	Usage float64
}

// Stats returns a snapshot of the aggregator state.
func (a *Aggregator) Stats() Stats {
	s := Stats{
		Tiles:      len(a.tiles),
		PageWidth:  a.page.width,
		PageHeight: a.page.height,
		UsedArea:   a.usedArea(),
		FreeArea:   a.pool.FreeArea(),
		FreeSlots:  make(map[int]int),
		Grows:      a.page.grows,
		Repacks:    a.repacks,
		Usage:      a.TextureUsage(),
	}
	for _, t := range a.tiles {
		if t.slot < 0 {
			s.Unplaced++
		}
	}
	for _, c := range a.pool.Classes() {
		s.FreeSlots[c.Size()] = a.pool.FreeCount(c)
	}
	return s
}

func (s Stats) String() string {
	return fmt.Sprintf("Atlas[%dx%d, %.1f%% used, %d tiles, %d unplaced, %d grows, %d repacks]",
		s.PageWidth, s.PageHeight,
		s.Usage*100,
		s.Tiles,
		s.Unplaced,
		s.Grows,
		s.Repacks)
}
