package main

import (
	"slices"

	"github.com/gogpu/tileatlas"
)

// Report is the summary printed after a command finishes.
type Report struct {
	Backend    string         `json:"backend"`
	Tiles      int            `json:"tiles"`
	Unplaced   int            `json:"unplaced"`
	PageWidth  int            `json:"page_width"`
	PageHeight int            `json:"page_height"`
	UsedArea   int            `json:"used_area"`
	FreeArea   int            `json:"free_area"`
	Usage      float64        `json:"usage"`
	Grows      int            `json:"grows"`
	Repacks    int            `json:"repacks"`
	FreeSlots  map[int]int    `json:"free_slots,omitempty"`
	Counters   map[string]int `json:"counters,omitempty"`
	Tileset    []TileReport   `json:"tileset,omitempty"`
}

// TileReport is the placement of one named tile.
type TileReport struct {
	Name   string `json:"name"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Size   int    `json:"size"`
	Placed bool   `json:"placed"`
}

func newReport(a *tileatlas.Aggregator) *Report {
	s := a.Stats()
	return &Report{
		Backend:    backendName,
		Tiles:      s.Tiles,
		Unplaced:   s.Unplaced,
		PageWidth:  s.PageWidth,
		PageHeight: s.PageHeight,
		UsedArea:   s.UsedArea,
		FreeArea:   s.FreeArea,
		Usage:      s.Usage,
		Grows:      s.Grows,
		Repacks:    s.Repacks,
		FreeSlots:  s.FreeSlots,
		Counters:   make(map[string]int),
	}
}

// addTile records where a named tile currently sits.
func (r *Report) addTile(a *tileatlas.Aggregator, name string, id tileatlas.TileID) {
	tr := TileReport{Name: name}
	if rect, err := a.TileRect(id); err == nil {
		tr.X, tr.Y, tr.Size, tr.Placed = rect.X, rect.Y, rect.Width, true
	}
	r.Tileset = append(r.Tileset, tr)
}

func (r *Report) print() error {
	if jsonOut {
		return printJSON(r)
	}

	printInfo("\nAtlas (%s backend)\n", r.Backend)
	printInfo("  Page:      %d x %d\n", r.PageWidth, r.PageHeight)
	printInfo("  Tiles:     %d (%d unplaced)\n", r.Tiles, r.Unplaced)
	printInfo("  Used area: %d px\n", r.UsedArea)
	printInfo("  Free area: %d px\n", r.FreeArea)
	printInfo("  Usage:     %.1f%%\n", r.Usage*100)
	printInfo("  Grows:     %d\n", r.Grows)
	printInfo("  Repacks:   %d\n", r.Repacks)

	if len(r.FreeSlots) > 0 {
		printInfo("\nFree slots\n")
		sizes := make([]int, 0, len(r.FreeSlots))
		for size := range r.FreeSlots {
			sizes = append(sizes, size)
		}
		slices.Sort(sizes)
		for _, size := range sizes {
			printInfo("  %5d px: %d\n", size, r.FreeSlots[size])
		}
	}

	if len(r.Counters) > 0 {
		printInfo("\nOperations\n")
		names := make([]string, 0, len(r.Counters))
		for name := range r.Counters {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			printInfo("  %-9s %d\n", name+":", r.Counters[name])
		}
	}

	if verbose && len(r.Tileset) > 0 {
		printInfo("\nTiles\n")
		for _, t := range r.Tileset {
			if !t.Placed {
				printInfo("  %-12s unplaced\n", t.Name)
				continue
			}
			printInfo("  %-12s (%d,%d) %d px\n", t.Name, t.X, t.Y, t.Size)
		}
	}
	return nil
}
