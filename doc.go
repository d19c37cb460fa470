// Package tileatlas packs square tiles into one growable texture page.
//
// # Overview
//
// An Aggregator takes square regions of source images ("tiles") and
// renders each into a slot of a single backing page. Slots are allocated
// by a binary buddy scheme: every slot edge is a power of two, larger free
// slots split four ways on demand, and four free siblings merge back into
// their parent on release.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/tileatlas"
//	    "github.com/gogpu/tileatlas/surface"
//	)
//
//	agg, err := tileatlas.New(surface.NewProvider())
//	if err != nil {
//	    return err
//	}
//	id, err := agg.AddTile(surface.NewSource(icon), tileatlas.Pt(0, 0), tileatlas.Pt(1, 1))
//	if err != nil {
//	    return err
//	}
//	uvMin, uvMax, _ := agg.TileUV(id)
//
// # Growth
//
// The first page is MinSize square, or larger if the first tile needs it.
// When no slot fits, a square page doubles its height and a 2:1 page
// doubles its width, up to MaxSize. Old content is copied into the grown
// page, so tile coordinates stay valid; only the normalized Transform
// changes.
//
// # Repacking
//
// Deleting tiles can leave the page sparsely used. When usage drops below
// the repack threshold on a page taller than MinSize, a repack is
// scheduled and runs at the start of the next AddTile, or when the caller
// invokes Repack at a point where page manipulation is safe. A repack
// rebuilds the page from scratch in ascending tile id order. Tile ids are
// preserved but their coordinates change; callers learn about it through
// the WithResetNotify callback or by polling TilesReset.
//
// # Providers
//
// Pixels live behind the Provider interface. The surface package supplies
// an in-memory implementation, and the gpu package backs pages with GPU
// textures.
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//
// Tile regions are normalized to the source image. TileCoords is in page
// pixels, TileUV in normalized page coordinates.
package tileatlas

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
