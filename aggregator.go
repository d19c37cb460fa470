package tileatlas

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/tileatlas/internal/buddy"
)

// TileID identifies a registered tile. IDs are assigned sequentially and
// never reused by an Aggregator.
type TileID int

// tile is a registry entry.
type tile struct {
	image    Image
	min, max Point
	class    buddy.Class
	slot     buddy.ID
}

// Aggregator packs square tiles cut from source images into one growable
// backing page.
//
// Aggregator is not safe for concurrent use. All calls must come from the
// goroutine that owns the Provider.
type Aggregator struct {
	config   Config
	provider Provider
	page     *page
	pool     *buddy.Pool

	tiles  map[TileID]*tile
	nextID TileID

	resetNotify   func()
	repackPending bool
	tilesReset    bool
	repacks       int
	closed        bool
}

// New creates an Aggregator that draws through provider.
// No page exists until the first tile is added.
func New(provider Provider, opts ...Option) (*Aggregator, error) {
	if provider == nil {
		return nil, fmt.Errorf("%w: nil provider", ErrInvalidArgument)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.config.Validate(); err != nil {
		return nil, err
	}

	a := &Aggregator{
		config:      o.config,
		provider:    provider,
		tiles:       make(map[TileID]*tile),
		resetNotify: o.resetNotify,
	}
	a.page = newPage(provider, &a.config)
	a.pool = buddy.NewPool(a.page)
	return a, nil
}

// AddTile registers the normalized region [min, max] of img and renders
// it into a slot of the page. The region must cover a square, non-empty
// pixel area of img.
//
// A pending repack runs first. On failure no tile is registered: usage
// errors match ErrInvalidArgument and resource failures are *DeviceError.
func (a *Aggregator) AddTile(img Image, min, max Point) (TileID, error) {
	if a.closed {
		return 0, ErrClosed
	}
	a.repackCheck()

	if img == nil {
		return 0, fmt.Errorf("%w: nil image", ErrInvalidArgument)
	}
	if !normalized(min) || !normalized(max) {
		return 0, fmt.Errorf("%w: region %v-%v outside [0, 1]", ErrInvalidArgument, min, max)
	}
	width := int((max.X - min.X) * float64(img.Width()))
	height := int((max.Y - min.Y) * float64(img.Height()))
	if width != height || width <= 0 {
		return 0, fmt.Errorf("%w: tile must be non-empty and square, got %dx%d",
			ErrInvalidArgument, width, height)
	}

	if width > a.config.MaxSize {
		return 0, &DeviceError{Op: "create", Width: width, Height: height, Err: ErrMaxSizeExceeded}
	}

	class := buddy.SizeToLog2(width)
	slot, err := a.acquire(class)
	if err != nil {
		return 0, err
	}
	if err := a.render(img, min, max, slot); err != nil {
		a.pool.Release(slot)
		return 0, err
	}

	id := a.nextID
	a.nextID++
	a.tiles[id] = &tile{image: img, min: min, max: max, class: class, slot: slot}
	return id, nil
}

// DelTile removes a tile and returns its slot to the pool.
//
// When usage drops below the repack threshold on a page taller than
// MinSize, a repack is scheduled for the next AddTile or Repack call.
// Page manipulation is never done from DelTile itself.
func (a *Aggregator) DelTile(id TileID) error {
	t, ok := a.tiles[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrTileNotFound, id)
	}
	delete(a.tiles, id)
	if t.slot != buddy.None {
		a.pool.Release(t.slot)
	}

	if a.page.surface == nil {
		return nil
	}
	if a.TextureUsage() < a.config.RepackThreshold && a.page.height > a.config.MinSize {
		if !a.repackPending {
			slogger().Debug("tileatlas: repack scheduled",
				"usage", a.TextureUsage(), "width", a.page.width, "height", a.page.height)
		}
		a.repackPending = true
	}
	return nil
}

// TileCoords returns the pixel rectangle of a tile's slot on the page.
// Tiles left without a slot by a failed repack report ErrNoSlot.
func (a *Aggregator) TileCoords(id TileID) (min, max Point, err error) {
	r, err := a.TileRect(id)
	if err != nil {
		return Point{}, Point{}, err
	}
	return r.Min(), r.Max(), nil
}

// TileRect is TileCoords as an integer rectangle.
func (a *Aggregator) TileRect(id TileID) (Rect, error) {
	t, ok := a.tiles[id]
	if !ok {
		return Rect{}, fmt.Errorf("%w: %d", ErrTileNotFound, id)
	}
	if t.slot == buddy.None {
		return Rect{}, fmt.Errorf("%w: %d", ErrNoSlot, id)
	}
	return slotRect(a.pool.Slot(t.slot)), nil
}

// TileUV returns the tile's slot in normalized page coordinates, the
// TileCoords rectangle mapped through Transform.
func (a *Aggregator) TileUV(id TileID) (min, max Point, err error) {
	r, err := a.TileRect(id)
	if err != nil {
		return Point{}, Point{}, err
	}
	min, max = a.Transform().TransformRect(r)
	return min, max, nil
}

// Repack discards the page and the free pool, then places and renders
// every tile again in ascending id order.
//
// Repack always completes. Tiles that could not get a slot are left
// without one and listed in the returned *RepackError; the next repack
// tries them again. Afterwards the reset callback runs, or TilesReset
// reports true once.
func (a *Aggregator) Repack() error {
	if a.closed {
		return ErrClosed
	}
	before := a.page.area()
	a.page.release()
	a.pool.Reset()

	var failed *RepackError
	for _, id := range a.sortedIDs() {
		t := a.tiles[id]
		t.slot = buddy.None

		slot, err := a.acquire(t.class)
		if err != nil {
			slogger().Error("tileatlas: repack could not place tile, it has no slot until the next repack",
				"tile", int(id), "size", t.class.Size(), "error", err)
			if failed == nil {
				failed = &RepackError{}
			}
			failed.Failed = append(failed.Failed, id)
			failed.Errs = append(failed.Errs, err)
			continue
		}
		t.slot = slot
		if err := a.render(t.image, t.min, t.max, slot); err != nil {
			slogger().Warn("tileatlas: repack could not render tile", "tile", int(id), "error", err)
		}
	}

	a.repacks++
	a.repackPending = false
	slogger().Debug("tileatlas: repacked",
		"tiles", len(a.tiles), "area_before", before, "area_after", a.page.area())

	if a.resetNotify != nil {
		a.resetNotify()
	} else {
		a.tilesReset = true
	}
	if failed != nil {
		return failed
	}
	return nil
}

// repackCheck runs a scheduled repack.
func (a *Aggregator) repackCheck() {
	if !a.repackPending {
		return
	}
	// Failures are logged per tile; AddTile goes on with the new page.
	_ = a.Repack()
}

// RepackPending reports whether a deletion scheduled a repack that has not
// run yet.
func (a *Aggregator) RepackPending() bool {
	return a.repackPending
}

// TilesReset reports whether the page was rebuilt since the last call,
// then clears the flag. Callers must fetch tile coordinates again and
// rebind Texture when it returns true. It never reports true when a reset
// callback was registered.
func (a *Aggregator) TilesReset() bool {
	r := a.tilesReset
	a.tilesReset = false
	return r
}

// Texture returns the current page, or nil when none is allocated.
func (a *Aggregator) Texture() Surface {
	return a.page.surface
}

// Transform returns the mapping from page pixels to normalized [0, 1]
// page coordinates. It changes whenever the page grows or is rebuilt.
func (a *Aggregator) Transform() Matrix {
	return a.page.transform
}

// TextureUsage returns the slot area held by tiles divided by the page
// area, or 0 when no page exists.
func (a *Aggregator) TextureUsage() float64 {
	total := a.page.area()
	if total == 0 {
		return 0
	}
	return float64(a.usedArea()) / float64(total)
}

// TileCount returns the number of registered tiles, including tiles left
// without a slot.
func (a *Aggregator) TileCount() int {
	return len(a.tiles)
}

// MinSize returns the edge of the first page.
func (a *Aggregator) MinSize() int { return a.config.MinSize }

// MaxSize returns the largest page width or height.
func (a *Aggregator) MaxSize() int { return a.config.MaxSize }

// MipLevels returns the mip count of new pages.
func (a *Aggregator) MipLevels() int { return a.config.MipLevels }

// SetMinSize changes the edge of the first page. The current page is not
// resized.
func (a *Aggregator) SetMinSize(size int) error {
	return a.update(func(c *Config) { c.MinSize = size })
}

// SetMaxSize changes the largest page dimension. The current page is not
// resized; growth past the new maximum fails.
func (a *Aggregator) SetMaxSize(size int) error {
	return a.update(func(c *Config) { c.MaxSize = size })
}

// SetMipLevels changes the mip count of pages created from now on.
func (a *Aggregator) SetMipLevels(levels int) error {
	return a.update(func(c *Config) { c.MipLevels = levels })
}

func (a *Aggregator) update(fn func(*Config)) error {
	c := a.config
	fn(&c)
	if err := c.Validate(); err != nil {
		return err
	}
	a.config = c
	return nil
}

// DeviceLost drops the page and the free pool after the provider lost its
// resources. Tiles stay registered without slots and a repack is
// scheduled, so an AddTile before DeviceRestored rebuilds first.
func (a *Aggregator) DeviceLost() {
	a.page.release()
	a.pool.Reset()
	for _, t := range a.tiles {
		t.slot = buddy.None
	}
	a.repackPending = true
	slogger().Debug("tileatlas: device lost", "tiles", len(a.tiles))
}

// DeviceRestored rebuilds the page after DeviceLost.
func (a *Aggregator) DeviceRestored() error {
	return a.Repack()
}

// Close releases the page and forgets every tile. Calling Close more than
// once is a no-op.
func (a *Aggregator) Close() error {
	if a.closed {
		return nil
	}
	a.page.release()
	a.pool.Reset()
	clear(a.tiles)
	a.repackPending = false
	a.closed = true
	return nil
}

// acquire takes a slot from the pool, wrapping non-device failures.
func (a *Aggregator) acquire(c buddy.Class) (buddy.ID, error) {
	id, err := a.pool.Acquire(c)
	if err == nil {
		return id, nil
	}
	var de *DeviceError
	if errors.As(err, &de) {
		return buddy.None, err
	}
	return buddy.None, &DeviceError{Op: "create", Width: c.Size(), Height: c.Size(), Err: err}
}

func (a *Aggregator) render(img Image, min, max Point, slot buddy.ID) error {
	r := slotRect(a.pool.Slot(slot))
	if err := a.provider.CopyRegion(img, min, max, a.page.surface, r, a.config.CropBorders); err != nil {
		return &DeviceError{Op: "render", Width: r.Width, Height: r.Height, Err: err}
	}
	return nil
}

func (a *Aggregator) usedArea() int {
	area := 0
	for _, t := range a.tiles {
		if t.slot != buddy.None {
			area += a.pool.Slot(t.slot).Area()
		}
	}
	return area
}

func (a *Aggregator) sortedIDs() []TileID {
	ids := make([]TileID, 0, len(a.tiles))
	for id := range a.tiles {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// normalized reports whether p lies in the unit square. NaN does not.
func normalized(p Point) bool {
	return p.X >= 0 && p.X <= 1 && p.Y >= 0 && p.Y <= 1
}

func slotRect(s buddy.Slot) Rect {
	return Rect{X: s.X, Y: s.Y, Width: s.Size, Height: s.Size}
}
