package tileatlas

// Image is a source texture tiles are cut from.
type Image interface {
	// Width returns the image width in pixels.
	Width() int

	// Height returns the image height in pixels.
	Height() int
}

// Surface is a backing page created by a Provider.
// The Aggregator owns every Surface it creates and releases it through the
// same Provider.
type Surface interface {
	// Width returns the level-0 width in pixels.
	Width() int

	// Height returns the level-0 height in pixels.
	Height() int

	// MipLevels returns the number of mip levels.
	MipLevels() int
}

// Provider creates and draws into backing surfaces.
//
// Implementations decide where pixels live; the surface package keeps them
// in memory and the gpu package in GPU textures. A Provider is called from
// the goroutine that owns the Aggregator and need not be safe for
// concurrent use.
type Provider interface {
	// CreateSurface allocates a surface with every mip level cleared to
	// transparent. An error means no surface was created.
	CreateSurface(width, height, mipLevels int) (Surface, error)

	// CopySurface copies all of src into the top-left corner of dst at
	// every mip level they share. dst is at least as large as src.
	CopySurface(src, dst Surface) error

	// CopyRegion renders the normalized region [srcMin, srcMax] of src
	// into dstRect of dst on every mip level. dstRect is given in level-0
	// pixels. With cropBorders the destination is inset per level so
	// adjacent tiles do not bleed into each other when minified.
	CopyRegion(src Image, srcMin, srcMax Point, dst Surface, dstRect Rect, cropBorders bool) error

	// ReleaseSurface frees a surface. The surface must not be used after.
	ReleaseSurface(s Surface)
}
