package tileatlas

// Option configures an Aggregator during creation.
//
// Example:
//
//	agg, err := tileatlas.New(provider,
//	    tileatlas.WithMinSize(256),
//	    tileatlas.WithResetNotify(func() { rebuildUVs() }),
//	)
type Option func(*options)

// options holds optional configuration for Aggregator creation.
type options struct {
	config      Config
	resetNotify func()
}

// defaultOptions returns the default aggregator options.
func defaultOptions() options {
	return options{
		config: DefaultConfig(),
	}
}

// WithConfig replaces the whole configuration.
// Options applied after it override individual fields.
func WithConfig(c Config) Option {
	return func(o *options) {
		o.config = c
	}
}

// WithMinSize sets the edge of the first page.
func WithMinSize(size int) Option {
	return func(o *options) {
		o.config.MinSize = size
	}
}

// WithMaxSize sets the largest page width or height.
func WithMaxSize(size int) Option {
	return func(o *options) {
		o.config.MaxSize = size
	}
}

// WithMipLevels sets the mip count of pages.
func WithMipLevels(levels int) Option {
	return func(o *options) {
		o.config.MipLevels = levels
	}
}

// WithRepackThreshold sets the usage ratio below which deletions schedule
// a repack.
func WithRepackThreshold(ratio float64) Option {
	return func(o *options) {
		o.config.RepackThreshold = ratio
	}
}

// WithCropBorders enables or disables border cropping of tiles.
func WithCropBorders(crop bool) Option {
	return func(o *options) {
		o.config.CropBorders = crop
	}
}

// WithResetNotify registers a callback run after every repack.
// When set, the TilesReset flag is never raised; the callback replaces it.
//
// Example:
//
//	agg, _ := tileatlas.New(provider, tileatlas.WithResetNotify(func() {
//	    for id := range sprites {
//	        sprites[id].uv, _, _ = agg.TileUV(id)
//	    }
//	}))
func WithResetNotify(fn func()) Option {
	return func(o *options) {
		o.resetNotify = fn
	}
}
