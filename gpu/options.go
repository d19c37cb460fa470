package gpu

import "github.com/gogpu/gputypes"

// DefaultMaxTextureSize is the largest page edge a Provider creates unless
// configured otherwise.
const DefaultMaxTextureSize = 8192

// Option configures a Provider.
type Option func(*options)

type options struct {
	format         gputypes.TextureFormat
	maxTextureSize int
	label          string
}

func defaultOptions() options {
	return options{
		format:         gputypes.TextureFormatUndefined,
		maxTextureSize: DefaultMaxTextureSize,
		label:          "tileatlas_page",
	}
}

// WithFormat sets the texture format of pages. Only RGBA8Unorm and
// BGRA8Unorm are supported; other formats fall back to RGBA8Unorm.
// By default the device provider's surface format is used when it is one
// of the two.
func WithFormat(format gputypes.TextureFormat) Option {
	return func(o *options) {
		o.format = format
	}
}

// WithMaxTextureSize caps page width and height. Values <= 0 are ignored.
func WithMaxTextureSize(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.maxTextureSize = size
		}
	}
}

// WithLabel sets the debug label prefix of page textures.
func WithLabel(label string) Option {
	return func(o *options) {
		if label != "" {
			o.label = label
		}
	}
}

// pageFormat resolves the format pages are created with.
func pageFormat(requested gputypes.TextureFormat) gputypes.TextureFormat {
	switch requested {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm:
		return requested
	default:
		return gputypes.TextureFormatRGBA8Unorm
	}
}
