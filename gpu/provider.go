package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/tileatlas"
	"github.com/gogpu/tileatlas/surface"
)

// Provider errors.
var (
	// ErrNoHAL is returned when a device provider does not expose HAL types.
	ErrNoHAL = errors.New("gpu: provider does not expose HAL device and queue")

	// ErrForeignSurface is returned for surfaces this package did not create.
	ErrForeignSurface = errors.New("gpu: surface not created by this package")

	// ErrClosed is returned when using a closed provider.
	ErrClosed = errors.New("gpu: provider closed")
)

// Provider is a tileatlas.Provider whose pages are GPU textures.
//
// Provider is not safe for concurrent use. All calls, including Flush,
// must come from the goroutine that owns the device.
type Provider struct {
	device hal.Device
	queue  hal.Queue
	shadow *surface.Provider

	format         gputypes.TextureFormat
	label          string
	maxTextureSize int

	textures map[*Texture]struct{}
	created  int
	uploads  int

	// release destroys a device opened by the provider itself.
	release func()
	closed  bool
}

var _ tileatlas.Provider = (*Provider)(nil)

// NewProvider creates a provider on a shared device.
// The device provider must implement HalDevice() any and HalQueue() any
// returning hal.Device and hal.Queue.
func NewProvider(dp gpucontext.DeviceProvider, opts ...Option) (*Provider, error) {
	if dp == nil {
		return nil, ErrNoHAL
	}
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := dp.(halProvider)
	if !ok {
		return nil, ErrNoHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHAL)
	}

	o := defaultOptions()
	o.format = dp.SurfaceFormat()
	for _, opt := range opts {
		opt(&o)
	}
	return newProvider(device, queue, o), nil
}

// NewProviderFromHAL creates a provider on an explicit device and queue.
// Pages default to RGBA8Unorm.
func NewProviderFromHAL(device hal.Device, queue hal.Queue, opts ...Option) (*Provider, error) {
	if device == nil || queue == nil {
		return nil, ErrNoHAL
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return newProvider(device, queue, o), nil
}

func newProvider(device hal.Device, queue hal.Queue, o options) *Provider {
	return &Provider{
		device:         device,
		queue:          queue,
		shadow:         surface.NewProvider(surface.WithMaxTextureSize(o.maxTextureSize)),
		format:         pageFormat(o.format),
		label:          o.label,
		maxTextureSize: o.maxTextureSize,
		textures:       make(map[*Texture]struct{}),
	}
}

// Format returns the texture format of pages.
func (p *Provider) Format() gputypes.TextureFormat { return p.format }

// LiveTextures returns the number of textures not yet released.
func (p *Provider) LiveTextures() int { return len(p.textures) }

// Uploads returns the number of mip levels written to the GPU so far.
func (p *Provider) Uploads() int { return p.uploads }

// CreateSurface creates a GPU texture and its cleared shadow.
// The cleared content is uploaded on the next Flush.
func (p *Provider) CreateSurface(width, height, mipLevels int) (tileatlas.Surface, error) {
	if p.closed {
		return nil, ErrClosed
	}
	shadow, err := p.shadow.CreatePage(width, height, mipLevels)
	if err != nil {
		return nil, err
	}

	p.created++
	tex, err := p.device.CreateTexture(&hal.TextureDescriptor{
		Label: fmt.Sprintf("%s_%d", p.label, p.created),
		Size: hal.Extent3D{
			Width:              uint32(width),  //nolint:gosec // G115: bounded by maxTextureSize
			Height:             uint32(height), //nolint:gosec // G115: bounded by maxTextureSize
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: uint32(mipLevels), //nolint:gosec // G115: mip count is small
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        p.format,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		p.shadow.ReleaseSurface(shadow)
		return nil, fmt.Errorf("gpu: create page texture %dx%d: %w", width, height, err)
	}

	t := &Texture{tex: tex, shadow: shadow, dirty: true}
	p.textures[t] = struct{}{}
	tileatlas.Logger().Debug("gpu: page texture created",
		"width", width, "height", height, "levels", mipLevels, "format", p.format)
	return t, nil
}

// CopySurface copies src into dst on the shadows and marks dst for upload.
func (p *Provider) CopySurface(src, dst tileatlas.Surface) error {
	s, err := p.texture(src)
	if err != nil {
		return err
	}
	d, err := p.texture(dst)
	if err != nil {
		return err
	}
	if err := p.shadow.CopySurface(s.shadow, d.shadow); err != nil {
		return err
	}
	d.dirty = true
	return nil
}

// CopyRegion renders a tile into the shadow of dst and marks it for upload.
// A Texture may itself be the tile source.
func (p *Provider) CopyRegion(src tileatlas.Image, srcMin, srcMax tileatlas.Point, dst tileatlas.Surface, dstRect tileatlas.Rect, cropBorders bool) error {
	d, err := p.texture(dst)
	if err != nil {
		return err
	}
	if t, ok := src.(*Texture); ok {
		src = t.shadow
	}
	if err := p.shadow.CopyRegion(src, srcMin, srcMax, d.shadow, dstRect, cropBorders); err != nil {
		return err
	}
	d.dirty = true
	return nil
}

// ReleaseSurface destroys the texture and its shadow.
func (p *Provider) ReleaseSurface(s tileatlas.Surface) {
	t, ok := s.(*Texture)
	if !ok || t.released {
		return
	}
	if t.tex != nil {
		p.device.DestroyTexture(t.tex)
		t.tex = nil
	}
	p.shadow.ReleaseSurface(t.shadow)
	t.released = true
	t.dirty = false
	delete(p.textures, t)
}

// Flush uploads every changed page to the GPU, one whole mip level per
// write.
func (p *Provider) Flush() error {
	if p.closed {
		return ErrClosed
	}
	for t := range p.textures {
		if !t.dirty {
			continue
		}
		for level := 0; level < t.shadow.MipLevels(); level++ {
			p.upload(t, level)
		}
		t.dirty = false
	}
	return nil
}

func (p *Provider) upload(t *Texture, level int) {
	img := t.shadow.Level(level)
	w := uint32(img.Rect.Dx()) //nolint:gosec // G115: bounded by maxTextureSize
	h := uint32(img.Rect.Dy()) //nolint:gosec // G115: bounded by maxTextureSize

	data := img.Pix
	if p.format == gputypes.TextureFormatBGRA8Unorm {
		data = rgbaToBGRA(img.Pix)
	}

	p.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  t.tex,
			MipLevel: uint32(level), //nolint:gosec // G115: mip count is small
		},
		data,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  w * 4,
			RowsPerImage: h,
		},
		&hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	)
	p.uploads++
}

// Close destroys every live texture, and the device if the provider
// opened it.
func (p *Provider) Close() {
	if p.closed {
		return
	}
	for t := range p.textures {
		p.ReleaseSurface(t)
	}
	if p.release != nil {
		p.release()
		p.release = nil
	}
	p.closed = true
}

func (p *Provider) texture(s tileatlas.Surface) (*Texture, error) {
	t, ok := s.(*Texture)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrForeignSurface, s)
	}
	if t.released {
		return nil, surface.ErrReleased
	}
	return t, nil
}

// rgbaToBGRA returns a copy of RGBA pixels with red and blue swapped.
func rgbaToBGRA(pix []byte) []byte {
	out := make([]byte, len(pix))
	for i := 0; i+3 < len(pix); i += 4 {
		out[i] = pix[i+2]
		out[i+1] = pix[i+1]
		out[i+2] = pix[i]
		out[i+3] = pix[i+3]
	}
	return out
}
