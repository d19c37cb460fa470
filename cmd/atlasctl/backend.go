package main

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/gogpu/tileatlas"
	"github.com/gogpu/tileatlas/gpu"
	"github.com/gogpu/tileatlas/surface"
)

// session couples an aggregator with the provider it was built on.
type session struct {
	provider tileatlas.Provider
	atlas    *tileatlas.Aggregator
}

func openSession(opts ...tileatlas.Option) (*session, error) {
	if backendName == gpu.BackendName {
		gpu.Register()
	}
	provider, err := surface.NewProviderByName(backendName)
	if err != nil {
		return nil, err
	}
	atlas, err := tileatlas.New(provider, opts...)
	if err != nil {
		closeProvider(provider)
		return nil, err
	}
	printVerbose("Backend: %s\n", backendName)
	return &session{provider: provider, atlas: atlas}, nil
}

// flush pushes pending page writes to the device for providers that
// batch them.
func (s *session) flush() error {
	if f, ok := s.provider.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

func (s *session) close() {
	if err := s.atlas.Close(); err != nil {
		printError("close atlas: %v\n", err)
	}
	closeProvider(s.provider)
}

func closeProvider(p tileatlas.Provider) {
	if c, ok := p.(interface{ Close() }); ok {
		c.Close()
	}
}

// snapshot returns a copy of level 0 of the current page.
func (s *session) snapshot() (*image.RGBA, error) {
	switch t := s.atlas.Texture().(type) {
	case *surface.Page:
		return t.Snapshot(), nil
	case *gpu.Texture:
		return t.Shadow().Snapshot(), nil
	case nil:
		return nil, fmt.Errorf("atlas has no page")
	default:
		return nil, fmt.Errorf("cannot read back %T", t)
	}
}

// writePNG saves the current page to path.
func (s *session) writePNG(path string) error {
	img, err := s.snapshot()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode page: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	printVerbose("Page written to %s (%dx%d)\n", path, img.Rect.Dx(), img.Rect.Dy())
	return nil
}
