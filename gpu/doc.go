// Package gpu backs tile atlas pages with GPU textures.
//
// Pages are created as hal.Texture objects on a wgpu HAL device. Tiles are
// composed on a CPU shadow page from the surface package and uploaded to
// the texture, one whole mip level at a time, on Flush. Call Flush once per
// frame, after the frame's AddTile and Repack calls and before sampling the
// texture.
//
// Usage with a shared device (e.g. from gogpu):
//
//	p, err := gpu.NewProvider(app.DeviceProvider())
//	if err != nil {
//	    return err
//	}
//	agg, err := tileatlas.New(p)
//	...
//	if err := p.Flush(); err != nil {
//	    return err
//	}
//	tex := agg.Texture().(*gpu.Texture).HAL()
//
// Register makes the backend selectable by name through the surface
// registry.
package gpu
