// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides an in-memory tile atlas backend.
//
// Pages are chains of *image.RGBA, one per mip level, and tiles are
// scaled into every level with golang.org/x/image/draw. The Provider is
// the default backend and the CPU shadow of the gpu package.
//
// # Usage
//
//	p := surface.NewProvider(surface.WithBudget(surface.NewBudget(64 << 20)))
//	agg, err := tileatlas.New(p)
//	if err != nil {
//	    return err
//	}
//	id, err := agg.AddTile(surface.NewSource(img), tileatlas.Pt(0, 0), tileatlas.Pt(1, 1))
//
//	page := agg.Texture().(*surface.Page)
//	png.Encode(w, page.Snapshot())
//
// # Registry
//
// Backends register a Factory under a name and priority:
//
//	surface.Register(surface.Backend{
//	    Name:      "gpu",
//	    Priority:  surface.PriorityGPU,
//	    New:       gpuFactory,
//	    Available: gpuAvailable,
//	})
//
//	p, err := surface.NewProviderByName("gpu")
//	// or the best available:
//	p, name, err := surface.Best()
//
// The in-memory backend is registered as "software".
package surface
