package main

import (
	"errors"
	"fmt"
	"image/color"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/gogpu/tileatlas"
	"github.com/gogpu/tileatlas/surface"
)

var (
	simOps      int
	simSeed     int64
	simMinTile  int
	simMaxTile  int
	simDelRatio float64
	simMinSize  int
	simMaxSize  int
)

func init() {
	cmd := newSimulateCmd()
	cmd.Flags().IntVar(&simOps, "ops", 1000, "Number of operations")
	cmd.Flags().Int64Var(&simSeed, "seed", 1, "Random seed")
	cmd.Flags().IntVar(&simMinTile, "min-tile", 4, "Smallest tile edge in pixels")
	cmd.Flags().IntVar(&simMaxTile, "max-tile", 128, "Largest tile edge in pixels")
	cmd.Flags().Float64Var(&simDelRatio, "del-ratio", 0.4, "Probability that an op deletes a tile")
	cmd.Flags().IntVar(&simMinSize, "min-size", tileatlas.DefaultMinSize, "Minimum page size")
	cmd.Flags().IntVar(&simMaxSize, "max-size", tileatlas.DefaultMaxSize, "Maximum page size")
	rootCmd.AddCommand(cmd)
}

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a random add/remove workload",
		Long: `The simulate command adds and deletes random square tiles and
reports how the page grew and how often it was repacked. The same seed
always produces the same workload.

Example:
  atlasctl simulate
  atlasctl simulate --ops 50000 --seed 7 --max-tile 256
  atlasctl simulate --del-ratio 0.6 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate()
		},
	}
	return cmd
}

func runSimulate() error {
	if simMinTile < 1 || simMaxTile < simMinTile {
		return fmt.Errorf("invalid tile range %d..%d", simMinTile, simMaxTile)
	}
	if simDelRatio < 0 || simDelRatio > 1 {
		return fmt.Errorf("del-ratio %v out of range [0, 1]", simDelRatio)
	}

	s, err := openSession(
		tileatlas.WithMinSize(simMinSize),
		tileatlas.WithMaxSize(simMaxSize),
	)
	if err != nil {
		return err
	}
	defer s.close()

	rng := rand.New(rand.NewSource(simSeed)) //nolint:gosec // reproducible workload
	sources := make(map[int]*surface.Source)
	var live []tileatlas.TileID
	counters := map[string]int{"add": 0, "del": 0, "rejected": 0}

	printVerbose("Simulating %d ops (seed %d)\n", simOps, simSeed)
	for step := 0; step < simOps; step++ {
		if len(live) > 0 && rng.Float64() < simDelRatio {
			i := rng.Intn(len(live))
			if err := s.atlas.DelTile(live[i]); err != nil {
				return fmt.Errorf("step %d: %w", step, err)
			}
			live[i] = live[len(live)-1]
			live = live[:len(live)-1]
			counters["del"]++
			continue
		}

		size := simMinTile + rng.Intn(simMaxTile-simMinTile+1)
		src, ok := sources[size]
		if !ok {
			src = surface.NewSource(solidTile(size, sizeColor(size)))
			sources[size] = src
		}
		id, err := s.atlas.AddTile(src, tileatlas.Pt(0, 0), tileatlas.Pt(1, 1))
		if errors.Is(err, tileatlas.ErrMaxSizeExceeded) {
			counters["rejected"]++
			continue
		}
		if err != nil {
			return fmt.Errorf("step %d: %w", step, err)
		}
		live = append(live, id)
		counters["add"]++
	}

	if err := s.flush(); err != nil {
		return fmt.Errorf("failed to flush pages: %w", err)
	}

	r := newReport(s.atlas)
	r.Counters = counters
	return r.print()
}

// sizeColor gives every tile size a stable, distinct color.
func sizeColor(size int) color.RGBA {
	h := uint32(size) * 2654435761 //nolint:gosec // G115: hash input
	return color.RGBA{R: uint8(h >> 24), G: uint8(h >> 16), B: uint8(h >> 8), A: 0xff}
}
