package main

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/gogpu/tileatlas"
	"github.com/gogpu/tileatlas/surface"
)

var (
	runOut string
)

func init() {
	cmd := newRunCmd()
	cmd.Flags().StringVarP(&runOut, "out", "o", "", "Write the final page to a PNG file")
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <scenario>",
		Short: "Replay a scenario file against an atlas",
		Long: `The run command replays the operations of a TOML or YAML scenario
against a fresh atlas and reports where every tile ended up.

Example scenario (TOML):
  [atlas]
  min_size = 128

  [[op]]
  kind = "add"
  name = "grass"
  size = 64
  color = "#2e8b57"

  [[op]]
  kind = "del"
  name = "grass"

Example:
  atlasctl run scene.toml
  atlasctl run scene.yaml --out page.png
  atlasctl run scene.toml --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(args)
		},
	}
	return cmd
}

func runRun(args []string) error {
	path := args[0]

	printVerbose("Loading scenario: %s\n", path)
	sc, err := loadScenario(path)
	if err != nil {
		return err
	}

	s, err := openSession(sc.Atlas.options()...)
	if err != nil {
		return err
	}
	defer s.close()

	ids := make(map[string]tileatlas.TileID)
	var order []string
	counters := make(map[string]int)

	for i, op := range sc.Ops {
		if err := applyOp(s.atlas, op, ids, &order); err != nil {
			return fmt.Errorf("op %d (%s %s): %w", i+1, op.Kind, op.Name, err)
		}
		counters[op.Kind]++
		printVerbose("  %3d %-8s %s\n", i+1, op.Kind, op.Name)
	}

	if err := s.flush(); err != nil {
		return fmt.Errorf("failed to flush pages: %w", err)
	}

	r := newReport(s.atlas)
	r.Counters = counters
	for _, name := range order {
		if id, ok := ids[name]; ok {
			r.addTile(s.atlas, name, id)
		}
	}

	if runOut != "" && s.atlas.Texture() != nil {
		if err := s.writePNG(runOut); err != nil {
			return err
		}
	}
	return r.print()
}

func applyOp(a *tileatlas.Aggregator, op Op, ids map[string]tileatlas.TileID, order *[]string) error {
	switch op.Kind {
	case "add":
		if _, dup := ids[op.Name]; dup {
			return fmt.Errorf("tile %q already exists", op.Name)
		}
		c, err := parseColor(op.Color)
		if err != nil {
			return err
		}
		src := surface.NewSource(solidTile(op.Size, c))
		id, err := a.AddTile(src, tileatlas.Pt(0, 0), tileatlas.Pt(1, 1))
		if err != nil {
			return err
		}
		ids[op.Name] = id
		*order = append(*order, op.Name)
	case "del":
		id, ok := ids[op.Name]
		if !ok {
			return fmt.Errorf("tile %q: %w", op.Name, tileatlas.ErrTileNotFound)
		}
		if err := a.DelTile(id); err != nil {
			return err
		}
		delete(ids, op.Name)
		*order = slices.DeleteFunc(*order, func(n string) bool { return n == op.Name })
	case "repack":
		var rerr *tileatlas.RepackError
		if err := a.Repack(); err != nil && !errors.As(err, &rerr) {
			return err
		} else if rerr != nil {
			printVerbose("Repack left %d tile(s) unplaced\n", len(rerr.Failed))
		}
	case "lost":
		a.DeviceLost()
	case "restored":
		var rerr *tileatlas.RepackError
		if err := a.DeviceRestored(); err != nil && !errors.As(err, &rerr) {
			return err
		}
	}
	return nil
}
