package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"chosenoffset.com/tilemapper/internal/errors"
	"chosenoffset.com/tilemapper/internal/processor"
	"chosenoffset.com/tilemapper/maploader"
)

func newUVCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "uv <tile-id>...",
		Short: "Print the atlas UVs of tile ids",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, proc, err := setup(cmd, opts)
			if err != nil {
				return err
			}

			for _, arg := range args {
				id, err := strconv.Atoi(arg)
				if err != nil {
					return errors.InvalidArgumentf("tile id %q is not an integer", arg)
				}

				tile, err := proc.Enrich(id, def.Metadata)
				if err != nil {
					return err
				}
				printTile(cmd.OutOrStdout(), def, tile)
			}
			return nil
		},
	}
}

func newCellCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "cell <x> <y>",
		Short: "Print the processed record of one map cell",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, proc, err := setup(cmd, opts)
			if err != nil {
				return err
			}

			x, errX := strconv.Atoi(args[0])
			y, errY := strconv.Atoi(args[1])
			if errX != nil || errY != nil {
				return errors.InvalidArgumentf("coordinates %q %q are not integers", args[0], args[1])
			}

			id, err := def.TileAt(x, y)
			if err != nil {
				return err
			}

			tile, err := proc.Enrich(id, def.Metadata)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "cell (%d, %d): type=%s passable=%t\n", x, y, def.TileType(x, y), def.IsPassable(x, y))
			printTile(out, def, tile)
			return nil
		},
	}
}

func setup(cmd *cobra.Command, opts *options) (*maploader.Definition, *processor.Processor, error) {
	def, err := loadDefinition(opts.mapPath)
	if err != nil {
		return nil, nil, err
	}

	proc, err := processor.New(&processor.Config{
		Tileset:  def.Tileset,
		Animated: def.Animated,
		Strict:   opts.strict,
		Logger:   newLogger(cmd.ErrOrStderr(), opts.verbose),
	})
	if err != nil {
		return nil, nil, err
	}

	return def, proc, nil
}

func printTile(w io.Writer, def *maploader.Definition, tile processor.Tile) {
	if tile.UV != nil {
		x, y, width, height := def.Tileset.PixelRect(tile.TileID)
		fmt.Fprintf(w, "tile %d (%s): uv %s px (%d,%d %dx%d)\n",
			tile.TileID, tile.Type, tile.UV, x, y, width, height)
		return
	}

	fmt.Fprintf(w, "tile %d (%s): %d frames\n", tile.TileID, tile.Type, len(tile.UVFrames))
	for f, uv := range tile.UVFrames {
		fmt.Fprintf(w, "  frame %d: uv %s\n", f, uv)
	}
}
