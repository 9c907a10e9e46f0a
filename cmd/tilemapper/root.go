package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"chosenoffset.com/tilemapper/internal/output"
	"chosenoffset.com/tilemapper/internal/pipeline"
	"chosenoffset.com/tilemapper/maploader"
)

type options struct {
	mapPath string
	outPath string
	strict  bool
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "tilemapper",
		Short: "Bake a tile id grid into a JSON map with metadata and UVs",
		Long: `tilemapper converts a grid of tile ids into a JSON document where every cell
carries its metadata, its tile id and its texture atlas UVs. The animated
marker tile gets one UV rectangle per frame instead.

Without --map the built-in map1 definition is used.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.mapPath, "map", "", "map definition file (.json, .yaml, .yml)")
	flags.BoolVar(&opts.strict, "strict", false, "fail on tile ids outside the tileset")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	cmd.Flags().StringVarP(&opts.outPath, "out", "o", output.DefaultPath, "output file")

	cmd.AddCommand(newUVCmd(opts))
	cmd.AddCommand(newCellCmd(opts))
	cmd.AddCommand(newBatchCmd(opts))

	return cmd
}

func runProcess(cmd *cobra.Command, opts *options) error {
	logger := newLogger(cmd.ErrOrStderr(), opts.verbose)

	def, err := loadDefinition(opts.mapPath)
	if err != nil {
		return err
	}

	runner, err := pipeline.New(&pipeline.Config{
		Writer: output.NewFileWriter(logger),
		Logger: logger,
	})
	if err != nil {
		return err
	}

	result, err := runner.Run(cmd.Context(), &pipeline.RunInput{
		Definition: def,
		OutputPath: opts.outPath,
		Strict:     opts.strict,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Processed map saved to %s\n", result.Path)
	return nil
}

func loadDefinition(path string) (*maploader.Definition, error) {
	if path == "" {
		return maploader.Reference(), nil
	}
	return maploader.Load(path)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
