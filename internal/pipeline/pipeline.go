// Package pipeline runs a map definition through processing and writes the result
package pipeline

import (
	"context"
	"log/slog"

	"chosenoffset.com/tilemapper/internal/errors"
	"chosenoffset.com/tilemapper/internal/output"
	"chosenoffset.com/tilemapper/internal/processor"
	"chosenoffset.com/tilemapper/maploader"
)

// Config holds the dependencies for the pipeline
type Config struct {
	Writer output.Writer
	Logger *slog.Logger
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Writer == nil {
		vb.Field("Writer", "is required")
	}

	return vb.Build()
}

// Runner processes map definitions
type Runner struct {
	writer output.Writer
	logger *slog.Logger
}

// New creates a runner from cfg
func New(cfg *Config) (*Runner, error) {
	if cfg == nil {
		return nil, errors.Configuration("pipeline config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{
		writer: cfg.Writer,
		logger: logger,
	}, nil
}

// RunInput defines one processing run
type RunInput struct {
	Definition *maploader.Definition
	OutputPath string
	Strict     bool
}

// RunOutput describes a completed run
type RunOutput struct {
	Path    string
	Rows    int
	Columns int
	Bytes   int
}

// Run validates the definition, processes the full grid and writes it.
// Nothing is written unless processing succeeded for every cell.
func (r *Runner) Run(ctx context.Context, input *RunInput) (*RunOutput, error) {
	if input == nil || input.Definition == nil {
		return nil, errors.InvalidArgument("map definition is required")
	}

	def := input.Definition
	path := input.OutputPath
	if path == "" {
		path = output.DefaultPath
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}

	proc, err := processor.New(&processor.Config{
		Tileset:  def.Tileset,
		Animated: def.Animated,
		Strict:   input.Strict,
		Logger:   r.logger,
	})
	if err != nil {
		return nil, err
	}

	width, height := def.Dimensions()
	r.logger.Info("Processing map",
		"map", def.Name,
		"width", width,
		"height", height,
		"tileset", def.Tileset.String(),
		"animated", def.Animated.String(),
		"strict", input.Strict,
	)

	grid, err := proc.Process(def.Tiles, def.Metadata)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to process map %s", def.Name)
	}

	written, err := r.writer.Write(ctx, &output.WriteInput{
		Path: path,
		Grid: grid,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to write map %s", def.Name)
	}

	r.logger.Info("Processed map saved",
		"map", def.Name,
		"path", written.Path,
		"bytes", written.Bytes,
	)

	return &RunOutput{
		Path:    written.Path,
		Rows:    height,
		Columns: width,
		Bytes:   written.Bytes,
	}, nil
}
