// Package output serializes processed grids and writes them to disk.
package output

//go:generate mockgen -destination=mock/mock_writer.go -package=outputmock chosenoffset.com/tilemapper/internal/output Writer

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"chosenoffset.com/tilemapper/internal/errors"
	"chosenoffset.com/tilemapper/internal/processor"
)

// DefaultPath is where processed maps are written unless told otherwise
const DefaultPath = "processed_map_inverted.json"

const indent = "    "

// Writer persists a processed grid
type Writer interface {
	// Write serializes the grid and stores it at the input path
	Write(ctx context.Context, input *WriteInput) (*WriteOutput, error)
}

// WriteInput defines the request for writing a processed grid
type WriteInput struct {
	Path string
	Grid processor.Grid
}

// WriteOutput describes a completed write
type WriteOutput struct {
	Path  string
	Bytes int
}

// Encode renders grid as indented JSON followed by a newline.
// Floats use the shortest representation that round-trips to the same float64.
func Encode(grid processor.Grid) ([]byte, error) {
	if grid == nil {
		grid = processor.Grid{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", indent)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(grid); err != nil {
		return nil, errors.Wrap(err, "failed to encode processed grid")
	}
	return buf.Bytes(), nil
}

// FileWriter writes grids to the local filesystem.
// The document is staged in a temporary file beside the target and renamed
// into place, so the target never holds a partial document.
type FileWriter struct {
	logger *slog.Logger
}

// NewFileWriter returns a FileWriter that logs through logger, or slog.Default if nil
func NewFileWriter(logger *slog.Logger) *FileWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileWriter{logger: logger}
}

// Write implements Writer
func (w *FileWriter) Write(ctx context.Context, input *WriteInput) (*WriteOutput, error) {
	if input == nil || input.Path == "" {
		return nil, errors.InvalidArgument("output path is required")
	}

	data, err := Encode(input.Grid)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Canceledf("write to %s canceled: %v", input.Path, err)
	}

	if err := writeAtomic(input.Path, data); err != nil {
		return nil, err
	}

	w.logger.Debug("Wrote processed map",
		"path", input.Path,
		"bytes", len(data),
	)

	return &WriteOutput{Path: input.Path, Bytes: len(data)}, nil
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Filesystem(err, path)
	}

	// Closing twice is harmless; the explicit Close below reports errors.
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return errors.Filesystem(err, path)
	}
	if err := tmp.Sync(); err != nil {
		return errors.Filesystem(err, path)
	}
	if err := tmp.Close(); err != nil {
		return errors.Filesystem(err, path)
	}
	if err := os.Chmod(tmp.Name(), targetMode(path)); err != nil {
		return errors.Filesystem(err, path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Filesystem(err, path)
	}

	committed = true
	return nil
}

// targetMode keeps the permissions of a file being replaced
func targetMode(path string) os.FileMode {
	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
		return info.Mode().Perm()
	}
	return 0o644
}
