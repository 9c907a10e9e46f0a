package atlas

import (
	"fmt"

	"chosenoffset.com/tilemapper/internal/errors"
)

// AnimatedGeometry describes the separate sheet holding the frames of the one
// animated tile. MarkerID is the tile identifier that expands into frames.
type AnimatedGeometry struct {
	MarkerID int `json:"marker_id" yaml:"marker_id"`
	Columns  int `json:"columns" yaml:"columns"` // Frames per row in the sheet
	Rows     int `json:"rows" yaml:"rows"`       // Rows in the sheet
	Frames   int `json:"frames" yaml:"frames"`   // Total number of animation frames
}

// Validate checks the sheet before any lookup is made
func (a AnimatedGeometry) Validate() error {
	return a.validation().Build()
}

func (a AnimatedGeometry) validation() *errors.ValidationBuilder {
	vb := errors.NewValidationBuilder().
		NonNegative("marker_id", a.MarkerID).
		Positive("columns", a.Columns).
		Positive("rows", a.Rows).
		Positive("frames", a.Frames)

	if a.Columns > 0 && a.Rows > 0 && a.Frames > a.Columns*a.Rows {
		vb.Fieldf("frames", "%d frames do not fit a %dx%d sheet", a.Frames, a.Columns, a.Rows)
	}

	return vb
}

// IsMarker reports whether id is the animated marker identifier
func (a AnimatedGeometry) IsMarker(id int) bool {
	return id == a.MarkerID
}

// FrameUV returns the rectangle for one frame.
// Unlike Geometry.UV the animated sheet is addressed without row inversion.
func (a AnimatedGeometry) FrameUV(frame int) (UV, error) {
	if frame < 0 || frame >= a.Frames {
		return UV{}, errors.OutOfRangef("frame %d outside [0, %d)", frame, a.Frames).
			WithMeta("frame", frame)
	}
	if a.Columns < 1 || a.Rows < 1 {
		return UV{}, errors.Configurationf("cannot address a %dx%d animation sheet", a.Columns, a.Rows)
	}

	col := frame % a.Columns
	row := frame / a.Columns

	return cell(col, row, a.Columns, a.Rows), nil
}

// FrameUVs returns the rectangles of every frame in playback order.
// A sheet that fails Validate has no frames.
func (a AnimatedGeometry) FrameUVs() []UV {
	if a.Validate() != nil {
		return nil
	}
	frames := make([]UV, a.Frames)
	for f := range frames {
		frames[f] = cell(f%a.Columns, f/a.Columns, a.Columns, a.Rows)
	}
	return frames
}

func (a AnimatedGeometry) String() string {
	return fmt.Sprintf("tile %d: %d frames on %dx%d sheet", a.MarkerID, a.Frames, a.Columns, a.Rows)
}

// ValidatePair validates both sheets together, prefixing field names
func ValidatePair(static Geometry, animated AnimatedGeometry) error {
	return errors.NewValidationBuilder().
		Merge("tileset.", static.validation()).
		Merge("animated.", animated.validation()).
		Build()
}
