// Package atlas describes texture atlases as grids of equally sized cells and
// maps tile identifiers and animation frames onto normalized UV rectangles.
package atlas

import (
	"encoding/json"
	"fmt"

	"chosenoffset.com/tilemapper/internal/errors"
)

// UV is a normalized atlas rectangle: u0, v0, u1, v1
type UV [4]float64

// U0 returns the left edge
func (uv UV) U0() float64 { return uv[0] }

// V0 returns the bottom edge
func (uv UV) V0() float64 { return uv[1] }

// U1 returns the right edge
func (uv UV) U1() float64 { return uv[2] }

// V1 returns the top edge
func (uv UV) V1() float64 { return uv[3] }

// String renders the rectangle the way it appears in processed maps
func (uv UV) String() string {
	data, _ := json.Marshal(uv)
	return string(data)
}

// Geometry describes the static tileset atlas.
// Identifiers are laid out row-major from the top-left cell.
type Geometry struct {
	Columns    int `json:"columns" yaml:"columns"`         // Number of columns in the tileset
	Rows       int `json:"rows" yaml:"rows"`               // Number of rows in the tileset
	TileWidth  int `json:"tile_width" yaml:"tile_width"`   // Width of each tile in pixels
	TileHeight int `json:"tile_height" yaml:"tile_height"` // Height of each tile in pixels
}

// Validate checks the geometry before any lookup is made
func (g Geometry) Validate() error {
	return g.validation().Build()
}

func (g Geometry) validation() *errors.ValidationBuilder {
	vb := errors.NewValidationBuilder().
		Positive("columns", g.Columns).
		Positive("rows", g.Rows)

	// Pixel sizes are optional, but a value that is set must be usable
	vb.NonNegative("tile_width", g.TileWidth)
	vb.NonNegative("tile_height", g.TileHeight)

	return vb
}

// Capacity returns the number of cells in the atlas
func (g Geometry) Capacity() int {
	return g.Columns * g.Rows
}

// Contains reports whether id addresses a cell inside the atlas
func (g Geometry) Contains(id int) bool {
	return id >= 0 && id < g.Capacity()
}

// UV returns the rectangle for a tile identifier.
// Rows are inverted so that identifier row 0 lands at the top of a
// bottom-left-origin texture space. Identifiers past the last row are not
// rejected; their v coordinates fall outside [0, 1].
func (g Geometry) UV(id int) (UV, error) {
	if id < 0 {
		return UV{}, errors.InvalidArgumentf("tile id must not be negative, got %d", id).
			WithMeta("tile_id", id)
	}
	if !g.usable() {
		return UV{}, errors.Configurationf("cannot address a %dx%d tileset", g.Columns, g.Rows)
	}

	col := id % g.Columns
	row := id / g.Columns
	invRow := (g.Rows - 1) - row

	return cell(col, invRow, g.Columns, g.Rows), nil
}

// UVStrict is UV but fails for identifiers outside the atlas
func (g Geometry) UVStrict(id int) (UV, error) {
	if id >= 0 && g.usable() && !g.Contains(id) {
		return UV{}, errors.OutOfRangef("tile id %d outside %dx%d tileset", id, g.Columns, g.Rows).
			WithMeta("tile_id", id)
	}
	return g.UV(id)
}

// PixelRect returns the pixel offset of a tile in the atlas image, top-left origin.
// An atlas without columns has no cells and yields an empty rectangle.
func (g Geometry) PixelRect(id int) (x, y, w, h int) {
	if g.Columns < 1 {
		return 0, 0, 0, 0
	}
	col := id % g.Columns
	row := id / g.Columns
	return col * g.TileWidth, row * g.TileHeight, g.TileWidth, g.TileHeight
}

func (g Geometry) usable() bool {
	return g.Columns >= 1 && g.Rows >= 1
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d tileset (%dx%d px)", g.Columns, g.Rows, g.TileWidth, g.TileHeight)
}

func cell(col, row, columns, rows int) UV {
	return UV{
		float64(col) / float64(columns),
		float64(row) / float64(rows),
		float64(col+1) / float64(columns),
		float64(row+1) / float64(rows),
	}
}
