package maploader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"chosenoffset.com/tilemapper/atlas"
	"chosenoffset.com/tilemapper/internal/errors"
	"chosenoffset.com/tilemapper/internal/tiles"
)

// Definition is a hand-authored map together with the atlases it is drawn from
type Definition struct {
	Name     string                 `json:"name" yaml:"name"`
	Width    int                    `json:"width,omitempty" yaml:"width,omitempty"`   // Optional, checked against tiles when set
	Height   int                    `json:"height,omitempty" yaml:"height,omitempty"` // Optional, checked against tiles when set
	Tileset  atlas.Geometry         `json:"tileset" yaml:"tileset"`
	Animated atlas.AnimatedGeometry `json:"animated" yaml:"animated"`
	Metadata tiles.Table            `json:"metadata" yaml:"metadata"`
	Tiles    [][]int                `json:"tiles" yaml:"tiles"` // 2D array of tile ids [y][x]
}

// Load reads a map definition from a .json, .yaml or .yml file
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Filesystem(err, path)
	}

	def, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load map file %s", path)
	}

	return def, nil
}

// Parse decodes a definition. ext selects the format and defaults to JSON.
func Parse(data []byte, ext string) (*Definition, error) {
	var def Definition

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &def); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeConfiguration, "failed to parse YAML map definition")
		}
	case ".json", "":
		if err := json.Unmarshal(data, &def); err != nil {
			return nil, errors.WrapWithCode(err, errors.CodeConfiguration, "failed to parse JSON map definition")
		}
	default:
		return nil, errors.Configurationf("unsupported map definition format %q", ext)
	}

	if err := def.Validate(); err != nil {
		return nil, err
	}

	return &def, nil
}

// Validate checks atlas geometry and the shape of the tile grid
func (d *Definition) Validate() error {
	vb := errors.NewValidationBuilder()

	if err := atlas.ValidatePair(d.Tileset, d.Animated); err != nil {
		return err
	}

	if len(d.Tiles) == 0 {
		vb.Field("tiles", "at least one row is required")
	}

	if d.Height != 0 && len(d.Tiles) != d.Height {
		vb.Fieldf("tiles", "height mismatch: expected %d, got %d", d.Height, len(d.Tiles))
	}

	width := d.Width
	if width == 0 && len(d.Tiles) > 0 {
		width = len(d.Tiles[0])
	}
	for y, row := range d.Tiles {
		if len(row) != width {
			vb.Fieldf("tiles", "width mismatch at row %d: expected %d, got %d", y, width, len(row))
		}
		for x, id := range row {
			if id < 0 {
				vb.Fieldf("tiles", "negative tile id %d at (%d, %d)", id, x, y)
			}
		}
	}

	for id := range d.Metadata {
		if id < 0 {
			vb.Fieldf("metadata", "negative tile id %d", id)
		}
	}

	return vb.Build()
}

// Dimensions returns the grid width and height in tiles
func (d *Definition) Dimensions() (width, height int) {
	if len(d.Tiles) == 0 {
		return 0, 0
	}
	return len(d.Tiles[0]), len(d.Tiles)
}

// TileAt returns the tile id at the given grid coordinates
func (d *Definition) TileAt(x, y int) (int, error) {
	width, height := d.Dimensions()
	if x < 0 || x >= width || y < 0 || y >= height {
		return 0, errors.OutOfRangef("coordinates out of bounds: (%d, %d)", x, y)
	}
	return d.Tiles[y][x], nil
}

// IsPassable returns whether the tile at the given coordinates can be crossed
func (d *Definition) IsPassable(x, y int) bool {
	id, err := d.TileAt(x, y)
	if err != nil {
		return false
	}
	meta, _ := d.Metadata.Lookup(id)
	return meta.Passable
}

// TileType returns the type of tile at the given coordinates
func (d *Definition) TileType(x, y int) string {
	id, err := d.TileAt(x, y)
	if err != nil {
		return tiles.UnknownType
	}
	meta, _ := d.Metadata.Lookup(id)
	return meta.Type
}

func (d *Definition) String() string {
	width, height := d.Dimensions()
	return fmt.Sprintf("%s (%dx%d)", d.Name, width, height)
}
