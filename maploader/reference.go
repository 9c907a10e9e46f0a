package maploader

import (
	"chosenoffset.com/tilemapper/atlas"
	"chosenoffset.com/tilemapper/internal/tiles"
)

// Reference returns map1 with the 4x4 tileset and the 21 frame water sheet.
// Each call builds a fresh definition.
func Reference() *Definition {
	const waterFrames = 21

	return &Definition{
		Name:   "map1",
		Width:  10,
		Height: 10,
		Tileset: atlas.Geometry{
			Columns:    4,
			Rows:       4,
			TileWidth:  32,
			TileHeight: 32,
		},
		Animated: atlas.AnimatedGeometry{
			MarkerID: 16,
			Columns:  waterFrames,
			Rows:     1,
			Frames:   waterFrames,
		},
		Metadata: tiles.Table{
			0:  {Passable: false, Type: "empty"},
			4:  {Passable: true, Type: "bridge"},
			5:  {Passable: true, Type: "bridge"},
			6:  {Passable: true, Type: "bridge"},
			8:  {Passable: true, Type: "floor"},
			9:  {Passable: true, Type: "floor"},
			10: {Passable: true, Type: "floor"},
			11: {Passable: true, Type: "floor"},
			12: {Passable: false, Type: "wall"},
			13: {Passable: false, Type: "wall"},
			14: {Passable: false, Type: "wall"},
			15: {Passable: false, Type: "wall"},
			16: {Passable: false, Type: "water", Animated: tiles.Bool(true), Frames: tiles.Int(waterFrames)},
		},
		Tiles: [][]int{
			{14, 13, 14, 15, 13, 16, 12, 13, 14, 14},
			{12, 10, 11, 11, 11, 16, 11, 11, 11, 12},
			{12, 10, 10, 8, 12, 16, 10, 8, 8, 12},
			{15, 10, 10, 8, 12, 16, 10, 8, 8, 13},
			{14, 10, 10, 8, 15, 16, 10, 8, 8, 15},
			{12, 10, 4, 5, 5, 5, 6, 8, 8, 12},
			{12, 10, 10, 10, 8, 16, 10, 8, 8, 12},
			{13, 10, 10, 10, 8, 16, 10, 8, 8, 13},
			{14, 9, 9, 9, 9, 16, 9, 9, 8, 14},
			{15, 13, 14, 12, 13, 16, 12, 13, 14, 12},
		},
	}
}
