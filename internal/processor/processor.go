// Package processor enriches a raw grid of tile identifiers with metadata and
// atlas UV coordinates.
package processor

import (
	"log/slog"

	"chosenoffset.com/tilemapper/atlas"
	"chosenoffset.com/tilemapper/internal/errors"
	"chosenoffset.com/tilemapper/internal/tiles"
)

// Tile is one enriched cell of a processed grid.
// Exactly one of UV and UVFrames is set.
type Tile struct {
	tiles.Metadata
	TileID   int        `json:"tile_id"`
	UV       *atlas.UV  `json:"uv,omitempty"`
	UVFrames []atlas.UV `json:"uv_frames,omitempty"`
}

// Grid is a processed map, row-major like its input
type Grid [][]Tile

// Config holds the immutable settings of a processor
type Config struct {
	Tileset  atlas.Geometry
	Animated atlas.AnimatedGeometry

	// Strict rejects identifiers outside the tileset instead of emitting
	// out-of-gamut UVs for them.
	Strict bool

	Logger *slog.Logger
}

// Validate ensures the geometry is usable before any cell is processed
func (c *Config) Validate() error {
	if c == nil {
		return errors.Configuration("processor config is required")
	}
	return atlas.ValidatePair(c.Tileset, c.Animated)
}

// Processor turns raw identifier grids into enriched grids
type Processor struct {
	tileset  atlas.Geometry
	animated atlas.AnimatedGeometry
	strict   bool
	logger   *slog.Logger

	frames []atlas.UV
}

// New validates cfg and returns a processor bound to it
func New(cfg *Config) (*Processor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Processor{
		tileset:  cfg.Tileset,
		animated: cfg.Animated,
		strict:   cfg.Strict,
		logger:   logger,
		frames:   cfg.Animated.FrameUVs(),
	}, nil
}

// Enrich builds the record for one identifier.
// Identifiers missing from table get the default metadata. Only the marker
// identifier expands into frames; any other identifier gets a static UV even
// when its metadata says it is animated.
func (p *Processor) Enrich(id int, table tiles.Table) (Tile, error) {
	meta, _ := table.Lookup(id)

	tile := Tile{
		Metadata: meta,
		TileID:   id,
	}

	if p.animated.IsMarker(id) {
		tile.UVFrames = make([]atlas.UV, len(p.frames))
		copy(tile.UVFrames, p.frames)
		return tile, nil
	}

	lookup := p.tileset.UV
	if p.strict {
		lookup = p.tileset.UVStrict
	}

	uv, err := lookup(id)
	if err != nil {
		return Tile{}, err
	}
	tile.UV = &uv

	return tile, nil
}

// Process enriches every cell of grid, preserving its shape.
// The grid must be rectangular. Nothing is returned unless every cell succeeds.
func (p *Processor) Process(grid [][]int, table tiles.Table) (Grid, error) {
	if err := checkRectangular(grid); err != nil {
		return nil, err
	}

	outside := make(map[int]int)
	unknown := 0

	out := make(Grid, len(grid))
	for y, row := range grid {
		processed := make([]Tile, len(row))
		for x, id := range row {
			tile, err := p.Enrich(id, table)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to enrich tile at row %d, column %d", y, x)
			}
			if _, ok := table[id]; !ok {
				unknown++
			}
			if !p.animated.IsMarker(id) && !p.tileset.Contains(id) {
				outside[id]++
			}
			processed[x] = tile
		}
		out[y] = processed
	}

	for id, count := range outside {
		p.logger.Warn("Tile id outside tileset, UVs are out of gamut",
			"tile_id", id,
			"cells", count,
			"tileset", p.tileset.String(),
		)
	}

	p.logger.Debug("Processed grid",
		"rows", len(out),
		"columns", columns(grid),
		"unknown_cells", unknown,
	)

	return out, nil
}

func checkRectangular(grid [][]int) error {
	if len(grid) == 0 {
		return nil
	}
	width := len(grid[0])
	for y, row := range grid {
		if len(row) != width {
			return errors.InvalidArgumentf("grid width mismatch at row %d: expected %d, got %d", y, width, len(row)).
				WithMeta("row", y)
		}
	}
	return nil
}

func columns(grid [][]int) int {
	if len(grid) == 0 {
		return 0
	}
	return len(grid[0])
}
