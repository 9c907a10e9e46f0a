package atlas

import (
	"encoding/json"
	"strings"
	"testing"

	"chosenoffset.com/tilemapper/internal/errors"
)

func referenceGeometry() Geometry {
	return Geometry{Columns: 4, Rows: 4, TileWidth: 32, TileHeight: 32}
}

func referenceAnimated() AnimatedGeometry {
	return AnimatedGeometry{MarkerID: 16, Columns: 21, Rows: 1, Frames: 21}
}

func TestGeometryConfigParsing(t *testing.T) {
	jsonData := `{
		"columns": 4,
		"rows": 4,
		"tile_width": 32,
		"tile_height": 32
	}`

	var g Geometry
	if err := json.Unmarshal([]byte(jsonData), &g); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}

	if g != referenceGeometry() {
		t.Errorf("Expected %v, got %v", referenceGeometry(), g)
	}

	if err := g.Validate(); err != nil {
		t.Errorf("Expected valid geometry, got %v", err)
	}
}

func TestStaticUV(t *testing.T) {
	g := referenceGeometry()

	tests := []struct {
		id   int
		want UV
	}{
		{0, UV{0, 0.75, 0.25, 1}},
		{3, UV{0.75, 0.75, 1, 1}},
		{8, UV{0, 0.25, 0.25, 0.5}},
		{13, UV{0.25, 0, 0.5, 0.25}},
		{15, UV{0.75, 0, 1, 0.25}},
	}

	for _, tt := range tests {
		got, err := g.UV(tt.id)
		if err != nil {
			t.Fatalf("UV(%d) returned error: %v", tt.id, err)
		}
		if got != tt.want {
			t.Errorf("UV(%d) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestStaticUVBounds(t *testing.T) {
	for _, g := range []Geometry{referenceGeometry(), {Columns: 3, Rows: 5}, {Columns: 1, Rows: 1}} {
		for id := 0; id < g.Capacity(); id++ {
			uv, err := g.UV(id)
			if err != nil {
				t.Fatalf("%v: UV(%d) returned error: %v", g, id, err)
			}
			if !(0 <= uv.U0() && uv.U0() < uv.U1() && uv.U1() <= 1) {
				t.Errorf("%v: UV(%d) u interval out of bounds: %v", g, id, uv)
			}
			if !(0 <= uv.V0() && uv.V0() < uv.V1() && uv.V1() <= 1) {
				t.Errorf("%v: UV(%d) v interval out of bounds: %v", g, id, uv)
			}
		}
	}
}

func TestRowInversion(t *testing.T) {
	g := Geometry{Columns: 5, Rows: 3}

	top, _ := g.UV(0)
	if top.V1() != 1 {
		t.Errorf("Expected first identifier row to reach v=1, got %v", top)
	}

	bottom, _ := g.UV(2 * g.Columns)
	if bottom.V0() != 0 || bottom.V1() != 1.0/3 {
		t.Errorf("Expected last identifier row to span [0, 1/3], got %v", bottom)
	}
}

func TestStaticUVPermissiveOutOfRange(t *testing.T) {
	g := referenceGeometry()

	uv, err := g.UV(16)
	if err != nil {
		t.Fatalf("Expected permissive lookup, got %v", err)
	}
	if uv.V0() >= 0 {
		t.Errorf("Expected negative v0 for identifier past the last row, got %v", uv)
	}

	if _, err := g.UVStrict(16); !errors.IsCode(err, errors.CodeOutOfRange) {
		t.Errorf("Expected OUT_OF_RANGE from strict lookup, got %v", err)
	}

	if _, err := g.UVStrict(15); err != nil {
		t.Errorf("Expected last cell to pass strict lookup, got %v", err)
	}
}

func TestStaticUVNegative(t *testing.T) {
	g := referenceGeometry()

	if _, err := g.UV(-1); !errors.IsCode(err, errors.CodeInvalidArgument) {
		t.Errorf("Expected INVALID_ARGUMENT, got %v", err)
	}
	if _, err := g.UVStrict(-1); !errors.IsCode(err, errors.CodeInvalidArgument) {
		t.Errorf("Expected INVALID_ARGUMENT from strict lookup, got %v", err)
	}
}

func TestFrameUV(t *testing.T) {
	a := referenceAnimated()

	first, err := a.FrameUV(0)
	if err != nil {
		t.Fatalf("FrameUV(0) returned error: %v", err)
	}
	if want := (UV{0, 0, 1.0 / 21, 1}); first != want {
		t.Errorf("FrameUV(0) = %v, want %v", first, want)
	}

	last, _ := a.FrameUV(a.Columns - 1)
	if last.U0() != 20.0/21 || last.V0() != 0 {
		t.Errorf("FrameUV(%d) = %v, want u0=20/21 v0=0", a.Columns-1, last)
	}

	if _, err := a.FrameUV(a.Frames); !errors.IsCode(err, errors.CodeOutOfRange) {
		t.Errorf("Expected OUT_OF_RANGE for frame %d, got %v", a.Frames, err)
	}
}

func TestFrameUVNoInversion(t *testing.T) {
	a := AnimatedGeometry{MarkerID: 7, Columns: 2, Rows: 2, Frames: 3}

	uv, err := a.FrameUV(2)
	if err != nil {
		t.Fatalf("FrameUV(2) returned error: %v", err)
	}
	if want := (UV{0, 0.5, 0.5, 1}); uv != want {
		t.Errorf("FrameUV(2) = %v, want %v", uv, want)
	}
}

func TestFrameUVs(t *testing.T) {
	a := referenceAnimated()

	frames := a.FrameUVs()
	if len(frames) != a.Frames {
		t.Fatalf("Expected %d frames, got %d", a.Frames, len(frames))
	}

	for f, uv := range frames {
		want, _ := a.FrameUV(f)
		if uv != want {
			t.Errorf("frame %d = %v, want %v", f, uv, want)
		}
	}
}

func TestValidation(t *testing.T) {
	if err := (Geometry{Columns: 0, Rows: 4}).Validate(); !errors.IsCode(err, errors.CodeConfiguration) {
		t.Errorf("Expected CONFIGURATION for zero columns, got %v", err)
	}

	if err := (AnimatedGeometry{Columns: 4, Rows: 1, Frames: 5}).Validate(); !errors.IsCode(err, errors.CodeConfiguration) {
		t.Errorf("Expected CONFIGURATION for too many frames, got %v", err)
	}

	if err := referenceAnimated().Validate(); err != nil {
		t.Errorf("Expected valid animated sheet, got %v", err)
	}

	err := ValidatePair(Geometry{Columns: 4}, AnimatedGeometry{Columns: 1, Rows: 1})
	if err == nil {
		t.Fatal("Expected error for incomplete pair")
	}
	for _, field := range []string{"tileset.rows", "animated.frames"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("Expected %q in %q", field, err.Error())
		}
	}
}

func TestUVString(t *testing.T) {
	if got := (UV{0, 0.25, 0.25, 0.5}).String(); got != "[0,0.25,0.25,0.5]" {
		t.Errorf("Unexpected string %q", got)
	}
}

func TestPixelRect(t *testing.T) {
	x, y, w, h := referenceGeometry().PixelRect(9)
	if x != 32 || y != 64 || w != 32 || h != 32 {
		t.Errorf("PixelRect(9) = (%d, %d, %d, %d), want (32, 64, 32, 32)", x, y, w, h)
	}
}

func TestZeroGeometryDoesNotPanic(t *testing.T) {
	var g Geometry

	if _, err := g.UV(5); !errors.IsCode(err, errors.CodeConfiguration) {
		t.Errorf("UV on zero geometry: expected CONFIGURATION, got %v", err)
	}
	if _, err := g.UVStrict(5); !errors.IsCode(err, errors.CodeConfiguration) {
		t.Errorf("UVStrict on zero geometry: expected CONFIGURATION, got %v", err)
	}
	if _, err := g.UV(-1); !errors.IsCode(err, errors.CodeInvalidArgument) {
		t.Errorf("UV(-1) on zero geometry: expected INVALID_ARGUMENT, got %v", err)
	}
	if x, y, w, h := g.PixelRect(5); x != 0 || y != 0 || w != 0 || h != 0 {
		t.Errorf("PixelRect on zero geometry = (%d, %d, %d, %d), want zeros", x, y, w, h)
	}

	sheets := []AnimatedGeometry{
		{},
		{Frames: 3},
		{Columns: 3, Frames: 3},
		{Columns: 3, Rows: 1, Frames: -1},
	}
	for _, a := range sheets {
		if frames := a.FrameUVs(); frames != nil {
			t.Errorf("%+v: expected no frames, got %v", a, frames)
		}
		if _, err := a.FrameUV(0); err == nil {
			t.Errorf("%+v: expected FrameUV(0) to fail", a)
		}
	}
}
