package pipeline_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"chosenoffset.com/tilemapper/atlas"
	"chosenoffset.com/tilemapper/internal/errors"
	"chosenoffset.com/tilemapper/internal/output"
	outputmock "chosenoffset.com/tilemapper/internal/output/mock"
	"chosenoffset.com/tilemapper/internal/pipeline"
	"chosenoffset.com/tilemapper/maploader"
)

type PipelineTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	mockWriter *outputmock.MockWriter
	runner     *pipeline.Runner
	ctx        context.Context
}

func TestPipelineSuite(t *testing.T) {
	suite.Run(t, new(PipelineTestSuite))
}

func (s *PipelineTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockWriter = outputmock.NewMockWriter(s.ctrl)
	s.ctx = context.Background()

	var err error
	s.runner, err = pipeline.New(&pipeline.Config{
		Writer: s.mockWriter,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	s.Require().NoError(err)
}

func (s *PipelineTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *PipelineTestSuite) TestNewRequiresWriter() {
	_, err := pipeline.New(&pipeline.Config{})
	s.True(errors.IsCode(err, errors.CodeConfiguration))

	_, err = pipeline.New(nil)
	s.True(errors.IsCode(err, errors.CodeConfiguration))
}

func (s *PipelineTestSuite) TestRunReference() {
	var written *output.WriteInput
	s.mockWriter.EXPECT().
		Write(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *output.WriteInput) (*output.WriteOutput, error) {
			written = input
			return &output.WriteOutput{Path: input.Path, Bytes: 42}, nil
		})

	out, err := s.runner.Run(s.ctx, &pipeline.RunInput{Definition: maploader.Reference()})
	s.Require().NoError(err)

	s.Equal(output.DefaultPath, out.Path)
	s.Equal(10, out.Rows)
	s.Equal(10, out.Columns)
	s.Equal(42, out.Bytes)

	s.Require().NotNil(written)
	s.Require().Len(written.Grid, 10)

	water := written.Grid[0][5]
	s.Equal(16, water.TileID)
	s.Nil(water.UV)
	s.Require().Len(water.UVFrames, 21)
	s.Equal(atlas.UV{0, 0, 1.0 / 21, 1}, water.UVFrames[0])

	floor := written.Grid[2][3]
	s.Equal(8, floor.TileID)
	s.Equal("floor", floor.Type)
	s.Equal(atlas.UV{0, 0.25, 0.25, 0.5}, *floor.UV)
}

func (s *PipelineTestSuite) TestRunCustomPath() {
	s.mockWriter.EXPECT().
		Write(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *output.WriteInput) (*output.WriteOutput, error) {
			s.Equal("out/map1.json", input.Path)
			return &output.WriteOutput{Path: input.Path}, nil
		})

	out, err := s.runner.Run(s.ctx, &pipeline.RunInput{
		Definition: maploader.Reference(),
		OutputPath: "out/map1.json",
	})
	s.Require().NoError(err)
	s.Equal("out/map1.json", out.Path)
}

func (s *PipelineTestSuite) TestRunConfigurationErrorWritesNothing() {
	def := maploader.Reference()
	def.Tileset.Columns = 0

	// No EXPECT: any call to the writer fails the test
	out, err := s.runner.Run(s.ctx, &pipeline.RunInput{Definition: def})
	s.Nil(out)
	s.True(errors.IsCode(err, errors.CodeConfiguration))
}

func (s *PipelineTestSuite) TestRunStrictOutOfRangeWritesNothing() {
	def := maploader.Reference()
	def.Tiles[9][9] = 40

	out, err := s.runner.Run(s.ctx, &pipeline.RunInput{Definition: def, Strict: true})
	s.Nil(out)
	s.True(errors.IsCode(err, errors.CodeOutOfRange))
}

func (s *PipelineTestSuite) TestRunPermissiveOutOfRange() {
	def := maploader.Reference()
	def.Tiles[9][9] = 40

	s.mockWriter.EXPECT().
		Write(s.ctx, gomock.Any()).
		Return(&output.WriteOutput{Path: output.DefaultPath}, nil)

	_, err := s.runner.Run(s.ctx, &pipeline.RunInput{Definition: def})
	s.NoError(err)
}

func (s *PipelineTestSuite) TestRunWriterError() {
	s.mockWriter.EXPECT().
		Write(s.ctx, gomock.Any()).
		Return(nil, errors.Filesystem(os.ErrPermission, output.DefaultPath))

	out, err := s.runner.Run(s.ctx, &pipeline.RunInput{Definition: maploader.Reference()})
	s.Nil(out)
	s.True(errors.IsCode(err, errors.CodeFilesystem))
	s.ErrorIs(err, os.ErrPermission)
}

func (s *PipelineTestSuite) TestRunRequiresDefinition() {
	_, err := s.runner.Run(s.ctx, &pipeline.RunInput{})
	s.True(errors.IsCode(err, errors.CodeInvalidArgument))
}

func TestRunWritesReferenceFile(t *testing.T) {
	runner, err := pipeline.New(&pipeline.Config{
		Writer: output.NewFileWriter(nil),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	path := filepath.Join(t.TempDir(), output.DefaultPath)
	input := &pipeline.RunInput{Definition: maploader.Reference(), OutputPath: path}

	if _, err := runner.Run(context.Background(), input); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}

	var decoded [][]map[string]interface{}
	if err := json.Unmarshal(first, &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if len(decoded) != 10 || len(decoded[0]) != 10 {
		t.Fatalf("Expected 10x10 output, got %dx%d", len(decoded), len(decoded[0]))
	}
	if frames, ok := decoded[5][5]["uv_frames"]; ok {
		t.Errorf("Expected bridge tile without frames, got %v", frames)
	}

	input.Definition = maploader.Reference()
	if _, err := runner.Run(context.Background(), input); err != nil {
		t.Fatalf("Second run returned error: %v", err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if string(first) != string(second) {
		t.Error("Expected identical output across runs")
	}
}
