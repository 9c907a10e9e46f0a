package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"chosenoffset.com/tilemapper/internal/errors"
	"chosenoffset.com/tilemapper/internal/output"
	"chosenoffset.com/tilemapper/internal/pipeline"
	"chosenoffset.com/tilemapper/maploader"
)

func newBatchCmd(opts *options) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "batch <map-dir>",
		Short: "Process every map definition in a directory",
		Long: `batch processes each .json, .yaml and .yml definition in a directory and
writes <name>.json for each of them into --out-dir. Maps are processed in
name order and the run stops at the first failure.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr(), opts.verbose)

			entries, err := maploader.Scan(args[0])
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				return errors.InvalidArgumentf("no map definitions found in %s", args[0])
			}

			same, err := sameDir(outDir, args[0])
			if err != nil {
				return err
			}
			if same {
				return errors.InvalidArgument("--out-dir must differ from the map directory")
			}

			seen := make(map[string]string, len(entries))
			for _, entry := range entries {
				if prev, ok := seen[entry.Name]; ok {
					return errors.InvalidArgumentf("%s and %s would both write %s.json", prev, entry.Path, entry.Name).
						WithMeta("name", entry.Name)
				}
				seen[entry.Name] = entry.Path
			}

			runner, err := pipeline.New(&pipeline.Config{
				Writer: output.NewFileWriter(logger),
				Logger: logger,
			})
			if err != nil {
				return err
			}

			for _, entry := range entries {
				def, err := maploader.Load(entry.Path)
				if err != nil {
					return err
				}

				result, err := runner.Run(cmd.Context(), &pipeline.RunInput{
					Definition: def,
					OutputPath: filepath.Join(outDir, entry.Name+".json"),
					Strict:     opts.strict,
				})
				if err != nil {
					return errors.Wrapf(err, "failed to process %s", entry.Path)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Processed map saved to %s\n", result.Path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out-dir", "", "output directory")
	_ = cmd.MarkFlagRequired("out-dir")

	return cmd
}

// sameDir reports whether a and b name the same directory, following
// relative paths and, when both exist, symlinks.
func sameDir(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, errors.Filesystem(err, a)
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, errors.Filesystem(err, b)
	}
	if absA == absB {
		return true, nil
	}

	infoA, errA := os.Stat(absA)
	infoB, errB := os.Stat(absB)
	if errA != nil || errB != nil {
		return false, nil
	}
	return os.SameFile(infoA, infoB), nil
}
