package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/promotora-credito/app-cadastro/internal/formengine"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file...]",
	Short: "Check section definition files",
	Long:  `Parses each file and resolves every section, reporting unsupported field types and unknown sections.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	files, err := expandFiles(args)
	if err != nil {
		return err
	}

	failed := 0
	out := cmd.OutOrStdout()
	for _, path := range files {
		file, err := loadSectionsFile(path)
		if err != nil {
			fmt.Fprintf(out, "FAIL %s: %v\n", path, err)
			failed++
			continue
		}
		fields := 0
		for _, s := range file.Sections {
			fields += len(s.Fields)
		}
		fmt.Fprintf(out, "ok   %s (form %s, %d sections, %d fields)\n", path, file.FormKey, len(file.Sections), fields)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files are invalid", failed, len(files))
	}
	return nil
}

// expandFiles resolves glob patterns the shell left untouched
func expandFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			files = append(files, pattern)
			continue
		}
		files = append(files, matches...)
	}
	return files, nil
}

func loadSectionsFile(path string) (*formengine.SectionsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return formengine.ParseSectionsFile(data)
}
