package main

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jcm/syntax"
	"github.com/dhamidi/jcm/writer"
)

func newVerifyCmd(a *app) *cobra.Command {
	var sources []string

	cmd := &cobra.Command{
		Use:   "verify [blueprint...]",
		Short: "Check that generated Java sources parse",
		Long: `Generate the blueprints in memory and check every Java source with the
tree-sitter Java grammar. With --sources, check existing files or
directories instead.

Examples:
  jcm verify model.yaml
  jcm verify --sources src/main/java`,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := verifyInputs(cmd, a, args, sources)
			if err != nil {
				return err
			}
			return runVerify(cmd.OutOrStdout(), files)
		},
	}

	cmd.Flags().StringSliceVar(&sources, "sources", nil, "check these .java files or directories instead of generating")

	return cmd
}

func verifyInputs(cmd *cobra.Command, a *app, args, sources []string) (map[string][]byte, error) {
	if len(sources) > 0 {
		return readSources(sources)
	}
	paths, err := a.blueprintPaths(args)
	if err != nil {
		return nil, err
	}
	m, closeLoader, err := a.model(cmd.Context(), paths)
	if err != nil {
		return nil, err
	}
	defer closeLoader()
	mem := writer.NewMemoryCodeWriter()
	if err := m.Build(mem, nil); err != nil {
		return nil, err
	}
	files := map[string][]byte{}
	for _, p := range mem.Paths() {
		files[p] = mem.Get(p)
	}
	return files, nil
}

func readSources(roots []string) (map[string][]byte, error) {
	files := map[string][]byte{}
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(path, ".java") {
				return nil
			}
			src, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			files[path] = src
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

func runVerify(out io.Writer, files map[string][]byte) error {
	chk, err := syntax.NewChecker()
	if err != nil {
		return err
	}
	defer chk.Close()
	problems := chk.CheckAll(files)
	for _, p := range problems {
		fmt.Fprintln(out, p)
	}
	if len(problems) > 0 {
		return fmt.Errorf("%d syntax problems", len(problems))
	}
	log.Infof("%d files parse cleanly", len(files))
	return nil
}
