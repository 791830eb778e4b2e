package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/wbrown/janus-owl/ontology/graph"
)

var loadCmd = &cobra.Command{
	Use:   "load <pattern>...",
	Short: "Import N-Quads files into the store",
	Long: `Import every file matching the given patterns. Patterns support ** for
recursive matches, e.g. "ontologies/**/*.nq".`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := expandPatterns(args)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("no files match %v", args)
		}

		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		total := 0
		for _, path := range files {
			n, err := importFile(s.store, path)
			if err != nil {
				return err
			}
			slog.Debug("imported", "file", path, "triples", n)
			total += n
		}
		s.ont.ClearCache()

		count, err := s.ont.AxiomCount()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d triples from %d files; %d axioms\n", total, len(files), count)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
}

// expandPatterns resolves glob patterns to a sorted, duplicate-free list of
// regular files.
func expandPatterns(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, p := range patterns {
		matches, err := doublestar.FilepathGlob(p)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", p, err)
		}
		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil || info.IsDir() || seen[m] {
				continue
			}
			seen[m] = true
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files, nil
}

func importFile(g graph.Adder, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return importReader(g, f, path)
}

func importReader(g graph.Adder, r io.Reader, name string) (int, error) {
	n, err := graph.ImportNQuads(g, r)
	if err != nil {
		return n, fmt.Errorf("%s: %w", name, err)
	}
	return n, nil
}
