package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/wbrown/janus-owl/ontology/graph"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every triple of the store as N-Quads",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		var w io.Writer = cmd.OutOrStdout()
		if exportOut != "" {
			f, err := os.Create(exportOut)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}
		n, err := graph.ExportNQuads(s.store, w)
		if err != nil {
			return fmt.Errorf("export failed after %d triples: %w", n, err)
		}
		slog.Debug("exported", "triples", n)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}
