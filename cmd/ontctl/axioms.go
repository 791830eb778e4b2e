package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wbrown/janus-owl/ontology/axioms"
	"github.com/wbrown/janus-owl/ontology/model"
)

var (
	axiomKinds []string
	axiomLimit int
)

var axiomsCmd = &cobra.Command{
	Use:   "axioms",
	Short: "List the axioms of the ontology",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		kinds, err := parseKinds(axiomKinds)
		if err != nil {
			return err
		}

		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		list, err := s.ont.AxiomList(kinds...)
		if err != nil {
			return err
		}
		if axiomLimit > 0 && len(list) > axiomLimit {
			list = list[:axiomLimit]
		}
		return writeAxiomTable(cmd.OutOrStdout(), s.ont, list)
	},
}

func init() {
	axiomsCmd.Flags().StringSliceVarP(&axiomKinds, "kind", "k", nil, "Only list these axiom kinds (repeatable)")
	axiomsCmd.Flags().IntVarP(&axiomLimit, "limit", "n", 0, "Maximum number of rows")
	rootCmd.AddCommand(axiomsCmd)
}

func parseKinds(names []string) ([]axioms.Kind, error) {
	var kinds []axioms.Kind
	for _, name := range names {
		k, err := axioms.ParseKind(name)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// writeAxiomTable renders one row per axiom with the number of statements
// it was read from and the triples it owns.
func writeAxiomTable(w io.Writer, ont *model.Ontology, list []*axioms.Axiom) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "_No axioms_")
		return err
	}

	out := &strings.Builder{}
	table := markdownTable(out, 4)
	table.Header([]string{"Kind", "Axiom", "Statements", "Triples"})
	for _, a := range list {
		anchors, err := ont.Anchors(a)
		if err != nil {
			return err
		}
		triples, err := ont.Triples(a)
		if err != nil {
			return err
		}
		table.Append([]string{
			a.Kind().String(),
			shorten(a.String(), 80),
			fmt.Sprintf("%d", len(anchors)),
			fmt.Sprintf("%d", len(triples)),
		})
	}
	table.Render()
	out.WriteString(fmt.Sprintf("\n_%d axioms_\n", len(list)))

	_, err := io.WriteString(w, out.String())
	return err
}

func shorten(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
