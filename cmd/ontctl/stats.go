package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/wbrown/janus-owl/ontology/model"
)

var showMetrics bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise the ontology: axiom counts by kind, triples, skipped statements",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		st, err := s.ont.Stats()
		if err != nil {
			return err
		}
		if err := writeStats(cmd.OutOrStdout(), st); err != nil {
			return err
		}
		if showMetrics {
			return writeMetrics(cmd.OutOrStdout(), s.registry)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().BoolVar(&showMetrics, "metrics", false, "Also print the collected Prometheus metrics")
	rootCmd.AddCommand(statsCmd)
}

func markdownTable(out io.Writer, columns int) *tablewriter.Table {
	alignment := make([]tw.Align, columns)
	for i := range alignment {
		alignment[i] = tw.AlignNone
	}
	return tablewriter.NewTable(out,
		tablewriter.WithRenderer(renderer.NewMarkdown()),
		tablewriter.WithAlignment(alignment),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)
}

func writeStats(w io.Writer, st model.Stats) error {
	out := &strings.Builder{}
	id := st.ID
	if id == "" {
		id = "(anonymous)"
	}
	fmt.Fprintf(out, "Ontology %s, generation %d\n", id, st.Generation)
	fmt.Fprintf(out, "%d axioms over %d triples, %d statements skipped\n", st.Axioms, st.Triples, st.Skipped)
	fmt.Fprintf(out, "Factory cache: %d hits, %d misses\n\n", st.FactoryHits, st.FactoryMisses)

	type row struct {
		kind string
		n    int
	}
	rows := make([]row, 0, len(st.ByKind))
	for k, n := range st.ByKind {
		rows = append(rows, row{k.String(), n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].n != rows[j].n {
			return rows[i].n > rows[j].n
		}
		return rows[i].kind < rows[j].kind
	})

	table := markdownTable(out, 2)
	table.Header([]string{"Kind", "Axioms"})
	for _, r := range rows {
		table.Append([]string{r.kind, fmt.Sprintf("%d", r.n)})
	}
	table.Render()

	_, err := io.WriteString(w, out.String())
	return err
}

// writeMetrics prints every counter and gauge series gathered from reg.
func writeMetrics(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	out := &strings.Builder{}
	out.WriteString("\n")
	table := markdownTable(out, 3)
	table.Header([]string{"Metric", "Labels", "Value"})
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			var value float64
			switch {
			case m.GetCounter() != nil:
				value = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				value = m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				value = float64(m.GetHistogram().GetSampleCount())
			}
			table.Append([]string{mf.GetName(), strings.Join(labels, ","), fmt.Sprintf("%g", value)})
		}
	}
	table.Render()

	_, err = io.WriteString(w, out.String())
	return err
}
