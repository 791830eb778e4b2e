package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/wbrown/janus-owl/ontology"
	"github.com/wbrown/janus-owl/ontology/annotations"
	"github.com/wbrown/janus-owl/ontology/graph"
	"github.com/wbrown/janus-owl/ontology/metrics"
	"github.com/wbrown/janus-owl/ontology/model"
)

var (
	verbose    bool
	dbPath     string
	configPath string
	ontologyID string
)

var rootCmd = &cobra.Command{
	Use:   "ontctl",
	Short: "Inspect and maintain OWL ontologies stored as RDF triples",
	Long: `ontctl keeps an ontology in a Badger-backed triple store and reads it
back as OWL axioms. Triples are imported from N-Quads files, axioms are
listed by kind and the store can be exported again.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fatal("ontctl", err)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging and print ontology events")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "ontology.db", "Badger database directory")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&ontologyID, "ontology", "", "Ontology IRI; writes the owl:Ontology header")
}

// session is an open store with its ontology view.
type session struct {
	store    *graph.BadgerStore
	ont      *model.Ontology
	registry *prometheus.Registry
}

func (s *session) Close() error {
	return s.store.Close()
}

// openSession opens the store at --db and the ontology over it, applying
// --config, --ontology and --verbose.
func openSession() (*session, error) {
	cfg := ontology.DefaultConfig()
	if configPath != "" {
		loaded, err := ontology.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	store, err := graph.NewBadgerStore(dbPath, graph.NewKeyEncoder(graph.BinaryStrategy))
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	label := ontologyID
	if label == "" {
		label = dbPath
	}
	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg, label)
	if err != nil {
		store.Close()
		return nil, err
	}

	opts := []model.Option{
		model.WithConfig(cfg),
		model.WithLogger(slog.Default()),
		model.WithMetrics(m),
	}
	if ontologyID != "" {
		opts = append(opts, model.WithID(ontologyID))
	}
	if verbose {
		opts = append(opts, model.WithHandler(annotations.ConsoleHandler()))
	}
	ont, err := model.New(store, opts...)
	if err != nil {
		store.Close()
		return nil, err
	}
	return &session{store: store, ont: ont, registry: reg}, nil
}
