package ontology

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// PunningMode selects which entity-kind combinations on one IRI are
// rejected at write time.
type PunningMode int

const (
	// PunningMedium forbids Class+Datatype and any two property kinds.
	PunningMedium PunningMode = iota
	// PunningStrict forbids any two distinct entity kinds.
	PunningStrict
	// PunningLax performs no punning checks.
	PunningLax
)

func (m PunningMode) String() string {
	switch m {
	case PunningStrict:
		return "strict"
	case PunningLax:
		return "lax"
	default:
		return "medium"
	}
}

// ParsePunningMode parses "strict", "medium" or "lax".
func ParsePunningMode(s string) (PunningMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return PunningStrict, nil
	case "medium", "":
		return PunningMedium, nil
	case "lax":
		return PunningLax, nil
	default:
		return PunningMedium, fmt.Errorf("unknown punning mode %q", s)
	}
}

func (m PunningMode) MarshalYAML() (interface{}, error) {
	return m.String(), nil
}

func (m *PunningMode) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParsePunningMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Allows reports whether an IRI may carry both kinds a and b.
func (m PunningMode) Allows(a, b EntityKind) bool {
	if a == b {
		return true
	}
	switch m {
	case PunningLax:
		return true
	case PunningStrict:
		return false
	}
	if (a == Class && b == Datatype) || (a == Datatype && b == Class) {
		return false
	}
	return !(a.IsProperty() && b.IsProperty())
}

// Config controls reading and writing behaviour of an ontology.
type Config struct {
	Punning PunningMode `yaml:"punning"`

	// ContentCache keeps decoded axiom content for the lifetime of the cache
	// generation. When false, content is re-read from the graph on access.
	ContentCache bool `yaml:"content_cache"`

	// LoadAnnotations controls whether annotation blocks are decoded.
	LoadAnnotations bool `yaml:"load_annotations"`

	// IgnoreReadErrors skips malformed statements instead of failing the scan.
	IgnoreReadErrors bool `yaml:"ignore_read_errors"`

	// ReadDeclarations requires rdf:type declarations for entity references.
	// When false, undeclared IRIs resolve by the role they are used in.
	ReadDeclarations bool `yaml:"read_declarations"`
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	return Config{
		Punning:          PunningMedium,
		ContentCache:     true,
		LoadAnnotations:  true,
		IgnoreReadErrors: true,
		ReadDeclarations: true,
	}
}

// ParseConfig reads a YAML document on top of DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, cfg.Validate()
}

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("read config %s: %w", path, err)
	}
	return ParseConfig(data)
}

// Validate checks field ranges.
func (c Config) Validate() error {
	if c.Punning < PunningMedium || c.Punning > PunningLax {
		return fmt.Errorf("invalid punning mode %d", c.Punning)
	}
	return nil
}
