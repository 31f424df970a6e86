// Package recipe describes selectors declaratively (YAML or JSON) and builds
// them with package selector.
package recipe

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	yaml "gopkg.in/yaml.v3"

	"csssel/selector"
)

// Format of recipe data.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

var (
	ErrUnknownFormat = errors.New("unknown recipe format")
	ErrBadVersion    = errors.New("unsupported recipe version")
	ErrBadPart       = errors.New("part must be a single 'kind: value' pair")
	ErrBadNode       = errors.New("exactly one of 'ref', 'parts' or 'combine' must be set")
	ErrUnknownRef    = errors.New("reference to unknown or later entry")
	ErrDuplicateName = errors.New("duplicate entry name")
)

// FormatFromPath detects recipe format by file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: '%s'", ErrUnknownFormat, path)
}

type (
	// Book is the top level recipe document.
	Book struct {
		Version   int      `yaml:"version" json:"version"`
		Imports   []string `yaml:"imports,omitempty" json:"imports,omitempty"`
		Selectors []Entry  `yaml:"selectors" json:"selectors"`
	}

	// Entry is a named selector with optional declarations to emit in a
	// stylesheet. In JSON node fields are written flat next to the name, see
	// entryJSON.
	Entry struct {
		Name       string `yaml:"name,omitempty" json:"name,omitempty"`
		Node       `yaml:",inline"`
		Media      string            `yaml:"media,omitempty" json:"media,omitempty"`
		Properties map[string]string `yaml:"properties,omitempty" json:"properties,omitempty"`
	}

	// Node describes selector by exactly one of: list of parts (compound
	// selector), reference to an earlier entry, or combination of two nodes.
	Node struct {
		Ref     string       `yaml:"ref,omitempty" json:"ref,omitempty"`
		Parts   []Part       `yaml:"parts,omitempty" json:"parts,omitempty"`
		Combine *Combination `yaml:"combine,omitempty" json:"combine,omitempty"`
	}

	// Combination joins two nodes.
	Combination struct {
		Left       Node   `yaml:"left" json:"left"`
		Combinator string `yaml:"combinator" json:"combinator"`
		Right      Node   `yaml:"right" json:"right"`
	}

	// Part is encoded as a single pair mapping kind to value, for example
	// "class: container".
	Part selector.Part
)

// entryJSON is Entry with Node fields spelled out. go-json cannot encode
// embedded struct which refers to itself through Combination.
type entryJSON struct {
	Name       string            `json:"name,omitempty"`
	Ref        string            `json:"ref,omitempty"`
	Parts      []Part            `json:"parts,omitempty"`
	Combine    *Combination      `json:"combine,omitempty"`
	Media      string            `json:"media,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
}

func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(entryJSON{
		Name:       e.Name,
		Ref:        e.Ref,
		Parts:      e.Parts,
		Combine:    e.Combine,
		Media:      e.Media,
		Properties: e.Properties,
	})
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	var ej entryJSON
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&ej); err != nil {
		return err
	}
	*e = Entry{
		Name:       ej.Name,
		Node:       Node{Ref: ej.Ref, Parts: ej.Parts, Combine: ej.Combine},
		Media:      ej.Media,
		Properties: ej.Properties,
	}
	return nil
}

func (p *Part) set(kind, value string) error {
	k, err := selector.ParsePartKind(kind)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBadPart, err)
	}
	p.Kind, p.Value = k, value
	return nil
}

func (p *Part) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode || len(node.Content) != 2 {
		return fmt.Errorf("line %d: %w", node.Line, ErrBadPart)
	}
	var kind, value string
	if err := node.Content[0].Decode(&kind); err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	if err := node.Content[1].Decode(&value); err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	if err := p.set(kind, value); err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	return nil
}

func (p Part) MarshalYAML() (any, error) {
	return map[string]string{p.Kind.String(): p.Value}, nil
}

func (p *Part) UnmarshalJSON(data []byte) error {
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("%w: %w", ErrBadPart, err)
	}
	if len(m) != 1 {
		return ErrBadPart
	}
	var kind, value string
	for k, v := range m {
		kind, value = k, v
	}
	return p.set(kind, value)
}

func (p Part) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{p.Kind.String(): p.Value})
}

// Load decodes recipe data. Unknown fields are rejected.
func Load(data []byte, format Format) (*Book, error) {
	book := &Book{}
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(book); err != nil {
			return nil, fmt.Errorf("failed to decode recipe: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(book); err != nil {
			return nil, fmt.Errorf("failed to decode recipe: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownFormat, format)
	}
	if book.Version != 1 {
		return nil, fmt.Errorf("%w: %d", ErrBadVersion, book.Version)
	}
	return book, nil
}

// LoadFile reads recipe from file, format is detected by extension.
func LoadFile(path string) (*Book, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recipe file: %w", err)
	}
	book, err := Load(data, format)
	if err != nil {
		return nil, fmt.Errorf("recipe '%s': %w", path, err)
	}
	return book, nil
}

// Encode serializes book in the requested format.
func (bk *Book) Encode(format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(bk)
	case FormatJSON:
		return json.MarshalIndent(bk, "", "  ")
	}
	return nil, fmt.Errorf("%w: '%s'", ErrUnknownFormat, format)
}
