package lex

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dhamidi/lpc/parse"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a pattern table file.
type Format int

const (
	FormatAuto Format = iota
	FormatTOML
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "auto"
	}
}

// PatternSpec is one entry of a pattern table.
type PatternSpec struct {
	ID    string `toml:"id" yaml:"id"`
	Regex string `toml:"regex" yaml:"regex"`
}

// Table is a declarative lexer definition, usually read from a file:
//
//	name = "demo"
//	skip = ["WS"]
//
//	[[patterns]]
//	id = "WS"
//	regex = '\s+'
type Table struct {
	Name     string        `toml:"name" yaml:"name"`
	Skip     []string      `toml:"skip" yaml:"skip"`
	Patterns []PatternSpec `toml:"patterns" yaml:"patterns"`
}

// LoadTable reads a table from path. The format is chosen by extension:
// .yaml and .yml are YAML, anything else is TOML.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}
	table, err := ParseTable(data, detectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if table.Name == "" {
		table.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return table, nil
}

// ParseTable decodes a table. FormatAuto is treated as TOML.
func ParseTable(data []byte, format Format) (*Table, error) {
	var table Table
	switch format {
	case FormatAuto, FormatTOML:
		if err := toml.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("parse toml table: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &table); err != nil {
			return nil, fmt.Errorf("parse yaml table: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported table format: %s", format)
	}
	return &table, nil
}

func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Compile turns every entry into a Pattern. All invalid entries are
// reported together.
func (t *Table) Compile() ([]Pattern, error) {
	var (
		patterns []Pattern
		errs     []error
	)
	for i, spec := range t.Patterns {
		if spec.ID == "" {
			errs = append(errs, fmt.Errorf("pattern %d: missing id", i+1))
			continue
		}
		p, err := NewPattern(spec.ID, spec.Regex)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		patterns = append(patterns, p)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return patterns, nil
}

// Lexer compiles the table and builds a lexer from it.
func (t *Table) Lexer(opts ...Option) (*Lexer, error) {
	patterns, err := t.Compile()
	if err != nil {
		return nil, err
	}
	l, err := New(patterns, opts...)
	if err != nil {
		return nil, fmt.Errorf("table %s: %w", t.Name, err)
	}
	for _, id := range t.Skip {
		if !l.HasPattern(id) {
			return nil, fmt.Errorf("table %s: skipped pattern %s is not defined", t.Name, id)
		}
	}
	return l, nil
}

// Tokens returns the token parser described by the table: the lexer itself,
// or the lexer skipping the ids listed under skip.
func (t *Table) Tokens(l *Lexer) parse.Parser[Token] {
	if len(t.Skip) == 0 {
		return l
	}
	return l.Skipping(t.Skip...)
}
