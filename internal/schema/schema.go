// Package schema describes the columns of a delimited file and decodes its records into
// dynamically typed rows.
package schema

import (
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/encoding/yaml"
	"github.com/spf13/afero"

	"github.com/oleg578/typedcsv"
)

//go:embed schema.cue
var definition string

// ErrNoColumns is returned by New when a schema has no columns.
var ErrNoColumns = errors.New("schema: at least one column is required")

// Column is a named, typed field position.
type Column struct {
	Name string `json:"name"`
	// Type is one of the names accepted by the CUE definition, e.g. "int32" or "date".
	Type string `json:"type"`
	// Layout replaces the locale's calendar layouts when reading date and time columns.
	Layout string `json:"layout,omitempty"`

	read readFunc
}

// Schema is the column layout of a file plus the locales it is read and written in.
type Schema struct {
	Input   string   `json:"input"`
	Output  string   `json:"output"`
	Header  bool     `json:"header"`
	Columns []Column `json:"columns"`
}

// Load reads a schema from a YAML, JSON or CUE file on fsys and validates it.
func Load(fsys afero.Fs, path string) (*Schema, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes a schema document. The format is chosen from the extension of source:
// ".yaml" and ".yml" are YAML, anything else is compiled as CUE (which includes JSON).
func Parse(data []byte, source string) (*Schema, error) {
	ctx := cuecontext.New()

	var val cue.Value
	switch strings.ToLower(filepath.Ext(source)) {
	case ".yaml", ".yml":
		file, err := yaml.Extract(source, data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse YAML schema from %s: %w", source, err)
		}
		val = ctx.BuildFile(file)
	default:
		val = ctx.CompileBytes(data, cue.Filename(source))
	}
	if err := val.Err(); err != nil {
		return nil, fmt.Errorf("failed to parse schema from %s: %w", source, err)
	}

	def := ctx.CompileString(definition, cue.Filename("schema.cue")).LookupPath(cue.ParsePath("#Schema"))
	if err := def.Err(); err != nil {
		return nil, fmt.Errorf("failed to compile schema definition: %w", err)
	}
	val = def.Unify(val)
	if err := val.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("schema validation failed for %s: %w", source, err)
	}

	var s Schema
	if err := val.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode schema from %s: %w", source, err)
	}
	return New(s.Input, s.Output, s.Header, s.Columns...)
}

// New builds a schema programmatically. Column types are checked against the known set.
func New(input, output string, header bool, columns ...Column) (*Schema, error) {
	if len(columns) == 0 {
		return nil, ErrNoColumns
	}
	s := &Schema{Input: input, Output: output, Header: header, Columns: make([]Column, len(columns))}
	for i, col := range columns {
		read, ok := readers[col.Type]
		if !ok {
			return nil, fmt.Errorf("column %q: %w %q", col.Name, typedcsv.ErrUnsupportedType, col.Type)
		}
		col.read = read
		s.Columns[i] = col
	}
	return s, nil
}

// InputFormat resolves the input locale.
func (s *Schema) InputFormat() (typedcsv.FormatConfig, error) { return typedcsv.Locale(s.Input) }

// OutputFormat resolves the output locale, defaulting to the input locale.
func (s *Schema) OutputFormat() (typedcsv.FormatConfig, error) {
	if s.Output == "" {
		return s.InputFormat()
	}
	return typedcsv.Locale(s.Output)
}

// Names returns the names of the columns that are kept in a Row.
func (s *Schema) Names() []string {
	names := make([]string, 0, len(s.Columns))
	for _, col := range s.Columns {
		if col.Type != "skip" {
			names = append(names, col.Name)
		}
	}
	return names
}
