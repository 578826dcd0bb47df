package loader

import (
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bklybor/decision-table/pkg/dtable"
)

// yamlTable is the intermediate structure a YAML table definition is
// decoded into before table construction.
type yamlTable struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Conditions  []string  `yaml:"conditions"`
	Actions     []string  `yaml:"actions"`
	Rows        []yamlRow `yaml:"rows"`
}

// yamlRow is an intermediate row: condition values under "when", action
// values under "then".
type yamlRow struct {
	When []any `yaml:"when"`
	Then []any `yaml:"then"`

	line int // source line for error reporting
}

// UnmarshalYAML decodes a row and records its source line.
func (r *yamlRow) UnmarshalYAML(node *yaml.Node) error {
	type plain yamlRow
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*r = yamlRow(p)
	r.line = node.Line
	return nil
}

// parseYAML parses a YAML table definition and builds the table.
func (p *Parser) parseYAML(data []byte, source string) (*Definition, error) {
	var yt yamlTable
	if err := yaml.Unmarshal(data, &yt); err != nil {
		return nil, &ParseError{File: source, Line: 1, Message: "YAML parsing failed", Cause: err}
	}

	table, err := dtable.New(yt.Conditions, yt.Actions)
	if err != nil {
		return nil, &ParseError{File: source, Message: "invalid column definitions", Cause: err}
	}

	for _, row := range yt.Rows {
		conditions := make([]dtable.Cell, len(row.When))
		for i, v := range row.When {
			conditions[i] = cellFromValue(v)
		}
		actions := make([]dtable.Cell, len(row.Then))
		for i, v := range row.Then {
			// The wildcard token maps to a wildcard cell here too, so
			// AddRow rejects it with InvalidActionValueError.
			actions[i] = cellFromValue(v)
		}

		if err := table.AddRow(conditions, actions); err != nil {
			return nil, &ParseError{File: source, Line: row.line, Message: "invalid row", Cause: err}
		}
	}

	name := yt.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	}

	return &Definition{
		Name:        name,
		Description: yt.Description,
		Table:       table,
	}, nil
}
