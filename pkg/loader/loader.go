package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bklybor/decision-table/pkg/dtable"
)

// Definition is a parsed table definition: the table plus the metadata
// carried by the source file.
type Definition struct {
	Name        string
	Description string
	Table       *dtable.Table
}

// Parser parses decision table files into Definitions.
type Parser struct {
	maxFileSize int64
}

// NewParser creates a parser with default configuration.
func NewParser() *Parser {
	return &Parser{
		maxFileSize: 10 * 1024 * 1024, // 10MB
	}
}

// WithMaxFileSize sets the maximum file size limit.
func (p *Parser) WithMaxFileSize(size int64) *Parser {
	p.maxFileSize = size
	return p
}

// ParseFile parses a table definition file, dispatching on its extension
// (.yaml/.yml or .csv).
func (p *Parser) ParseFile(path string) (*Definition, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &ParseError{File: path, Message: "failed to access file", Cause: err}
	}
	if info.Size() > p.maxFileSize {
		return nil, &ParseError{
			File:    path,
			Message: fmt.Sprintf("file size %d exceeds maximum %d bytes", info.Size(), p.maxFileSize),
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{File: path, Message: "failed to read file", Cause: err}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return p.parseYAML(data, path)
	case ".csv":
		return p.parseCSV(data, path)
	default:
		return nil, &ParseError{
			File:    path,
			Message: fmt.Sprintf("unsupported table format %q", filepath.Ext(path)),
		}
	}
}

// ParseYAML parses a YAML table definition from bytes. The source name is
// used in error messages only.
func (p *Parser) ParseYAML(data []byte, source string) (*Definition, error) {
	return p.parseYAML(data, source)
}

// ParseCSV parses a CSV table definition from bytes. The source name is
// used in error messages only.
func (p *Parser) ParseCSV(data []byte, source string) (*Definition, error) {
	return p.parseCSV(data, source)
}

// cellFromValue converts a raw condition value to a cell, mapping the
// wildcard token to a wildcard cell.
func cellFromValue(v any) dtable.Cell {
	if s, ok := v.(string); ok && s == dtable.AnyToken {
		return dtable.Any()
	}
	return dtable.NewCell(v)
}
