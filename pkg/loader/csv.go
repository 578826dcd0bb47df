package loader

import (
	"bytes"
	"encoding/csv"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bklybor/decision-table/pkg/dtable"
)

// actionMarker is the header column separating condition columns from
// action columns in CSV table definitions.
const actionMarker = "->"

// parseCSV parses a CSV table definition and builds the table.
//
// The header declares condition columns, a single "->" marker column, then
// action columns. Data rows leave the marker column empty.
func (p *Parser) parseCSV(data []byte, source string) (*Definition, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1 // validated against the header below

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &ParseError{File: source, Message: "CSV parsing failed", Cause: err}
	}
	if len(records) == 0 {
		return nil, &ParseError{File: source, Message: "empty CSV file"}
	}

	header := records[0]
	marker := -1
	for i, col := range header {
		if col == actionMarker {
			if marker >= 0 {
				return nil, &ParseError{File: source, Line: 1, Message: "multiple \"->\" marker columns"}
			}
			marker = i
		}
	}
	if marker < 0 {
		return nil, &ParseError{File: source, Line: 1, Message: "header has no \"->\" marker column"}
	}

	conditions := header[:marker]
	actions := header[marker+1:]

	table, err := dtable.New(conditions, actions)
	if err != nil {
		return nil, &ParseError{File: source, Line: 1, Message: "invalid column definitions", Cause: err}
	}

	for n, record := range records[1:] {
		line := n + 2

		if len(record) != len(header) {
			return nil, &ParseError{
				File:    source,
				Line:    line,
				Message: "row has " + strconv.Itoa(len(record)) + " fields, header declares " + strconv.Itoa(len(header)),
			}
		}

		condCells := make([]dtable.Cell, len(conditions))
		for i, field := range record[:marker] {
			condCells[i] = csvCell(field)
		}
		actCells := make([]dtable.Cell, len(actions))
		for i, field := range record[marker+1:] {
			actCells[i] = csvCell(field)
		}

		if err := table.AddRow(condCells, actCells); err != nil {
			return nil, &ParseError{File: source, Line: line, Message: "invalid row", Cause: err}
		}
	}

	name := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	return &Definition{Name: name, Table: table}, nil
}

// csvCell converts a CSV field to a cell. The wildcard token becomes a
// wildcard cell; other fields are parsed as boolean, then number, then
// kept as string.
func csvCell(field string) dtable.Cell {
	if field == dtable.AnyToken {
		return dtable.Any()
	}
	switch field {
	case "true":
		return dtable.NewCell(true)
	case "false":
		return dtable.NewCell(false)
	}
	if num, err := strconv.ParseFloat(field, 64); err == nil {
		return dtable.NewCell(num)
	}
	return dtable.NewCell(field)
}
