package store

import (
	"encoding/json"
	"fmt"

	"github.com/bklybor/decision-table/pkg/dtable"
)

// jsonCell is the serialized form of a cell. Wildcards are encoded
// explicitly so a literal "*" value stays distinguishable.
type jsonCell struct {
	Any   bool `json:"any,omitempty"`
	Value any  `json:"value"`
}

// encodeCells serializes cells to JSON.
func encodeCells(cells []dtable.Cell) ([]byte, error) {
	out := make([]jsonCell, len(cells))
	for i, c := range cells {
		if c.IsAny() {
			out[i] = jsonCell{Any: true}
		} else {
			out[i] = jsonCell{Value: c.Value()}
		}
	}
	return json.Marshal(out)
}

// decodeCells deserializes cells from JSON.
func decodeCells(data []byte) ([]dtable.Cell, error) {
	var raw []jsonCell
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	cells := make([]dtable.Cell, len(raw))
	for i, jc := range raw {
		if jc.Any {
			cells[i] = dtable.Any()
		} else {
			cells[i] = dtable.NewCell(jc.Value)
		}
	}
	return cells, nil
}

// encodeTable serializes a table's rows; columns are stored separately.
func encodeNames(names []string) ([]byte, error) {
	return json.Marshal(names)
}

// decodeNames deserializes a column name list.
func decodeNames(data []byte) ([]string, error) {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// rebuildTable reconstructs a table from decoded columns and rows.
func rebuildTable(conditions, actions []string, rows [][2][]byte) (*dtable.Table, error) {
	table, err := dtable.New(conditions, actions)
	if err != nil {
		return nil, fmt.Errorf("stored columns invalid: %w", err)
	}
	for i, pair := range rows {
		condCells, err := decodeCells(pair[0])
		if err != nil {
			return nil, fmt.Errorf("row %d conditions: %w", i, err)
		}
		actCells, err := decodeCells(pair[1])
		if err != nil {
			return nil, fmt.Errorf("row %d actions: %w", i, err)
		}
		if err := table.AddRow(condCells, actCells); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}
	return table, nil
}
