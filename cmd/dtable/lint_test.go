package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bklybor/decision-table/pkg/loader"
)

func writeTableFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLintFile_Valid(t *testing.T) {
	path := writeTableFile(t, "weather.yaml", `name: weather
conditions: [weather, day]
actions: [activity]
rows:
  - when: [sunny, "*"]
    then: [hike]
  - when: ["*", "*"]
    then: [rest]
`)

	result := lintFile(loader.NewParser(), path)
	if !result.Valid {
		t.Fatalf("lintFile() invalid: %s", result.Error)
	}
	if result.Name != "weather" {
		t.Errorf("Name = %q, want weather", result.Name)
	}
	if result.Rows != 2 {
		t.Errorf("Rows = %d, want 2", result.Rows)
	}
}

func TestLintFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "duplicate columns",
			file: "dup.yaml",
			content: `conditions: [a, a]
actions: [x]
rows: []
`,
		},
		{
			name: "row shape mismatch",
			file: "shape.yaml",
			content: `conditions: [a, b]
actions: [x]
rows:
  - when: [1]
    then: [2]
`,
		},
		{
			name: "wildcard action",
			file: "wild.yaml",
			content: `conditions: [a]
actions: [x]
rows:
  - when: [1]
    then: ["*"]
`,
		},
		{
			name:    "broken yaml",
			file:    "broken.yaml",
			content: "conditions: [a\n",
		},
		{
			name: "short csv row",
			file: "short.csv",
			content: `a,b,->,x
1,2,go
1
`,
		},
	}

	parser := loader.NewParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTableFile(t, tt.file, tt.content)

			result := lintFile(parser, path)
			if result.Valid {
				t.Fatal("lintFile() valid, want invalid")
			}
			if result.Error == "" {
				t.Error("Error is empty")
			}
		})
	}
}

func TestLintFile_MissingFile(t *testing.T) {
	result := lintFile(loader.NewParser(), filepath.Join(t.TempDir(), "missing.yaml"))
	if result.Valid {
		t.Fatal("lintFile() valid for missing file")
	}
}
