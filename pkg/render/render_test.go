package render

import (
	"strings"
	"testing"

	"github.com/bklybor/decision-table/pkg/dtable"
)

func exampleTable(t *testing.T) *dtable.Table {
	t.Helper()
	table, err := dtable.New([]string{"weather", "weekday"}, []string{"activity"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	table.AddRow([]dtable.Cell{dtable.NewCell("rainy"), dtable.Any()}, []dtable.Cell{dtable.NewCell("read")})
	table.AddRow([]dtable.Cell{dtable.Any(), dtable.Any()}, []dtable.Cell{dtable.NewCell("rest")})
	return table
}

func TestTextRender(t *testing.T) {
	out := exampleTable(t).Render(Text{})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "weather") || !strings.Contains(lines[0], "activity") {
		t.Errorf("header missing columns: %q", lines[0])
	}
	if !strings.Contains(lines[1], "---") {
		t.Errorf("missing separator line: %q", lines[1])
	}
	if !strings.Contains(lines[2], "rainy") || !strings.Contains(lines[2], "read") {
		t.Errorf("row content missing: %q", lines[2])
	}
	if !strings.Contains(lines[3], "*") {
		t.Errorf("wildcard token missing: %q", lines[3])
	}
}

func TestMarkdownRender(t *testing.T) {
	out := exampleTable(t).Render(Markdown{})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), out)
	}
	if lines[0] != "| weather | weekday | activity |" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "| --- | --- | --- |" {
		t.Errorf("separator = %q", lines[1])
	}
	if lines[3] != "| * | * | rest |" {
		t.Errorf("catch-all row = %q", lines[3])
	}
}

func TestMarkdownEscapesPipes(t *testing.T) {
	table, err := dtable.New([]string{"c"}, []string{"a"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	table.AddRow([]dtable.Cell{dtable.NewCell("x|y")}, []dtable.Cell{dtable.NewCell("go")})

	out := table.Render(Markdown{})
	if !strings.Contains(out, `x\|y`) {
		t.Errorf("pipe not escaped:\n%s", out)
	}
}
