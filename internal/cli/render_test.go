package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestRenderTableShape(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Date", "Day", "Planned"},
		Rows: [][]string{
			{"—", "Gift", "300.00"},
			{"---"},
			{"2024-01-06", "Saturday", "50.00"},
		},
		Kinds:    []RowKind{RowObligation, RowNormal, RowOver},
		LeftCols: 2,
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// top, header, header rule, row, separator, row, bottom
	if len(lines) != 7 {
		t.Fatalf("lines = %d, want 7:\n%s", len(lines), out)
	}

	width := lipgloss.Width(lines[0])
	for i, l := range lines {
		if w := lipgloss.Width(l); w != width {
			t.Fatalf("line %d width = %d, want %d", i, w, width)
		}
	}
	if !strings.Contains(out, "Saturday") || !strings.Contains(out, "300.00") {
		t.Fatal("cell content missing from table")
	}
}

func TestRenderTableEmpty(t *testing.T) {
	if RenderTable(Table{}) != "" {
		t.Fatal("empty table should render nothing")
	}
}

func TestRenderBudgetBar(t *testing.T) {
	if RenderBudgetBar(10, 0, 20) != "" {
		t.Fatal("zero budget should render no bar")
	}
	bar := RenderBudgetBar(50, 100, 10)
	if !strings.Contains(bar, "50.0%") {
		t.Fatalf("bar = %q, want 50.0%%", bar)
	}
	if over := RenderBudgetBar(150, 100, 10); !strings.Contains(over, "150.0%") {
		t.Fatalf("over bar = %q, want 150.0%%", over)
	}
}

func TestRenderSparkline(t *testing.T) {
	if RenderSparkline(nil) != "" {
		t.Fatal("nil values should render nothing")
	}
	line := RenderSparkline([]float64{0, 5, 10})
	if !strings.Contains(line, "▁") || !strings.Contains(line, "█") {
		t.Fatalf("sparkline = %q, want lowest and highest blocks", line)
	}
}
