package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/danieljhkim/linkfarm/internal/engine"
	"github.com/danieljhkim/linkfarm/internal/executor"
	"github.com/danieljhkim/linkfarm/internal/planner"
)

// Output conventions: success and per-path progress go to stdout, errors to
// stderr, and everything stays on one line per event so runs pipe cleanly.
// fatih/color drops the escapes itself when stdout is not a terminal.
var (
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
	headerColor  = color.New(color.FgBlue, color.Bold)
	labelColor   = color.New(color.FgWhite, color.Bold)
	dimColor     = color.New(color.FgHiBlack)
)

// PrintSection prints a section header
func PrintSection(title string) {
	fmt.Println()
	_, _ = headerColor.Printf("▸ %s\n", title)
	fmt.Println()
}

// PrintSubsection prints a subsection header
func PrintSubsection(title string) {
	_, _ = infoColor.Printf("  %s\n", title)
}

// PrintSuccess prints a success message with a checkmark
func PrintSuccess(msg string) {
	_, _ = successColor.Printf("✓ %s\n", msg)
}

// PrintWarning prints a warning message with a warning symbol
func PrintWarning(msg string) {
	_, _ = warningColor.Printf("⚠ %s\n", msg)
}

// PrintError prints an error message to stderr
func PrintError(msg string) {
	_, _ = errorColor.Fprintf(os.Stderr, "✗ %s\n", msg)
}

// PrintInfo prints an informational message
func PrintInfo(msg string) {
	fmt.Println(msg)
}

// PrintLabelValue prints an indented label-value pair
func PrintLabelValue(label, value string) {
	_, _ = labelColor.Printf("  %s: ", label)
	_, _ = dimColor.Println(value)
}

// PrintList prints items as a bulleted list
func PrintList(items []string, indent int) {
	indentStr := strings.Repeat("  ", indent)
	for _, item := range items {
		_, _ = infoColor.Printf("%s• %s\n", indentStr, item)
	}
}

// PrintTable prints rows under headers with columns padded to fit.
func PrintTable(headers []string, rows [][]string) {
	if len(headers) == 0 || len(rows) == 0 {
		return
	}

	widths := columnWidths(headers, rows)

	_, _ = headerColor.Print("  ")
	writeCells(headers, widths, func(cell string, w int) {
		_, _ = headerColor.Printf("%-*s", w, cell)
	})

	fmt.Print("  ")
	writeCells(headers, widths, func(_ string, w int) {
		fmt.Print(strings.Repeat("-", w))
	})

	for _, row := range rows {
		fmt.Print("  ")
		writeCells(row, widths, func(cell string, w int) {
			_, _ = dimColor.Printf("%-*s", w, cell)
		})
	}
}

// columnWidths returns the width of the widest cell per column, headers
// included.
func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = len(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	return widths
}

// writeCells writes one table line, invoking write per cell and separating
// columns with two spaces. Cells beyond the header count are dropped.
func writeCells(cells []string, widths []int, write func(cell string, w int)) {
	for i, cell := range cells {
		if i >= len(widths) {
			break
		}
		if i > 0 {
			fmt.Print("  ")
		}
		write(cell, widths[i])
	}
	fmt.Println()
}

// PrintEmptyState prints a placeholder when there is nothing to list
func PrintEmptyState(msg string) {
	_, _ = dimColor.Printf("  %s\n", msg)
}

// PrintCount formats a count with its unit, choosing singular or plural.
func PrintCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// outcomeLine renders the uncolored per-path result line.
func outcomeLine(r executor.PathResult) string {
	switch {
	case r.Action == planner.ActionConflict:
		return fmt.Sprintf("conflict %s: %s", r.RelPath, r.Reason)
	case r.Outcome == executor.OutcomeFailed:
		return fmt.Sprintf("failed %s: %s", r.RelPath, r.Reason)
	case r.Outcome == executor.OutcomeApplied:
		return fmt.Sprintf("created %s", r.RelPath)
	case r.Outcome == executor.OutcomeRemoved:
		return fmt.Sprintf("removed %s", r.RelPath)
	default:
		if r.Reason != "" {
			return fmt.Sprintf("skipped %s (%s)", r.RelPath, r.Reason)
		}
		return fmt.Sprintf("skipped %s", r.RelPath)
	}
}

// PrintOutcome prints one per-path result line, colored by outcome.
func PrintOutcome(r executor.PathResult) {
	line := outcomeLine(r)
	switch {
	case r.Action == planner.ActionConflict, r.Outcome == executor.OutcomeFailed:
		_, _ = errorColor.Printf("  %s\n", line)
	case r.Outcome == executor.OutcomeSkipped:
		_, _ = dimColor.Printf("  %s\n", line)
	default:
		_, _ = successColor.Printf("  %s\n", line)
	}
}

// statusLine renders the uncolored per-path status line.
func statusLine(p engine.PathStatus) string {
	if p.Detail != "" {
		return fmt.Sprintf("%-8s %s (%s)", p.State, p.RelPath, p.Detail)
	}
	return fmt.Sprintf("%-8s %s", p.State, p.RelPath)
}

// PrintPathStatus prints one per-path status line, colored by state.
func PrintPathStatus(p engine.PathStatus) {
	line := statusLine(p)
	switch p.State {
	case engine.PathLinked:
		_, _ = successColor.Printf("  %s\n", line)
	case engine.PathAbsent:
		_, _ = dimColor.Printf("  %s\n", line)
	default:
		_, _ = warningColor.Printf("  %s\n", line)
	}
}
