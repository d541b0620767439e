// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/jobskills/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 10
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintExtractionResult outputs a human-readable summary of a pipeline run.
func (p *Printer) PrintExtractionResult(result *types.ExtractionResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Run:        %s\n", result.Debug.RunID))
	sb.WriteString(fmt.Sprintf("Confidence: %.2f\n", result.Confidence))
	sb.WriteString(fmt.Sprintf("Elapsed:    %dms\n", result.ExecutionTimeMs))
	sb.WriteString("\n")
	sb.WriteString(formatRecords("Required", result.Required))
	sb.WriteString(formatRecords("Desired", result.Desired))
	sb.WriteString(fmt.Sprintf("Candidates: %d  Rejected: %d\n", len(result.Candidates), len(result.Rejected)))

	p.printBox("Extraction Result", sb.String())
}

// PrintStageCounts outputs the per-stage phrase counts for both streams.
func (p *Printer) PrintStageCounts(debug types.DebugInfo) {
	var sb strings.Builder
	sb.WriteString("Stage              Required  Desired\n")
	rows := []struct {
		label    string
		req, des int
	}{
		{"extracted", debug.Required.Extracted, debug.Desired.Extracted},
		{"after split", debug.Required.AfterSplit, debug.Desired.AfterSplit},
		{"after tool filter", debug.Required.AfterToolFilter, debug.Desired.AfterToolFilter},
		{"after deny filter", debug.Required.AfterDenyFilter, debug.Desired.AfterDenyFilter},
		{"normalized", debug.Required.Normalized, debug.Desired.Normalized},
		{"final", debug.Required.Final, debug.Desired.Final},
	}
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%-18s %8d %8d\n", r.label, r.req, r.des))
	}
	p.printBox("Pipeline Stages", sb.String())
}

func formatRecords(label string, records []types.SkillRecord) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s (%d):\n", label, len(records)))
	for i, r := range records {
		if i >= maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(records)-maxItemsToShow))
			break
		}
		sb.WriteString(fmt.Sprintf("  %.2f  %-28s %s\n", r.Confidence, r.Name, r.MatchType))
	}
	sb.WriteString("\n")
	return sb.String()
}
