// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/style-transfer/internal/evaluation"
	"github.com/jonathan/style-transfer/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
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

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRequest outputs a human-readable summary of the style transfer request.
func (p *Printer) PrintRequest(request *types.StyleTransferRequest) {
	if request == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Reference styles: %d\n", len(request.ReferenceStyle)))
	count := min(len(request.ReferenceStyle), maxItemsToShow)
	for i := 0; i < count; i++ {
		style := request.ReferenceStyle[i]
		sb.WriteString(fmt.Sprintf("  • %s (%d documents)\n", style.Name, len(style.Documents)))
	}
	if len(request.ReferenceStyle) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(request.ReferenceStyle)-maxItemsToShow))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Target documents: %d\n", len(request.TargetContent)))
	sb.WriteString(fmt.Sprintf("Focus:    %s\n", request.Focus))
	if request.Intent != "" {
		sb.WriteString(fmt.Sprintf("Intent:   %s\n", request.Intent))
	}

	schemas := request.ResolveSchemas()
	sb.WriteString(fmt.Sprintf("Outputs:  %d\n", len(schemas)))
	for i, schema := range schemas {
		if i >= maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(schemas)-maxItemsToShow))
			break
		}
		sb.WriteString(fmt.Sprintf("  • %s (%s)\n", schema.Name, schema.OutputType))
	}

	p.printBox("STYLE TRANSFER REQUEST", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintEnrichedStyles outputs the reference styles after enrichment.
func (p *Printer) PrintEnrichedStyles(styles []types.ReferenceStyle) {
	if len(styles) == 0 {
		return
	}

	var sb strings.Builder

	for i, style := range styles {
		if i >= maxItemsToShow {
			sb.WriteString(fmt.Sprintf("... and %d more styles", len(styles)-maxItemsToShow))
			break
		}

		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, style.Name))
		if style.StyleDefinition != nil {
			sb.WriteString(fmt.Sprintf("    Tone: %s (formality %d/10)\n",
				style.StyleDefinition.Tone, style.StyleDefinition.FormalityLevel))
			sb.WriteString(fmt.Sprintf("    Rules: %d  Examples: %d\n",
				len(style.StyleDefinition.StyleRules), len(style.StyleDefinition.FewShotExamples)))
		}
		if i < len(styles)-1 && i < maxItemsToShow-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("ENRICHED REFERENCE STYLES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResponses outputs the generated responses, one excerpt per schema.
func (p *Printer) PrintResponses(responses []types.StyleTransferResponse) {
	if len(responses) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Generated %d outputs:\n\n", len(responses)))

	count := min(len(responses), maxItemsToShow)
	for i := 0; i < count; i++ {
		response := responses[i]
		name := "unknown"
		if response.OutputSchema != nil {
			name = fmt.Sprintf("%s (%s)", response.OutputSchema.Name, response.OutputSchema.OutputType)
		}
		sb.WriteString(fmt.Sprintf("• %s\n", name))

		excerpt := response.ProcessedContent
		if len(excerpt) > 50 {
			excerpt = excerpt[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("  %s\n", excerpt))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(responses) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more outputs", len(responses)-maxItemsToShow))
	}

	p.printBox("GENERATED OUTPUTS", sb.String())
}

// PrintEvaluation outputs per-dimension scores for a single response.
func (p *Printer) PrintEvaluation(schemaName string, results []evaluation.Result) {
	if len(results) == 0 {
		return
	}

	var sb strings.Builder
	for i, result := range results {
		sb.WriteString(fmt.Sprintf("%-26s %.2f\n", result.Key, result.Score))
		comment := result.Comment
		if len(comment) > 50 {
			comment = comment[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("  %s\n", comment))
		if i < len(results)-1 {
			sb.WriteString("\n")
		}
	}

	title := "EVALUATION"
	if schemaName != "" {
		title = fmt.Sprintf("EVALUATION: %s", schemaName)
	}
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}
