// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/types"
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

// PrintCvRecord outputs a human-readable summary of one extracted CV.
func (p *Printer) PrintCvRecord(name string, record *types.CvRecord) {
	if record == nil {
		return
	}

	var sb strings.Builder

	if len(record.Experience) > 0 {
		sb.WriteString("Experience:\n")
		count := min(len(record.Experience), maxItemsToShow)
		for i := 0; i < count; i++ {
			exp := record.Experience[i]
			sb.WriteString(fmt.Sprintf("  • %s", exp.JobTitle))
			if exp.Company != "" {
				sb.WriteString(fmt.Sprintf(" @ %s", exp.Company))
			}
			if exp.Period != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", exp.Period))
			}
			sb.WriteString("\n")
		}
		if len(record.Experience) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(record.Experience)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(record.Education) > 0 {
		sb.WriteString("Education:\n")
		for _, edu := range record.Education {
			sb.WriteString(fmt.Sprintf("  • %s", edu.Degree))
			if edu.Major != "" {
				sb.WriteString(fmt.Sprintf(" in %s", edu.Major))
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if len(record.Certifications) > 0 {
		sb.WriteString("Certifications:\n")
		for _, cert := range record.Certifications {
			sb.WriteString(fmt.Sprintf("  • %s\n", cert.Title))
		}
		sb.WriteString("\n")
	}

	if len(record.Skills) > 0 {
		skills := strings.Join(record.Skills, ", ")
		if len(skills) > 45 {
			skills = skills[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("Skills: %s\n", skills))
	}

	if sb.Len() == 0 {
		sb.WriteString("(no structured content extracted)\n")
	}

	p.printBox(fmt.Sprintf("EXTRACTED CV: %s", name), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintDrafts outputs a summary of the editable drafts prepared for review.
func (p *Printer) PrintDrafts(drafts []types.DraftCv) {
	if len(drafts) == 0 {
		return
	}

	var sb strings.Builder
	for i, draft := range drafts {
		sb.WriteString(fmt.Sprintf("%s\n", draft.Name))
		sb.WriteString(fmt.Sprintf("  Total experience: %.1f years\n", draft.TotalYearsExperience))
		sb.WriteString(fmt.Sprintf("  Rows: %d experience, %d education, %d certs, %d skills\n",
			len(draft.Experience), len(draft.Education), len(draft.Certifications), len(draft.Skills)))
		if i < len(drafts)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("REVIEW DRAFTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecommendations outputs the per-candidate recommendation summary.
func (p *Printer) PrintRecommendations(result *types.RecommendationResult) {
	if result == nil || len(result.Candidates) == 0 {
		return
	}

	var sb strings.Builder
	for i, candidate := range result.Candidates {
		sb.WriteString(fmt.Sprintf("%s\n", candidate.CandidateName))
		if len(candidate.Recommendations) == 0 {
			sb.WriteString("  (no matching certifications)\n")
		}

		count := min(len(candidate.Recommendations), maxItemsToShow)
		for j := 0; j < count; j++ {
			rec := candidate.Recommendations[j]
			sb.WriteString(fmt.Sprintf("  #%d %s", j+1, rec.CertName))
			if rec.CertID != "" {
				sb.WriteString(fmt.Sprintf(" [%s]", rec.CertID))
			}
			sb.WriteString("\n")
			if len(rec.RulesApplied) > 0 {
				rules := strings.Join(rec.RulesApplied, "; ")
				if len(rules) > 40 {
					rules = rules[:37] + "..."
				}
				sb.WriteString(fmt.Sprintf("     Rules: %s\n", rules))
			}
		}
		if len(candidate.Recommendations) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(candidate.Recommendations)-maxItemsToShow))
		}
		if i < len(result.Candidates)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("CERTIFICATION RECOMMENDATIONS", strings.TrimSuffix(sb.String(), "\n"))
}
