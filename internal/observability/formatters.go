// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/candidate-ranker/internal/types"
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

// PrintJobRequirement outputs a human-readable summary of the job to match
// against.
func (p *Printer) PrintJobRequirement(job *types.JobRequirement) {
	if job == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title:    %s\n", job.Title))

	if job.RequiredExperience != nil {
		if job.RequiredExperience.MaxYears != nil {
			sb.WriteString(fmt.Sprintf("Experience: %.1f-%.1f years\n",
				job.RequiredExperience.MinYears, *job.RequiredExperience.MaxYears))
		} else {
			sb.WriteString(fmt.Sprintf("Experience: %.1f+ years\n", job.RequiredExperience.MinYears))
		}
	}

	if len(job.Skills) > 0 {
		sb.WriteString("\nRequired Skills:\n")
		count := min(len(job.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			skill := job.Skills[i]
			sb.WriteString(fmt.Sprintf("  • %s (weight %d)\n", skill.Name, skill.Weight))
		}
		if len(job.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(job.Skills)-maxItemsToShow))
		}
	}

	p.printBox("JOB REQUIREMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRankingOutcome outputs the top ranked candidates with scores and
// matched skills, plus any per-candidate failures.
func (p *Printer) PrintRankingOutcome(outcome *types.RankingOutcome) {
	if outcome == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Candidates ranked: %d of %d attempted\n\n",
		outcome.SuccessfullyMatched, outcome.TotalAttempted))

	count := min(len(outcome.Ranked), maxItemsToShow)
	for i := 0; i < count; i++ {
		result := outcome.Ranked[i]
		label := result.CandidateName
		if label == "" {
			label = result.CandidateIdentifier
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", result.Rank, label))
		sb.WriteString(fmt.Sprintf("    Overall: %.2f (skills %.2f, experience %.2f)\n",
			result.OverallScore, result.SkillMatchScore, result.ExperienceScore))
		if len(result.MatchedSkills) > 0 {
			names := make([]string, 0, len(result.MatchedSkills))
			for _, skill := range result.MatchedSkills {
				names = append(names, skill.Name)
			}
			skills := strings.Join(names, ", ")
			if len(skills) > 40 {
				skills = skills[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("    Skills: %s\n", skills))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(outcome.Ranked) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more candidates", len(outcome.Ranked)-maxItemsToShow))
	}

	p.printBox("RANKED CANDIDATES", sb.String())

	if len(outcome.Failed) > 0 {
		var fb strings.Builder
		fb.WriteString(fmt.Sprintf("Found %d failed candidates:\n\n", len(outcome.Failed)))
		for i, failure := range outcome.Failed {
			reason := failure.Reason
			if len(reason) > 45 {
				reason = reason[:42] + "..."
			}
			fb.WriteString(fmt.Sprintf("⚠ %s\n", failure.CandidateIdentifier))
			fb.WriteString(fmt.Sprintf("  %s\n", reason))
			if i < len(outcome.Failed)-1 {
				fb.WriteString("\n")
			}
		}
		p.printBox("FAILED CANDIDATES", fb.String())
	}
}
