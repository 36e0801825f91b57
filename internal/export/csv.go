// Package export renders ranking outcomes as CSV, JSON, and Excel files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jonathan/candidate-ranker/internal/types"
)

var csvHeader = []string{
	"Rank", "Candidate Name", "Filename",
	"Overall Score", "Skill Match Score", "Experience Score",
	"Matched Skills", "Missing Skills", "Experience Detected",
}

// WriteCSV writes the ranked results as CSV, best candidate first.
func WriteCSV(w io.Writer, outcome *types.RankingOutcome) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range outcome.Ranked {
		record := []string{
			strconv.Itoa(result.Rank),
			result.CandidateName,
			result.CandidateIdentifier,
			formatScore(result.OverallScore),
			formatScore(result.SkillMatchScore),
			formatScore(result.ExperienceScore),
			joinSkillNames(result.MatchedSkills),
			joinSkillNames(result.MissingSkills),
			strconv.FormatBool(result.ExperienceDetected),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record for %s: %w", result.CandidateIdentifier, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 2, 64)
}

func joinSkillNames(skills []types.WeightedSkill) string {
	names := make([]string, 0, len(skills))
	for _, skill := range skills {
		names = append(names, skill.Name)
	}
	return strings.Join(names, "; ")
}
