package parsing

import (
	"strings"
	"unicode"

	"github.com/jonathan/candidate-ranker/internal/types"
)

// skillSynonyms folds common variants onto one canonical normalized form.
// Keys and values are both in normalized form, so folding keeps
// NormalizeSkillName idempotent.
var skillSynonyms = map[string]string{
	"golang":              "go",
	"go lang":             "go",
	"js":                  "javascript",
	"ecmascript":          "javascript",
	"ts":                  "typescript",
	"k8s":                 "kubernetes",
	"reactjs":             "react",
	"react js":            "react",
	"vuejs":               "vue",
	"vue js":              "vue",
	"nodejs":              "node js",
	"node":                "node js",
	"postgres":            "postgresql",
	"psql":                "postgresql",
	"mongo":               "mongodb",
	"my sql":              "mysql",
	"c sharp":             "c#",
	"csharp":              "c#",
	"amazon web services": "aws",
}

// NormalizeSkillName canonicalizes a skill name for comparison: lower-case,
// surrounding whitespace and punctuation stripped, internal whitespace
// collapsed to single spaces, then common synonyms folded. Two skill strings
// name the same skill iff their normalized forms are equal. Empty input
// normalizes to the empty string, which never matches any job skill.
func NormalizeSkillName(raw string) string {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "" {
		return ""
	}

	// Strip surrounding punctuation but keep interior characters like the
	// "#" in "c#" meaningful.
	normalized = strings.TrimFunc(normalized, func(r rune) bool {
		return unicode.IsPunct(r) && r != '#' && r != '+'
	})

	// Treat separator punctuation as whitespace, then collapse runs.
	normalized = strings.Map(func(r rune) rune {
		switch r {
		case '.', ',', '/', '\\', '-', '_':
			return ' '
		}
		return r
	}, normalized)
	normalized = strings.Join(strings.Fields(normalized), " ")

	if canonical, ok := skillSynonyms[normalized]; ok {
		return canonical
	}
	return normalized
}

// DedupeWeightedSkills deduplicates job skills by normalized name, keeping the
// highest assigned weight for each name so duplicates never double-count in a
// weight total. Ordering and display names of first occurrences are preserved.
func DedupeWeightedSkills(skills []types.WeightedSkill) []types.WeightedSkill {
	if len(skills) == 0 {
		return skills
	}

	deduped := make([]types.WeightedSkill, 0, len(skills))
	seen := make(map[string]int) // normalized name -> index in deduped

	for _, skill := range skills {
		normalized := NormalizeSkillName(skill.Name)
		if normalized == "" {
			continue
		}
		if idx, exists := seen[normalized]; exists {
			if skill.Weight > deduped[idx].Weight {
				deduped[idx].Weight = skill.Weight
			}
			continue
		}
		deduped = append(deduped, skill)
		seen[normalized] = len(deduped) - 1
	}

	return deduped
}
