package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jonathan/candidate-ranker/internal/types"
)

func sampleOutcome() *types.RankingOutcome {
	return &types.RankingOutcome{
		Ranked: []types.MatchResult{
			{
				CandidateIdentifier: "cand_a",
				CandidateName:       "Alice",
				Rank:                1,
				OverallScore:        100.0,
				SkillMatchScore:     100.0,
				ExperienceScore:     100.0,
				MatchedSkills:       []types.WeightedSkill{{Name: "Python", Weight: 50}, {Name: "SQL", Weight: 50}},
				ExperienceDetected:  true,
			},
			{
				CandidateIdentifier: "cand_b",
				Rank:                2,
				OverallScore:        45.0,
				SkillMatchScore:     50.0,
				ExperienceScore:     33.33,
				MatchedSkills:       []types.WeightedSkill{{Name: "Python", Weight: 50}},
				MissingSkills:       []types.WeightedSkill{{Name: "SQL", Weight: 50}},
				ExperienceDetected:  true,
			},
		},
		Failed: []types.FailedCandidate{
			{CandidateIdentifier: "cand_c", Reason: "candidate has no identifier"},
		},
		TotalAttempted:      3,
		SuccessfullyMatched: 2,
	}
}

func TestWriteCSVProducesRankedRows(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteCSV(&buf, sampleOutcome()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, []string{
		"Rank", "Candidate Name", "Filename",
		"Overall Score", "Skill Match Score", "Experience Score",
		"Matched Skills", "Missing Skills", "Experience Detected",
	}, records[0])
	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "Alice", records[1][1])
	assert.Equal(t, "cand_a", records[1][2])
	assert.Equal(t, "100.00", records[1][3])
	assert.Equal(t, "Python; SQL", records[1][6])
	assert.Equal(t, "cand_b", records[2][2])
	assert.Equal(t, "SQL", records[2][7])
}

func TestWriteCSVEmptyOutcome(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteCSV(&buf, &types.RankingOutcome{}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1) // header only
}

func TestWriteJSONRoundTrips(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteJSON(&buf, sampleOutcome()))

	var decoded types.RankingOutcome
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Len(t, decoded.Ranked, 2)
	assert.Len(t, decoded.Failed, 1)
	assert.Equal(t, 3, decoded.TotalAttempted)
	assert.Equal(t, "cand_a", decoded.Ranked[0].CandidateIdentifier)
}

func TestExportToExcelWritesWorkbook(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "results.xlsx")

	require.NoError(t, ExportToExcel(sampleOutcome(), "Backend Engineer", outputPath))

	f, err := excelize.OpenFile(outputPath)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, "Summary")
	assert.Contains(t, sheets, "Ranked Candidates")

	identifier, err := f.GetCellValue("Ranked Candidates", "B2")
	require.NoError(t, err)
	assert.Equal(t, "cand_a", identifier)
}

func TestExportToExcelAppendsExtension(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "results")

	require.NoError(t, ExportToExcel(sampleOutcome(), "Backend Engineer", outputPath))

	_, err := excelize.OpenFile(outputPath + ".xlsx")
	assert.NoError(t, err)
}
