package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jonathan/candidate-ranker/internal/types"
)

// ExportToExcel writes the ranking outcome as an Excel workbook with a
// summary sheet and a ranked candidates sheet.
func ExportToExcel(outcome *types.RankingOutcome, jobTitle, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		outputPath = outputPath + ".xlsx"
	}
	outputPath = filepath.Clean(outputPath)

	summarySheet := "Summary"
	candidatesSheet := "Ranked Candidates"

	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(candidatesSheet); err != nil {
		return fmt.Errorf("failed to create candidates sheet: %w", err)
	}

	if err := writeSummarySheet(f, summarySheet, outcome, jobTitle); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := writeCandidatesSheet(f, candidatesSheet, outcome); err != nil {
		return fmt.Errorf("failed to create ranked candidates sheet: %w", err)
	}

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, sheetName string, outcome *types.RankingOutcome, jobTitle string) error {
	f.SetColWidth(sheetName, "A", "A", 28)
	f.SetColWidth(sheetName, "B", "B", 45)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	labelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}

	row := 1
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Candidate Ranking Report")
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), headerStyle)
	f.MergeCell(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row))
	row += 2

	setLabeled := func(label string, value any) {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), label)
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), labelStyle)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), value)
		row++
	}

	setLabeled("Job Title:", jobTitle)
	setLabeled("Generated:", time.Now().Format("2006-01-02 15:04:05"))
	setLabeled("Candidates Attempted:", outcome.TotalAttempted)
	setLabeled("Candidates Ranked:", outcome.SuccessfullyMatched)
	setLabeled("Candidates Failed:", len(outcome.Failed))

	if top := outcome.TopCandidate(); top != nil {
		topName := top.CandidateName
		if topName == "" {
			topName = top.CandidateIdentifier
		}
		setLabeled("Top Candidate:", topName)
		setLabeled("Top Score:", formatScore(top.OverallScore))
		setLabeled("Average Score:", formatScore(outcome.AverageScore()))
	}

	if len(outcome.Failed) > 0 {
		row++
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Failed Candidates")
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), headerStyle)
		f.MergeCell(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row))
		row++
		for _, failure := range outcome.Failed {
			setLabeled(failure.CandidateIdentifier+":", failure.Reason)
		}
	}

	return nil
}

func writeCandidatesSheet(f *excelize.File, sheetName string, outcome *types.RankingOutcome) error {
	f.SetColWidth(sheetName, "A", "A", 8)
	f.SetColWidth(sheetName, "B", "B", 28)
	f.SetColWidth(sheetName, "C", "C", 25)
	f.SetColWidth(sheetName, "D", "F", 15)
	f.SetColWidth(sheetName, "G", "H", 40)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	strongStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"C6EFCE"}, Pattern: 1},
	})
	moderateStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFEB9C"}, Pattern: 1},
	})
	weakStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1},
	})

	headers := []string{"Rank", "Identifier", "Name", "Overall", "Skills", "Experience", "Matched Skills", "Missing Skills"}
	for col, header := range headers {
		cell := fmt.Sprintf("%s1", string(rune('A'+col)))
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for i, result := range outcome.Ranked {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), result.Rank)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), result.CandidateIdentifier)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), result.CandidateName)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), formatScore(result.OverallScore))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), formatScore(result.SkillMatchScore))
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), formatScore(result.ExperienceScore))
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), joinSkillNames(result.MatchedSkills))
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), joinSkillNames(result.MissingSkills))

		var style int
		switch {
		case result.OverallScore >= 70:
			style = strongStyle
		case result.OverallScore >= 40:
			style = moderateStyle
		default:
			style = weakStyle
		}
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("H%d", row), style)
	}

	if len(outcome.Ranked) > 0 {
		f.AutoFilter(sheetName, fmt.Sprintf("A1:H%d", len(outcome.Ranked)+1), []excelize.AutoFilterOptions{})
	}

	f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	return nil
}
