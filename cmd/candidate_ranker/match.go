package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-ranker/internal/config"
	"github.com/jonathan/candidate-ranker/internal/export"
	"github.com/jonathan/candidate-ranker/internal/matching"
	"github.com/jonathan/candidate-ranker/internal/observability"
	"github.com/jonathan/candidate-ranker/internal/parsing"
	"github.com/jonathan/candidate-ranker/internal/schemas"
	"github.com/jonathan/candidate-ranker/internal/types"
)

var (
	matchJobPath        string
	matchCandidatesPath string
	matchOutPath        string
	matchCSVPath        string
	matchXLSXPath       string
	matchWorkers        int
	matchConfig         string
	matchVerbose        bool
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank candidates against a job description",
	Long: `Score a batch of structured resumes against a job description and print
the ranked results. Results can additionally be written as JSON, CSV, or
Excel files.`,
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringVar(&matchJobPath, "job", "", "Path to job description JSON file (required)")
	matchCmd.Flags().StringVar(&matchCandidatesPath, "candidates", "", "Path to JSON file with an array of candidate payloads (required)")
	matchCmd.Flags().StringVar(&matchOutPath, "out", "", "Write full outcome as JSON to this path")
	matchCmd.Flags().StringVar(&matchCSVPath, "csv", "", "Write ranked results as CSV to this path")
	matchCmd.Flags().StringVar(&matchXLSXPath, "xlsx", "", "Write ranked results as an Excel workbook to this path")
	matchCmd.Flags().IntVar(&matchWorkers, "workers", 0, "Concurrent candidates scored")
	matchCmd.Flags().StringVar(&matchConfig, "config", "", "Path to JSON config file")
	matchCmd.Flags().BoolVar(&matchVerbose, "verbose", false, "Print detailed matching output")
	_ = matchCmd.MarkFlagRequired("job")
	_ = matchCmd.MarkFlagRequired("candidates")
	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	cfg := config.Config{}
	if matchConfig != "" {
		loaded, err := config.LoadConfig(matchConfig)
		if err != nil {
			return err
		}
		cfg = *loaded
	}
	cfg = cfg.MergeWithDefaults(config.Defaults())
	if err := cfg.Validate(); err != nil {
		return err
	}

	job, err := loadJob(matchJobPath, cfg.DefaultSkillWeight)
	if err != nil {
		return err
	}

	candidates, err := loadCandidates(matchCandidatesPath)
	if err != nil {
		return err
	}

	workers := matchWorkers
	if workers <= 0 {
		workers = cfg.Workers
	}

	if matchVerbose {
		observability.NewPrinter(os.Stdout).PrintJobRequirement(job)
	}

	outcome, err := matching.RunMatching(cmd.Context(), job, candidates, matching.Options{
		Workers: workers,
		Weights: matching.Weights{Skill: cfg.SkillWeight, Experience: cfg.ExperienceWeight},
	})
	if err != nil {
		return fmt.Errorf("matching failed: %w", err)
	}

	observability.NewPrinter(os.Stdout).PrintRankingOutcome(outcome)

	if matchOutPath != "" {
		file, err := os.Create(matchOutPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()
		if err := export.WriteJSON(file, outcome); err != nil {
			return err
		}
		fmt.Printf("JSON written to %s\n", matchOutPath)
	}

	if matchCSVPath != "" {
		file, err := os.Create(matchCSVPath)
		if err != nil {
			return fmt.Errorf("failed to create CSV file: %w", err)
		}
		defer file.Close()
		if err := export.WriteCSV(file, outcome); err != nil {
			return err
		}
		fmt.Printf("CSV written to %s\n", matchCSVPath)
	}

	if matchXLSXPath != "" {
		if err := export.ExportToExcel(outcome, job.Title, matchXLSXPath); err != nil {
			return err
		}
		fmt.Printf("Excel workbook written to %s\n", matchXLSXPath)
	}

	return nil
}

// loadJob reads, validates, and normalizes a job description file.
func loadJob(path string, defaultWeight int) (*types.JobRequirement, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}
	if err := schemas.ValidateJobPayload(payload); err != nil {
		return nil, err
	}
	return parsing.IngestJob(payload, defaultWeight)
}

// loadCandidates reads a JSON array of candidate payloads and normalizes
// each entry.
func loadCandidates(path string) ([]*types.CandidateProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read candidates file: %w", err)
	}

	var payloads []json.RawMessage
	if err := json.Unmarshal(data, &payloads); err != nil {
		return nil, fmt.Errorf("candidates file must contain a JSON array: %w", err)
	}

	profiles := make([]*types.CandidateProfile, 0, len(payloads))
	for i, payload := range payloads {
		if err := schemas.ValidateCandidatePayload(payload); err != nil {
			return nil, fmt.Errorf("candidate %d: %w", i, err)
		}
		profile, err := parsing.IngestCandidate(payload)
		if err != nil {
			return nil, fmt.Errorf("candidate %d: %w", i, err)
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}
