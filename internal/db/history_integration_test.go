//go:build integration

package db

import (
	"context"
	"testing"
)

func snapshotInput(session *Session, topScore float64) *HistorySnapshotInput {
	name := "Alice"
	average := topScore - 10
	return &HistorySnapshotInput{
		SessionID:         session.ID,
		JobTitle:          session.JobTitle,
		TotalCandidates:   3,
		MatchedCandidates: 2,
		FailedCandidates:  1,
		TopCandidateName:  &name,
		TopCandidateScore: &topScore,
		AverageScore:      &average,
		Summary:           map[string]any{"top_score": topScore},
	}
}

func TestIntegration_HistorySnapshotSurvivesSessionChanges(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	session := createTestSession(t, db, "Integration Test History")

	record, err := db.SaveHistorySnapshot(ctx, snapshotInput(session, 92.5))
	if err != nil {
		t.Fatalf("SaveHistorySnapshot failed: %v", err)
	}

	// Mutating the session afterwards must not touch the snapshot.
	if _, err := db.SetSessionWeights(ctx, session.ID, map[string]int{"python": 10}); err != nil {
		t.Fatalf("SetSessionWeights failed: %v", err)
	}

	fetched, err := db.GetHistoryBySession(ctx, session.ID)
	if err != nil {
		t.Fatalf("GetHistoryBySession failed: %v", err)
	}
	if fetched == nil {
		t.Fatal("Expected history record, got nil")
	}
	if fetched.ID != record.ID {
		t.Errorf("Expected snapshot %s, got %s", record.ID, fetched.ID)
	}
	if fetched.TopCandidateScore == nil || *fetched.TopCandidateScore != 92.5 {
		t.Error("Expected snapshot score to be unchanged by session mutation")
	}
	if fetched.Summary == nil {
		t.Error("Expected summary JSON to round-trip")
	}
}

func TestIntegration_GetHistoryBySessionReturnsLatest(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	session := createTestSession(t, db, "Integration Test History Latest")

	if _, err := db.SaveHistorySnapshot(ctx, snapshotInput(session, 60.0)); err != nil {
		t.Fatalf("SaveHistorySnapshot (first) failed: %v", err)
	}
	second, err := db.SaveHistorySnapshot(ctx, snapshotInput(session, 85.0))
	if err != nil {
		t.Fatalf("SaveHistorySnapshot (second) failed: %v", err)
	}

	fetched, err := db.GetHistoryBySession(ctx, session.ID)
	if err != nil {
		t.Fatalf("GetHistoryBySession failed: %v", err)
	}
	if fetched == nil {
		t.Fatal("Expected history record, got nil")
	}
	if fetched.ID != second.ID {
		t.Error("Expected the most recent snapshot")
	}
}

func TestIntegration_ListHistoryCapped(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	session := createTestSession(t, db, "Integration Test History Cap")

	for i := 0; i < maxHistoryRecords+5; i++ {
		if _, err := db.SaveHistorySnapshot(ctx, snapshotInput(session, float64(i))); err != nil {
			t.Fatalf("SaveHistorySnapshot %d failed: %v", i, err)
		}
	}

	records, err := db.ListHistory(ctx, 0)
	if err != nil {
		t.Fatalf("ListHistory failed: %v", err)
	}
	if len(records) != maxHistoryRecords {
		t.Errorf("Expected listing capped at %d, got %d", maxHistoryRecords, len(records))
	}

	limited, err := db.ListHistory(ctx, 5)
	if err != nil {
		t.Fatalf("ListHistory with limit failed: %v", err)
	}
	if len(limited) != 5 {
		t.Errorf("Expected 5 records, got %d", len(limited))
	}
}
