package evaluation

import (
	"testing"

	"github.com/legal-bench/backend/internal/models"
)

func result(model string, correct bool) models.EvaluationResult {
	return models.EvaluationResult{Model: model, Correct: correct, Selected: "A"}
}

func TestComputeLeaderboard_RanksByAccuracy(t *testing.T) {
	// Model One: 2/3. Model Two: 1/1. Fewer attempts, higher accuracy, wins.
	results := []models.EvaluationResult{
		result("Model One", true),
		result("Model One", true),
		result("Model One", false),
		result("Model Two", true),
	}

	board := ComputeLeaderboard(results)
	if len(board) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(board))
	}

	top := board[0]
	if top.Model != "Model Two" || top.Rank != 1 {
		t.Errorf("expected Model Two at rank 1, got %+v", top)
	}
	if top.Correct != 1 || top.Total != 1 || top.Accuracy != 100 {
		t.Errorf("unexpected top entry: %+v", top)
	}

	second := board[1]
	if second.Model != "Model One" || second.Rank != 2 {
		t.Errorf("expected Model One at rank 2, got %+v", second)
	}
	if second.Correct != 2 || second.Total != 3 {
		t.Errorf("unexpected second entry: %+v", second)
	}
	wantAcc := 100 * 2.0 / 3.0
	if second.Accuracy != wantAcc {
		t.Errorf("expected accuracy %v, got %v", wantAcc, second.Accuracy)
	}
}

func TestComputeLeaderboard_TiesKeepEncounterOrder(t *testing.T) {
	results := []models.EvaluationResult{
		result("Beta", true),
		result("Alpha", true),
	}

	board := ComputeLeaderboard(results)
	if board[0].Model != "Beta" || board[1].Model != "Alpha" {
		t.Errorf("ties should keep encounter order, got %s then %s", board[0].Model, board[1].Model)
	}
	if board[0].Rank != 1 || board[1].Rank != 2 {
		t.Errorf("ranks should still be 1..N: %d, %d", board[0].Rank, board[1].Rank)
	}
}

func TestComputeLeaderboard_ErroredResultsCountAgainst(t *testing.T) {
	results := []models.EvaluationResult{
		result("Model One", true),
		{Model: "Model One", Selected: models.SelectedError, Error: "timeout"},
	}

	board := ComputeLeaderboard(results)
	if board[0].Total != 2 || board[0].Correct != 1 {
		t.Errorf("errored attempt should stay in the denominator: %+v", board[0])
	}
	if board[0].Accuracy != 50 {
		t.Errorf("expected 50%% accuracy, got %v", board[0].Accuracy)
	}
}

func TestComputeLeaderboard_Idempotent(t *testing.T) {
	results := []models.EvaluationResult{
		result("Model One", true),
		result("Model Two", false),
		result("Model One", false),
	}

	first := ComputeLeaderboard(results)
	second := ComputeLeaderboard(results)

	if len(first) != len(second) {
		t.Fatalf("entry counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("entry %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestComputeLeaderboard_Empty(t *testing.T) {
	board := ComputeLeaderboard(nil)
	if len(board) != 0 {
		t.Errorf("expected empty leaderboard, got %d entries", len(board))
	}
}
