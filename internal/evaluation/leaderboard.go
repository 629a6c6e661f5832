package evaluation

import (
	"sort"

	"github.com/legal-bench/backend/internal/models"
)

// ComputeLeaderboard groups results by model and ranks models by accuracy,
// descending. Ties keep encounter order, so the output is deterministic for
// a given result sequence.
func ComputeLeaderboard(results []models.EvaluationResult) []models.LeaderboardEntry {
	index := make(map[string]int)
	entries := []models.LeaderboardEntry{}

	for _, r := range results {
		i, ok := index[r.Model]
		if !ok {
			i = len(entries)
			index[r.Model] = i
			entries = append(entries, models.LeaderboardEntry{Model: r.Model})
		}
		entries[i].Total++
		if r.Correct {
			entries[i].Correct++
		}
	}

	for i := range entries {
		if entries[i].Total > 0 {
			entries[i].Accuracy = 100 * float64(entries[i].Correct) / float64(entries[i].Total)
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Accuracy > entries[j].Accuracy
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
