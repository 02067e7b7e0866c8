package session

import (
	"sort"

	"github.com/abhisek/tourpref/internal/category"
)

// CategoryScore is one ranked line of the summary.
type CategoryScore struct {
	Category category.Category
	Label    string
	Score    int
}

// Summary holds the data displayed once a session finishes.
type Summary struct {
	SessionID      string
	Answered       int
	Total          int
	Phase          Phase
	FailureMessage string

	// Ranked lists scored categories, highest first. Ties keep the
	// category table order.
	Ranked []CategoryScore
}

// BuildSummary creates a Summary from a session state.
func BuildSummary(state State) Summary {
	var ranked []CategoryScore
	for _, c := range category.All() {
		if n := state.Scores[c]; n > 0 {
			ranked = append(ranked, CategoryScore{Category: c, Label: c.Label(), Score: n})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return Summary{
		SessionID:      state.SessionID,
		Answered:       state.Answered,
		Total:          state.Total,
		Phase:          state.Phase,
		FailureMessage: state.FailureMessage,
		Ranked:         ranked,
	}
}

// Top returns at most n leading categories.
func (s Summary) Top(n int) []CategoryScore {
	if n < 0 || n >= len(s.Ranked) {
		return s.Ranked
	}
	return s.Ranked[:n]
}
