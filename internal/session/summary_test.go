package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/tourpref/internal/category"
)

func TestBuildSummaryRanksCategories(t *testing.T) {
	state := State{
		SessionID: "s1",
		Answered:  6,
		Total:     6,
		Phase:     PhaseSucceeded,
		Scores: Scores{
			category.Aves:      1,
			category.Buceo:     3,
			category.Caminata:  1,
			category.Estrellas: 1,
		},
	}

	s := BuildSummary(state)
	assert.Equal(t, "s1", s.SessionID)
	assert.Len(t, s.Ranked, 4)
	assert.Equal(t, category.Buceo, s.Ranked[0].Category)
	assert.Equal(t, 3, s.Ranked[0].Score)

	// Ties keep table order.
	assert.Equal(t, []category.Category{category.Caminata, category.Aves, category.Estrellas},
		[]category.Category{s.Ranked[1].Category, s.Ranked[2].Category, s.Ranked[3].Category})

	assert.Len(t, s.Top(2), 2)
	assert.Len(t, s.Top(10), 4)
}

func TestBuildSummaryEmpty(t *testing.T) {
	s := BuildSummary(State{Phase: PhaseFailed, FailureMessage: "db down"})
	assert.Empty(t, s.Ranked)
	assert.Equal(t, "db down", s.FailureMessage)
}
