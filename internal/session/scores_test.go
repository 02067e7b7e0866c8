package session

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/tourpref/internal/category"
)

func TestIncrementDoesNotMutateInput(t *testing.T) {
	in := Scores{category.Buceo: 1}
	out := Increment(in, category.Buceo)

	assert.Equal(t, 1, in[category.Buceo])
	assert.Equal(t, 2, out[category.Buceo])
}

func TestIncrementNilCreatesKey(t *testing.T) {
	out := Increment(nil, category.Aves)
	assert.Equal(t, Scores{category.Aves: 1}, out)
}

func TestIncrementOrderIndependent(t *testing.T) {
	answers := []category.Category{
		category.Buceo, category.Aves, category.Buceo, category.Kayak,
		category.Templos, category.Aves, category.Buceo, category.Estrellas,
	}

	var want Scores
	for _, c := range answers {
		want = Increment(want, c)
	}

	r := rand.New(rand.NewPCG(5, 6))
	for i := 0; i < 20; i++ {
		shuffled := append([]category.Category(nil), answers...)
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		var got Scores
		for _, c := range shuffled {
			got = Increment(got, c)
		}
		assert.Equal(t, want, got)
	}
	assert.Equal(t, len(answers), want.Total())
}

func TestScoresKeyedSkipsUnknown(t *testing.T) {
	s := Scores{category.Buceo: 2, category.Category(99): 5}
	assert.Equal(t, map[string]int{"buceo": 2}, s.Keyed())
}
