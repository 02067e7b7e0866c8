package session

import "github.com/abhisek/tourpref/internal/category"

// Scores counts answers per category. Values only grow.
type Scores map[category.Category]int

// Increment returns a copy of scores with c incremented by one. The input is
// not modified; a nil map is treated as empty.
func Increment(scores Scores, c category.Category) Scores {
	next := scores.Clone()
	next[c]++
	return next
}

// Clone returns an independent copy.
func (s Scores) Clone() Scores {
	out := make(Scores, len(s)+1)
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Total returns the number of answers counted.
func (s Scores) Total() int {
	total := 0
	for _, v := range s {
		total += v
	}
	return total
}

// Keyed converts the scores to short-key form for event records.
func (s Scores) Keyed() map[string]int {
	out := make(map[string]int, len(s))
	for c, v := range s {
		if c.Valid() {
			out[c.Key()] = v
		}
	}
	return out
}
