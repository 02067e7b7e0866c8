package category

import "encoding/json"

// IdentityField is the payload field carrying the tourist identifier.
const IdentityField = "TouristID"

// Payload is the fixed-width preference vector sent to the preferences API.
// It always carries every known short key.
type Payload struct {
	TouristID string
	Scores    map[string]int
}

// Expand builds the submission payload for identity from per-category scores.
// Every known short key is present; categories that were never scored, or
// score entries for unknown categories, contribute 0.
func Expand(scores map[Category]int, identity string) Payload {
	p := Payload{
		TouristID: identity,
		Scores:    make(map[string]int, len(table)),
	}
	for _, e := range table {
		p.Scores[e.key] = scores[e.category]
	}
	return p
}

// Get returns the score for a short key.
func (p Payload) Get(key string) int {
	return p.Scores[key]
}

// Total returns the sum of all scores in the payload.
func (p Payload) Total() int {
	total := 0
	for _, v := range p.Scores {
		total += v
	}
	return total
}

// MarshalJSON flattens the payload into a single object:
// {"TouristID": "...", "tour": 0, "caminata": 2, ...}.
func (p Payload) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(table)+1)
	flat[IdentityField] = p.TouristID
	for _, e := range table {
		flat[e.key] = p.Scores[e.key]
	}
	return json.Marshal(flat)
}
