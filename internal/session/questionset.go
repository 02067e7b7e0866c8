package session

import "github.com/abhisek/tourpref/internal/questionbank"

// QuestionSet is the ordered list of questions served in one session. It is
// immutable once built; accessors hand out copies.
type QuestionSet struct {
	questions []questionbank.Question
}

// NewQuestionSet builds a set from questions, copying them.
func NewQuestionSet(questions []questionbank.Question) QuestionSet {
	qs := make([]questionbank.Question, len(questions))
	for i, q := range questions {
		qs[i] = q.Clone()
	}
	return QuestionSet{questions: qs}
}

// Len returns the number of questions.
func (s QuestionSet) Len() int {
	return len(s.questions)
}

// At returns a copy of the i-th question.
func (s QuestionSet) At(i int) (questionbank.Question, bool) {
	if i < 0 || i >= len(s.questions) {
		return questionbank.Question{}, false
	}
	return s.questions[i].Clone(), true
}

// All returns a copy of every question in order.
func (s QuestionSet) All() []questionbank.Question {
	out := make([]questionbank.Question, len(s.questions))
	for i, q := range s.questions {
		out[i] = q.Clone()
	}
	return out
}
