package questionbank

import "github.com/abhisek/tourpref/internal/category"

// Option is one selectable answer to a Question.
type Option struct {
	Text     string
	Category category.Category
}

// Question is a single preference question with its full option list.
type Question struct {
	Text    string
	Options []Option
}

// Clone returns a copy of q that shares no memory with it.
func (q Question) Clone() Question {
	opts := make([]Option, len(q.Options))
	copy(opts, q.Options)
	return Question{Text: q.Text, Options: opts}
}

// rawQuestion is the on-disk corpus record.
type rawQuestion struct {
	Pregunta string      `json:"pregunta" yaml:"pregunta"`
	Opciones []rawOption `json:"opciones" yaml:"opciones"`
}

type rawOption struct {
	Texto     string `json:"texto" yaml:"texto"`
	Categoria string `json:"categoria" yaml:"categoria"`
}
