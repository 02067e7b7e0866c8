// Package questionbank holds the preference question corpus.
package questionbank

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/tourpref/internal/category"
)

//go:embed questions.json
var defaultCorpus []byte

// Format identifies the encoding of a corpus file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrEmptyCorpus is returned when a corpus contains no questions.
var ErrEmptyCorpus = errors.New("question corpus is empty")

// Bank is an immutable, validated question corpus.
type Bank struct {
	questions []Question
}

// Default returns the built-in corpus.
func Default() (*Bank, error) {
	return Load(defaultCorpus, FormatJSON)
}

// LoadFile reads a corpus from path. The format is chosen by extension:
// .yaml and .yml are YAML, anything else is JSON.
func LoadFile(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	return Load(data, FormatFromPath(path))
}

// FormatFromPath guesses a corpus format from a file name.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load decodes, schema-validates and category-checks a corpus.
func Load(data []byte, format Format) (*Bank, error) {
	var raw []rawQuestion
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decode yaml corpus: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decode json corpus: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported corpus format %q", format)
	}

	if len(raw) == 0 {
		return nil, ErrEmptyCorpus
	}
	if err := validateRaw(raw); err != nil {
		return nil, err
	}

	questions := make([]Question, 0, len(raw))
	for i, rq := range raw {
		q := Question{
			Text:    strings.TrimSpace(rq.Pregunta),
			Options: make([]Option, 0, len(rq.Opciones)),
		}
		for j, ro := range rq.Opciones {
			c, err := category.Parse(ro.Categoria)
			if err != nil {
				return nil, fmt.Errorf("question %d option %d: %w", i+1, j+1, err)
			}
			q.Options = append(q.Options, Option{Text: strings.TrimSpace(ro.Texto), Category: c})
		}
		questions = append(questions, q)
	}

	return New(questions)
}

// New builds a Bank from already-typed questions, enforcing that every
// question has text, at least one option, and only known categories.
func New(questions []Question) (*Bank, error) {
	if len(questions) == 0 {
		return nil, ErrEmptyCorpus
	}

	qs := make([]Question, len(questions))
	for i, q := range questions {
		if strings.TrimSpace(q.Text) == "" {
			return nil, fmt.Errorf("question %d: empty text", i+1)
		}
		if len(q.Options) == 0 {
			return nil, fmt.Errorf("question %d: no options", i+1)
		}
		for j, o := range q.Options {
			if !o.Category.Valid() {
				return nil, fmt.Errorf("question %d option %d: unknown category %d", i+1, j+1, o.Category)
			}
		}
		qs[i] = q.Clone()
	}
	return &Bank{questions: qs}, nil
}

// Questions returns a copy of the corpus.
func (b *Bank) Questions() []Question {
	out := make([]Question, len(b.questions))
	for i, q := range b.questions {
		out[i] = q.Clone()
	}
	return out
}

// Len returns the number of questions in the corpus.
func (b *Bank) Len() int {
	return len(b.questions)
}

// CategoryCoverage counts how many options across the corpus feed each
// category. Categories no option feeds are present with a count of 0.
func (b *Bank) CategoryCoverage() map[category.Category]int {
	cov := make(map[category.Category]int)
	for _, c := range category.All() {
		cov[c] = 0
	}
	for _, q := range b.questions {
		for _, o := range q.Options {
			cov[o.Category]++
		}
	}
	return cov
}
