// Package bank holds the question bank: numbered exercises, each with a
// prompt and a reference solution, plus the shared setup script that
// builds the practice dataset. A default bank ships embedded; deployments
// can load their own from a YAML file.
package bank

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Question is one exercise.
type Question struct {
	ID         int    `yaml:"id" json:"id"`
	Prompt     string `yaml:"prompt" json:"prompt"`
	Difficulty string `yaml:"difficulty" json:"difficulty"`
	Reference  string `yaml:"reference" json:"-"`
}

// Bank is an immutable set of questions over one shared dataset.
type Bank struct {
	setup     string
	questions map[int]Question
}

type bankFile struct {
	Setup     string     `yaml:"setup"`
	Questions []Question `yaml:"questions"`
}

// Load reads a bank from a YAML file with a `setup` script and a
// `questions` list.
func Load(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read question bank: %w", err)
	}
	return Parse(data)
}

// Parse builds a bank from YAML bytes.
func Parse(data []byte) (*Bank, error) {
	var f bankFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse question bank: %w", err)
	}
	if len(f.Questions) == 0 {
		return nil, fmt.Errorf("question bank contains no questions")
	}

	b := &Bank{setup: f.Setup, questions: make(map[int]Question, len(f.Questions))}
	for _, q := range f.Questions {
		if q.ID <= 0 {
			return nil, fmt.Errorf("question %q has no positive id", q.Prompt)
		}
		if _, dup := b.questions[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %d", q.ID)
		}
		if q.Reference == "" {
			return nil, fmt.Errorf("question %d has no reference solution", q.ID)
		}
		b.questions[q.ID] = q
	}
	return b, nil
}

// SetupSQL returns the shared dataset script.
func (b *Bank) SetupSQL() string {
	return b.setup
}

// Get returns the question with the given id.
func (b *Bank) Get(id int) (Question, error) {
	q, ok := b.questions[id]
	if !ok {
		return Question{}, fmt.Errorf("unknown question %d", id)
	}
	return q, nil
}

// All returns the questions ordered by id.
func (b *Bank) All() []Question {
	out := make([]Question, 0, len(b.questions))
	for _, q := range b.questions {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of questions.
func (b *Bank) Len() int {
	return len(b.questions)
}
