// internal/words/words.go
//
// Word list and clue table for the word elimination guesser.
//
// Responsibilities:
//   - Load the table from a YAML file (GUESSR_WORDS_FILE) or fall back to the
//     embedded default in the assets package.
//   - Normalize and validate words and clues.
//   - Expose the ordered clue table; order is part of the table and is never
//     shuffled, so a round is reproducible from its answers.
//
// Table file format:
//
//	words: [apple, chair, ...]
//	clues:
//	  - question: Is it an animal?
//	    one_of: [elephant, tiger]
//	  - question: Is it an object?
//	    none_of: [elephant, tiger, apple]
//
// Constraints:
//   • Words are lowercase a–z, unique.
//   • Every clue has a question and exactly one of one_of / none_of.
//   • Every word a clue references is in the word list.

package words

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/robalobadob/guessr/assets"
)

// ErrInvalidTable is wrapped by every validation failure from Parse.
var ErrInvalidTable = errors.New("words: invalid table")

// Predicate decides whether a clue holds for a word.
type Predicate interface {
	Eval(word string) (bool, error)
}

// PredicateFunc adapts a plain function to Predicate.
type PredicateFunc func(word string) (bool, error)

// Eval calls f(word).
func (f PredicateFunc) Eval(word string) (bool, error) { return f(word) }

// OneOf holds for exactly the listed words.
type OneOf map[string]struct{}

// NewOneOf builds a OneOf predicate.
func NewOneOf(list ...string) OneOf { return OneOf(toSet(list)) }

// Eval implements Predicate.
func (o OneOf) Eval(word string) (bool, error) {
	_, ok := o[word]
	return ok, nil
}

// NoneOf holds for every word except the listed ones.
type NoneOf map[string]struct{}

// NewNoneOf builds a NoneOf predicate.
func NewNoneOf(list ...string) NoneOf { return NoneOf(toSet(list)) }

// Eval implements Predicate.
func (n NoneOf) Eval(word string) (bool, error) {
	_, ok := n[word]
	return !ok, nil
}

// Clue is a static yes/no question and the predicate answering it for a word.
type Clue struct {
	Question  string
	Predicate Predicate
}

// Table is the word list plus its ordered clue table. Read-only once built.
type Table struct {
	Words []string
	Clues []Clue

	set map[string]struct{}
}

// NewTable builds a table from code. Words are normalized like file input.
func NewTable(list []string, clues []Clue) (*Table, error) {
	ws, err := normalizeWords(list)
	if err != nil {
		return nil, err
	}
	for i, c := range clues {
		if strings.TrimSpace(c.Question) == "" || c.Predicate == nil {
			return nil, fmt.Errorf("%w: clue %d needs a question and a predicate", ErrInvalidTable, i+1)
		}
	}
	return &Table{Words: ws, Clues: clues, set: toSet(ws)}, nil
}

// Contains reports whether w (any case) is in the word list.
func (t *Table) Contains(w string) bool {
	_, ok := t.set[Normalize(w)]
	return ok
}

// Clue returns the clue at i, or false once the table is exhausted.
func (t *Table) Clue(i int) (Clue, bool) {
	if i < 0 || i >= len(t.Clues) {
		return Clue{}, false
	}
	return t.Clues[i], true
}

// All returns a fresh copy of the full word list, in table order.
func (t *Table) All() []string {
	return append([]string(nil), t.Words...)
}

// Stats returns counts of loaded words and clues.
func (t *Table) Stats() (wordCount int, clueCount int) {
	return len(t.Words), len(t.Clues)
}

// Load reads the table at path, or the embedded default when path is empty.
func Load(path string) (*Table, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read word table %s: %w", path, err)
	}
	return Parse(data)
}

// Default parses the embedded default table.
func Default() (*Table, error) {
	data, err := assets.DefaultTable()
	if err != nil {
		return nil, fmt.Errorf("read embedded word table: %w", err)
	}
	return Parse(data)
}

// tableFile mirrors the YAML layout.
type tableFile struct {
	Words []string   `yaml:"words"`
	Clues []clueFile `yaml:"clues"`
}

type clueFile struct {
	Question string   `yaml:"question"`
	OneOf    []string `yaml:"one_of"`
	NoneOf   []string `yaml:"none_of"`
}

// Parse decodes and validates a YAML table.
func Parse(data []byte) (*Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}
	ws, err := normalizeWords(f.Words)
	if err != nil {
		return nil, err
	}
	set := toSet(ws)

	clues := make([]Clue, 0, len(f.Clues))
	for i, cf := range f.Clues {
		q := strings.TrimSpace(cf.Question)
		if q == "" {
			return nil, fmt.Errorf("%w: clue %d has no question", ErrInvalidTable, i+1)
		}
		if (len(cf.OneOf) > 0) == (len(cf.NoneOf) > 0) {
			return nil, fmt.Errorf("%w: clue %q needs exactly one of one_of/none_of", ErrInvalidTable, q)
		}
		ref := cf.OneOf
		if len(cf.NoneOf) > 0 {
			ref = cf.NoneOf
		}
		listed := make([]string, 0, len(ref))
		for _, w := range ref {
			w = Normalize(w)
			if _, ok := set[w]; !ok {
				return nil, fmt.Errorf("%w: clue %q references unknown word %q", ErrInvalidTable, q, w)
			}
			listed = append(listed, w)
		}
		var p Predicate = NewOneOf(listed...)
		if len(cf.NoneOf) > 0 {
			p = NewNoneOf(listed...)
		}
		clues = append(clues, Clue{Question: q, Predicate: p})
	}
	return &Table{Words: ws, Clues: clues, set: set}, nil
}

// Normalize lowercases and trims a word.
func Normalize(w string) string {
	return strings.ToLower(strings.TrimSpace(w))
}

// normalizeWords lowercases, trims and validates a word list.
func normalizeWords(list []string) ([]string, error) {
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: word list is empty", ErrInvalidTable)
	}
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, w := range list {
		w = Normalize(w)
		if w == "" || !isAlpha(w) {
			return nil, fmt.Errorf("%w: %q is not a lowercase a-z word", ErrInvalidTable, w)
		}
		if _, dup := seen[w]; dup {
			return nil, fmt.Errorf("%w: duplicate word %q", ErrInvalidTable, w)
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out, nil
}

// toSet converts a list of strings into a lookup set.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, w := range list {
		m[w] = struct{}{}
	}
	return m
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
