// Package suggestion holds the catalog of sample queries shown on the
// welcome view and draws random selections from it.
package suggestion

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPickSize is how many suggestions one welcome view shows.
const DefaultPickSize = 4

var defaultEntries = []string{
	"¿Qué es el amor según 1 Corintios 13?",
	"Explica la parábola del sembrador.",
	"¿Quién fue el Rey David?",
	"Resume el libro de Génesis.",
	"Analiza el Sermón del Monte.",
	"¿Cuál es el significado de la armadura de Dios en Efesios 6?",
	"Explora el tema del perdón en la Biblia.",
	"¿Qué dice Proverbios sobre la sabiduría?",
	"La historia de Moisés y el Éxodo.",
	`El significado de "fruto del Espíritu" en Gálatas 5.`,
	"¿Quiénes fueron los 12 apóstoles?",
	"Explica el concepto de la fe según Hebreos 11.",
	"La creación según Génesis 1.",
	"¿Qué es la Santa Trinidad?",
	"El rol de la mujer en la iglesia primitiva.",
	"Resume el libro de Apocalipsis.",
}

var ErrEmptyCatalog = errors.New("suggestion catalog is empty")

// Source yields a uniform integer in [0, n).
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Catalog is an immutable list of distinct sample queries.
type Catalog struct {
	entries []string
	source  Source
}

type catalogFile struct {
	Suggestions []string `yaml:"suggestions"`
}

// Default returns the builtin catalog.
func Default() *Catalog {
	c, _ := NewCatalog(defaultEntries, nil)
	return c
}

// NewCatalog validates entries and copies them. A nil source uses the
// process-wide generator.
func NewCatalog(entries []string, source Source) (*Catalog, error) {
	if source == nil {
		source = globalSource{}
	}

	seen := make(map[string]struct{}, len(entries))
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			return nil, errors.New("suggestion catalog contains a blank entry")
		}
		if _, dup := seen[entry]; dup {
			return nil, fmt.Errorf("duplicate suggestion %q", entry)
		}
		seen[entry] = struct{}{}
		out = append(out, entry)
	}
	if len(out) == 0 {
		return nil, ErrEmptyCatalog
	}

	return &Catalog{entries: out, source: source}, nil
}

// LoadFile reads a YAML catalog of the form `suggestions: [...]`.
func LoadFile(path string, source Source) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read suggestion catalog %s: %w", path, err)
	}
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse suggestion catalog %s: %w", path, err)
	}
	c, err := NewCatalog(file.Suggestions, source)
	if err != nil {
		return nil, fmt.Errorf("load suggestion catalog %s: %w", path, err)
	}
	return c, nil
}

// Entries returns a copy of the catalog in its fixed order.
func (c *Catalog) Entries() []string {
	out := make([]string, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *Catalog) Len() int {
	return len(c.entries)
}

// Pick returns the first n entries of a fresh permutation. Every call is an
// independent draw; n is clamped to the catalog size.
func (c *Catalog) Pick(n int) []string {
	if n <= 0 {
		return []string{}
	}
	shuffled := Shuffle(c.entries, c.source)
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}

// Shuffle returns a Fisher–Yates permutation of items, leaving items untouched.
func Shuffle[T any](items []T, source Source) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := source.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
