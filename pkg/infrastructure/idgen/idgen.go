// Package idgen produces product identifiers.
package idgen

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Generator produces unique product identifiers
type Generator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 identifiers, so products
// sort by assembly time.
type UUIDv7Generator struct{}

// Generate returns a new hyphenated UUIDv7
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// SequenceGenerator returns "<prefix>-1", "<prefix>-2", ... for deterministic
// output in tests and golden files.
type SequenceGenerator struct {
	mu     sync.Mutex
	prefix string
	next   int
}

// NewSequenceGenerator creates a generator counting from 1
func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{prefix: prefix, next: 1}
}

// Generate returns the next identifier in the sequence
func (g *SequenceGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := fmt.Sprintf("%s-%d", g.prefix, g.next)
	g.next++
	return id
}
