package model

import (
	"fmt"

	"github.com/google/uuid"
)

// IDSource produces identifiers for fragments, components and pictures.
// Injected into every engine so tests can run with a deterministic
// sequence while production uses random UUIDs.
type IDSource interface {
	NewID(prefix string) string
}

// UUIDSource is the production IDSource backed by random UUIDs.
type UUIDSource struct{}

// NewID returns a prefixed UUID, e.g. "frag_2c9e...".
func (UUIDSource) NewID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

// SequenceSource is a deterministic IDSource for tests: frag_1, frag_2...
type SequenceSource struct {
	counts map[string]int
}

// NewSequenceSource creates an empty deterministic ID source.
func NewSequenceSource() *SequenceSource {
	return &SequenceSource{counts: make(map[string]int)}
}

// NewID returns the next identifier for the prefix.
func (s *SequenceSource) NewID(prefix string) string {
	s.counts[prefix]++
	return fmt.Sprintf("%s_%d", prefix, s.counts[prefix])
}
