package vocab

import (
	"context"
	"sync"
)

// InMemory implements Service over an in-memory term table.
type InMemory struct {
	mu    sync.RWMutex
	terms map[string]string // term id -> canonical label
}

// NewInMemory creates an empty in-memory vocabulary.
func NewInMemory() *InMemory {
	return &InMemory{
		terms: make(map[string]string),
	}
}

// Add registers a term identifier with its canonical label.
func (v *InMemory) Add(termID, label string) {
	if termID == "" {
		return
	}
	v.mu.Lock()
	v.terms[termID] = label
	v.mu.Unlock()
}

// Len returns the number of registered terms.
func (v *InMemory) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.terms)
}

// Resolve implements Service.
func (v *InMemory) Resolve(ctx context.Context, termID string) (Resolution, error) {
	if err := ctx.Err(); err != nil {
		return Resolution{}, err
	}

	v.mu.RLock()
	label, ok := v.terms[termID]
	v.mu.RUnlock()

	if !ok {
		return Resolution{}, nil
	}
	return Resolution{Known: true, CanonicalLabel: label}, nil
}
