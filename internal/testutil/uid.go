package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/roach88/cardbook/internal/store"
)

// SequentialUIDs generates predictable identifiers for tests:
// 00000000-0000-7000-8000-000000000001, ...-000000000002, and so on.
//
// The identifiers sort in generation order, like the UUIDv7 values used
// outside tests, so golden output is stable.
//
// Thread-safety: SequentialUIDs is safe for concurrent use via internal mutex.
type SequentialUIDs struct {
	mu sync.Mutex
	n  int
}

// NewSequentialUIDs creates a generator whose first identifier ends in 1.
func NewSequentialUIDs() *SequentialUIDs {
	return &SequentialUIDs{}
}

// Generate returns the next identifier.
func (g *SequentialUIDs) Generate() uuid.UUID {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return UID(g.n)
}

// UID returns the n-th identifier SequentialUIDs produces.
func UID(n int) uuid.UUID {
	return uuid.MustParse(fmt.Sprintf("00000000-0000-7000-8000-%012d", n))
}

// NewStore opens a store rooted in a fresh temporary directory.
func NewStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(t.TempDir())
	if err != nil {
		t.Fatalf("store.Open() failed: %v", err)
	}
	return s
}

// WriteFile writes content to name inside a fresh temporary directory and
// returns its path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
