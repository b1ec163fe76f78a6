package contacts

import (
	"time"

	"github.com/google/uuid"
)

// UIDGenerator allocates identifiers for new contacts.
type UIDGenerator interface {
	Generate() uuid.UUID
}

// UUIDv7Generator generates time-sortable UUIDv7 identifiers.
//
// Canonical files are enumerated in file name order, so contacts created
// later sort after earlier ones.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate returns a new UUIDv7.
// Panics if the random source fails.
func (g UUIDv7Generator) Generate() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}

// Clock supplies the time stamped into the REV property of modified contacts.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
