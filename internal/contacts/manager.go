package contacts

import (
	"github.com/google/uuid"

	"github.com/roach88/cardbook/internal/store"
	"github.com/roach88/cardbook/internal/vcard"
)

// DefaultIndexSeparator separates the values of one GenerateIndex row.
const DefaultIndexSeparator = "\t"

// Manager runs queries and mutations against a store.
//
// Manager holds no state of its own beyond its collaborators; every call
// reads the store afresh. It is not safe for concurrent use from several
// processes, and it does not try to be.
type Manager struct {
	store     *store.Store
	uids      UIDGenerator
	clock     Clock
	separator string
}

// Option configures a Manager.
type Option func(*Manager)

// WithUIDGenerator sets the generator used for new contacts and for imported
// contacts whose UID is missing or invalid.
func WithUIDGenerator(g UIDGenerator) Option {
	return func(m *Manager) {
		m.uids = g
	}
}

// WithClock sets the clock used to stamp REV.
func WithClock(c Clock) Option {
	return func(m *Manager) {
		m.clock = c
	}
}

// WithIndexSeparator sets the separator GenerateIndex joins values with.
// An empty separator keeps the default.
func WithIndexSeparator(sep string) Option {
	return func(m *Manager) {
		if sep != "" {
			m.separator = sep
		}
	}
}

// New creates a Manager over s.
func New(s *store.Store, opts ...Option) *Manager {
	m := &Manager{
		store:     s,
		uids:      UUIDv7Generator{},
		clock:     SystemClock{},
		separator: DefaultIndexSeparator,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Store returns the underlying store.
func (m *Manager) Store() *store.Store {
	return m.store
}

// PropertySet pairs a contact with a selection of its properties.
type PropertySet struct {
	UID        uuid.UUID
	Properties []vcard.Property
}

// resolveBook maps the empty book name to the default book.
func resolveBook(book string) string {
	if book == "" {
		return store.DefaultBook
	}
	return book
}
