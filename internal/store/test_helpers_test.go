package store

import (
	"testing"

	"github.com/google/uuid"

	"github.com/roach88/cardbook/internal/vcard"
)

// createTestStore creates a new store rooted in a temporary directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	return s
}

// createTestContact writes a canonical contact with the given full name.
func createTestContact(t *testing.T, s *Store, fullName string) uuid.UUID {
	t.Helper()
	uid := uuid.New()
	if err := s.Write(vcard.NewContact(fullName, uid)); err != nil {
		t.Fatalf("Write(%q) failed: %v", fullName, err)
	}
	return uid
}

// createTestMember writes a contact and links it into book.
func createTestMember(t *testing.T, s *Store, book, fullName string) uuid.UUID {
	t.Helper()
	uid := createTestContact(t, s, fullName)
	if err := s.AddMember(book, uid); err != nil {
		t.Fatalf("AddMember(%q, %s) failed: %v", book, uid, err)
	}
	return uid
}
