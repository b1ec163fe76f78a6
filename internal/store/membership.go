package store

import (
	"os"
	"sort"

	"github.com/google/uuid"

	"github.com/roach88/cardbook/internal/cmerr"
)

// Membership is a snapshot of which contacts each book references.
// It is read from reference names only; references are not followed.
type Membership map[string]map[uuid.UUID]bool

// Membership reads the current membership of every book.
func (s *Store) Membership() (Membership, error) {
	books, err := s.BookNames("")
	if err != nil {
		return nil, err
	}
	m := make(Membership, len(books))
	for _, book := range books {
		dir := s.bookPath(book)
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, cmerr.IO(dir, err, "list book members")
		}
		members := make(map[uuid.UUID]bool, len(entries))
		for _, e := range entries {
			if uid, ok := uidFromFileName(e.Name()); ok {
				members[uid] = true
			}
		}
		m[book] = members
	}
	return m, nil
}

// Books returns the sorted names of the books referencing uid.
func (m Membership) Books(uid uuid.UUID) []string {
	var books []string
	for book, members := range m {
		if members[uid] {
			books = append(books, book)
		}
	}
	sort.Strings(books)
	return books
}

// Orphaned reports whether no book references uid.
func (m Membership) Orphaned(uid uuid.UUID) bool {
	for _, members := range m {
		if members[uid] {
			return false
		}
	}
	return true
}

// Without returns a copy of m with uid removed from book.
func (m Membership) Without(book string, uid uuid.UUID) Membership {
	out := make(Membership, len(m))
	for b, members := range m {
		copied := make(map[uuid.UUID]bool, len(members))
		for u := range members {
			if b == book && u == uid {
				continue
			}
			copied[u] = true
		}
		out[b] = copied
	}
	return out
}

// OrphansAfterRemoval returns, in input order, the uids that no book
// references once every one of them has been removed from book. These are
// the contacts the orphan rule deletes.
func (m Membership) OrphansAfterRemoval(book string, uids []uuid.UUID) []uuid.UUID {
	after := m
	for _, uid := range uids {
		after = after.Without(book, uid)
	}
	var orphans []uuid.UUID
	seen := make(map[uuid.UUID]bool, len(uids))
	for _, uid := range uids {
		if seen[uid] {
			continue
		}
		seen[uid] = true
		if after.Orphaned(uid) {
			orphans = append(orphans, uid)
		}
	}
	return orphans
}

// MemberUIDs returns the UIDs referenced by book, in file name order.
func (s *Store) MemberUIDs(book string) ([]uuid.UUID, error) {
	if !s.BookExists(book) {
		return nil, notFoundBook(book)
	}
	dir := s.bookPath(book)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, cmerr.IO(dir, err, "list book members")
	}
	var uids []uuid.UUID
	for _, e := range entries {
		if uid, ok := uidFromFileName(e.Name()); ok {
			uids = append(uids, uid)
		}
	}
	return uids, nil
}
