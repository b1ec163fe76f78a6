package store

import (
	"reflect"
	"testing"

	"github.com/google/uuid"
)

func testMembership(books map[string][]uuid.UUID) Membership {
	m := make(Membership, len(books))
	for book, uids := range books {
		members := make(map[uuid.UUID]bool, len(uids))
		for _, uid := range uids {
			members[uid] = true
		}
		m[book] = members
	}
	return m
}

func TestMembership_Books(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	m := testMembership(map[string][]uuid.UUID{
		"work":    {a},
		"default": {a, b},
		"family":  {},
	})

	if got := m.Books(a); !reflect.DeepEqual(got, []string{"default", "work"}) {
		t.Errorf("Books(a) = %v", got)
	}
	if got := m.Books(uuid.New()); len(got) != 0 {
		t.Errorf("Books(unknown) = %v, want none", got)
	}
}

func TestMembership_Orphaned(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	m := testMembership(map[string][]uuid.UUID{"default": {a}})

	if m.Orphaned(a) {
		t.Error("Orphaned(a) = true for a member")
	}
	if !m.Orphaned(b) {
		t.Error("Orphaned(b) = false for a non-member")
	}
}

func TestMembership_WithoutCopies(t *testing.T) {
	a := uuid.New()
	m := testMembership(map[string][]uuid.UUID{"default": {a}, "work": {a}})

	after := m.Without("default", a)

	if after["default"][a] {
		t.Error("Without() kept the removed reference")
	}
	if !after["work"][a] {
		t.Error("Without() dropped a reference in another book")
	}
	if !m["default"][a] {
		t.Error("Without() modified the receiver")
	}
}

func TestMembership_OrphansAfterRemoval(t *testing.T) {
	shared, only, other := uuid.New(), uuid.New(), uuid.New()
	m := testMembership(map[string][]uuid.UUID{
		"default": {shared, only, other},
		"work":    {shared},
	})

	got := m.OrphansAfterRemoval("default", []uuid.UUID{only, shared, only})
	if !reflect.DeepEqual(got, []uuid.UUID{only}) {
		t.Errorf("OrphansAfterRemoval() = %v, want [%s]", got, only)
	}

	if got := m.OrphansAfterRemoval("work", []uuid.UUID{shared}); len(got) != 0 {
		t.Errorf("removing from one of two books orphaned %v", got)
	}
}

func TestStore_Membership(t *testing.T) {
	s := createTestStore(t)
	if err := s.CreateBook("work"); err != nil {
		t.Fatal(err)
	}
	a := createTestMember(t, s, DefaultBook, "Alice")
	if err := s.AddMember("work", a); err != nil {
		t.Fatal(err)
	}
	unfiled := createTestContact(t, s, "Nobody")

	m, err := s.Membership()
	if err != nil {
		t.Fatalf("Membership() failed: %v", err)
	}
	if got := m.Books(a); !reflect.DeepEqual(got, []string{DefaultBook, "work"}) {
		t.Errorf("Books(a) = %v", got)
	}
	if !m.Orphaned(unfiled) {
		t.Error("unfiled contact reported as member")
	}

	uids, err := s.MemberUIDs("work")
	if err != nil {
		t.Fatalf("MemberUIDs() failed: %v", err)
	}
	if !reflect.DeepEqual(uids, []uuid.UUID{a}) {
		t.Errorf("MemberUIDs(work) = %v", uids)
	}
}
