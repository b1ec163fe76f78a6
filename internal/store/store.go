package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/roach88/cardbook/internal/cmerr"
)

const (
	// ContactsDir holds the canonical contact files.
	ContactsDir = "contacts"

	// BooksDir holds one directory per book.
	BooksDir = "books"

	// DefaultBook is the reserved book that always exists.
	DefaultBook = "default"

	fileExt = ".vcf"
)

// Store is a contact store rooted at a data directory.
type Store struct {
	root string
}

// Open creates or opens a store rooted at root.
// The contacts and books directories and the default book are created if
// missing.
//
// This function is idempotent - safe to call multiple times.
func Open(root string) (*Store, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, cmerr.IO(root, err, "resolve data root")
	}
	s := &Store{root: abs}
	for _, dir := range []string{s.contactsPath(), s.bookPath(DefaultBook)} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, cmerr.IO(dir, err, "create store directory")
		}
	}
	return s, nil
}

// Root returns the absolute data root.
func (s *Store) Root() string {
	return s.root
}

func (s *Store) contactsPath() string {
	return filepath.Join(s.root, ContactsDir)
}

func (s *Store) booksPath() string {
	return filepath.Join(s.root, BooksDir)
}

func (s *Store) bookPath(name string) string {
	return filepath.Join(s.booksPath(), name)
}

// ContactPath returns the canonical file path of uid.
func (s *Store) ContactPath(uid uuid.UUID) string {
	return filepath.Join(s.contactsPath(), fileName(uid))
}

func (s *Store) memberPath(book string, uid uuid.UUID) string {
	return filepath.Join(s.bookPath(book), fileName(uid))
}

func fileName(uid uuid.UUID) string {
	return uid.String() + fileExt
}

// uidFromFileName parses "<uid>.vcf". ok is false for any other name.
func uidFromFileName(name string) (uuid.UUID, bool) {
	stem, found := strings.CutSuffix(name, fileExt)
	if !found {
		return uuid.Nil, false
	}
	uid, err := uuid.Parse(stem)
	if err != nil || uid.String() != stem {
		return uuid.Nil, false
	}
	return uid, true
}

// ValidateBookName rejects names that cannot be a single directory name.
func ValidateBookName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return cmerr.New(cmerr.CodeInvalidName, "book name is empty")
	case name == "." || name == "..":
		return cmerr.New(cmerr.CodeInvalidName, "book name %q is reserved by the filesystem", name)
	case strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, filepath.Separator):
		return cmerr.New(cmerr.CodeInvalidName, "book name %q contains a path separator", name)
	case strings.ContainsRune(name, 0):
		return cmerr.New(cmerr.CodeInvalidName, "book name contains a NUL byte")
	}
	return nil
}

func notFoundBook(name string) error {
	return cmerr.New(cmerr.CodeNotFound, "book %q does not exist", name)
}

func notFoundContact(uid uuid.UUID) error {
	return cmerr.New(cmerr.CodeNotFound, "contact %s does not exist", uid)
}

// String implements fmt.Stringer for log output.
func (s *Store) String() string {
	return fmt.Sprintf("store(%s)", s.root)
}
