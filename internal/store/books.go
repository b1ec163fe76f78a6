package store

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"
	"github.com/google/uuid"

	"github.com/roach88/cardbook/internal/cmerr"
)

// CreateBook creates an empty book.
// Returns AlreadyExists if a book by that name exists; "default" always does.
func (s *Store) CreateBook(name string) error {
	if err := ValidateBookName(name); err != nil {
		return err
	}
	path := s.bookPath(name)
	if name == DefaultBook || s.BookExists(name) {
		return cmerr.New(cmerr.CodeAlreadyExists, "book %q already exists", name)
	}
	if err := os.MkdirAll(path, 0o750); err != nil {
		return cmerr.IO(path, err, "create book")
	}
	slog.Debug("book created", "book", name)
	return nil
}

// DeleteBook removes a book and every membership reference in it.
// Canonical contacts are not touched.
func (s *Store) DeleteBook(name string) error {
	if err := ValidateBookName(name); err != nil {
		return err
	}
	if name == DefaultBook {
		return cmerr.New(cmerr.CodeReservedBook, "book %q cannot be deleted", name)
	}
	if !s.BookExists(name) {
		return notFoundBook(name)
	}
	path := s.bookPath(name)
	if err := os.RemoveAll(path); err != nil {
		return cmerr.IO(path, err, "delete book")
	}
	slog.Debug("book deleted", "book", name)
	return nil
}

// RenameBook renames a book, keeping its members.
func (s *Store) RenameBook(oldName, newName string) error {
	for _, n := range []string{oldName, newName} {
		if err := ValidateBookName(n); err != nil {
			return err
		}
	}
	if oldName == DefaultBook {
		return cmerr.New(cmerr.CodeReservedBook, "book %q cannot be renamed", oldName)
	}
	if !s.BookExists(oldName) {
		return notFoundBook(oldName)
	}
	if newName == DefaultBook || s.BookExists(newName) {
		return cmerr.New(cmerr.CodeAlreadyExists, "book %q already exists", newName)
	}
	if err := os.Rename(s.bookPath(oldName), s.bookPath(newName)); err != nil {
		return cmerr.IO(s.bookPath(oldName), err, "rename book")
	}
	slog.Debug("book renamed", "from", oldName, "to", newName)
	return nil
}

// BookExists reports whether a book directory exists.
func (s *Store) BookExists(name string) bool {
	if ValidateBookName(name) != nil {
		return false
	}
	info, err := os.Stat(s.bookPath(name))
	return err == nil && info.IsDir()
}

// BookNames returns the sorted names of all books. A non-empty pattern keeps
// only names matching the glob (for example "fam*" or "{work,home}").
func (s *Store) BookNames(pattern string) ([]string, error) {
	var g glob.Glob
	if pattern != "" {
		compiled, err := glob.Compile(pattern)
		if err != nil {
			return nil, cmerr.Wrap(cmerr.CodeInvalidName, err, "invalid book pattern %q", pattern)
		}
		g = compiled
	}

	entries, err := os.ReadDir(s.booksPath())
	if err != nil {
		return nil, cmerr.IO(s.booksPath(), err, "list books")
	}
	names := []string{}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if g != nil && !g.Match(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// AddMember links the canonical contact uid into book.
// Returns NotFound if the book or the canonical contact does not exist.
// Adding an existing member is a no-op.
func (s *Store) AddMember(book string, uid uuid.UUID) error {
	if !s.BookExists(book) {
		return notFoundBook(book)
	}
	if !s.Exists(uid) {
		return notFoundContact(uid)
	}
	if s.HasMember(book, uid) {
		return nil
	}

	link := s.memberPath(book, uid)
	target := filepath.Join("..", "..", ContactsDir, fileName(uid))
	if err := os.Symlink(target, link); err != nil {
		return cmerr.IO(link, err, "link contact into book")
	}
	slog.Debug("member added", "book", book, "uid", uid)
	return nil
}

// RemoveMember removes the reference to uid from book, if present, and
// reports whether one was removed. It never deletes the canonical contact.
func (s *Store) RemoveMember(book string, uid uuid.UUID) (bool, error) {
	if !s.BookExists(book) {
		return false, notFoundBook(book)
	}
	link := s.memberPath(book, uid)
	err := os.Remove(link)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, cmerr.IO(link, err, "unlink contact from book")
	}
	slog.Debug("member removed", "book", book, "uid", uid)
	return true, nil
}

// HasMember reports whether book holds a reference to uid, whether or not
// the reference resolves.
func (s *Store) HasMember(book string, uid uuid.UUID) bool {
	_, err := os.Lstat(s.memberPath(book, uid))
	return err == nil
}
