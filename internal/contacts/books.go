package contacts

import "github.com/roach88/cardbook/internal/store"

// CreateBook creates an empty book.
func (m *Manager) CreateBook(name string) error {
	return m.store.CreateBook(name)
}

// DeleteBook deletes a book. Its contacts stay in the canonical store, even
// those left in no book.
func (m *Manager) DeleteBook(name string) error {
	return m.store.DeleteBook(name)
}

// RenameBook renames a book.
func (m *Manager) RenameBook(oldName, newName string) error {
	return m.store.RenameBook(oldName, newName)
}

// Books lists book names, optionally filtered by a glob pattern.
func (m *Manager) Books(pattern string) ([]string, error) {
	return m.store.BookNames(pattern)
}

// Check reports store inconsistencies without changing anything.
func (m *Manager) Check() (*store.Report, error) {
	return m.store.Check()
}

// Repair removes broken book references and reports what it found.
func (m *Manager) Repair() (*store.Report, error) {
	return m.store.Repair()
}
