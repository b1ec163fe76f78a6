package store

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/roach88/cardbook/internal/cmerr"
	"github.com/roach88/cardbook/internal/vcard"
)

// ReadAll returns every contact in book, or in the global store if book is
// empty, in file name order.
//
// All files are decoded as one batch. If the batch fails, each file is
// decoded on its own and the first bad one is reported as MalformedDocument
// with its path and raw content. Entries that cannot be read at all (a
// reference whose canonical file is gone) are logged and skipped.
func (s *Store) ReadAll(book string) ([]*vcard.Contact, error) {
	dir := s.contactsPath()
	if book != "" {
		if err := ValidateBookName(book); err != nil {
			return nil, err
		}
		dir = s.bookPath(book)
	}

	entries, err := os.ReadDir(dir)
	if errors.Is(err, os.ErrNotExist) && book != "" {
		return nil, notFoundBook(book)
	}
	if err != nil {
		return nil, cmerr.IO(dir, err, "list contacts")
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != fileExt {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return readPaths(paths)
}

// ReadByUID reads exactly the canonical files of uids, in the given order.
// A missing file is NotFound.
func (s *Store) ReadByUID(uids []uuid.UUID) ([]*vcard.Contact, error) {
	contacts := make([]*vcard.Contact, 0, len(uids))
	for _, uid := range uids {
		path := s.ContactPath(uid)
		b, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			return nil, notFoundContact(uid)
		}
		if err != nil {
			return nil, cmerr.IO(path, err, "read contact")
		}
		parsed, err := vcard.Decode(string(b))
		if err != nil {
			return nil, cmerr.Malformed(path, string(b), err)
		}
		if len(parsed) != 1 {
			return nil, cmerr.Malformed(path, string(b),
				fmt.Errorf("canonical file holds %d documents, want 1", len(parsed)))
		}
		contacts = append(contacts, parsed[0])
	}
	return contacts, nil
}

// Exists reports whether the canonical file of uid exists.
func (s *Store) Exists(uid uuid.UUID) bool {
	_, err := os.Stat(s.ContactPath(uid))
	return err == nil
}

type document struct {
	path    string
	content string
}

func readPaths(paths []string) ([]*vcard.Contact, error) {
	docs := make([]document, 0, len(paths))
	var all strings.Builder
	for _, p := range paths {
		b, err := os.ReadFile(p)
		if err != nil {
			slog.Warn("skipping unreadable contact, maybe a reference to a deleted contact",
				"path", p,
				"error", err,
			)
			continue
		}
		docs = append(docs, document{path: p, content: string(b)})
		all.Write(b)
	}

	contacts, err := vcard.Decode(all.String())
	if err == nil {
		return contacts, nil
	}

	slog.Debug("batch decode failed, decoding files one by one", "files", len(docs), "error", err)
	contacts = contacts[:0]
	for _, d := range docs {
		parsed, err := vcard.Decode(d.content)
		if err != nil {
			return nil, cmerr.Malformed(d.path, d.content, err)
		}
		contacts = append(contacts, parsed...)
	}
	return contacts, nil
}
