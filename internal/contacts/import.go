package contacts

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/roach88/cardbook/internal/cmerr"
	"github.com/roach88/cardbook/internal/vcard"
)

// Import reads every vCard document in the file at path and stores each one
// in the canonical store, linked into book. It returns the stored UIDs in
// file order. A relative path is resolved against the working directory; an
// empty book means the default book.
//
// The whole file is parsed before anything is written, so a malformed file
// changes nothing. A document without a UID, or with one that is not a
// valid identifier, is given a fresh one. A document whose UID is already
// stored replaces the stored contact.
func (m *Manager) Import(path, book string) ([]uuid.UUID, error) {
	book = resolveBook(book)
	if !m.store.BookExists(book) {
		return nil, cmerr.New(cmerr.CodeNotFound, "book %q not found", book)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, cmerr.IO(path, err, "resolve import path")
	}
	info, err := os.Stat(abs)
	if errors.Is(err, os.ErrNotExist) {
		return nil, &cmerr.Error{Code: cmerr.CodeNotFound, Message: "import file not found", Path: abs, Err: err}
	}
	if err != nil {
		return nil, cmerr.IO(abs, err, "stat import file")
	}
	if info.IsDir() {
		return nil, &cmerr.Error{Code: cmerr.CodeImportRejected, Message: "import source is a directory", Path: abs}
	}

	b, err := os.ReadFile(abs)
	if err != nil {
		return nil, cmerr.IO(abs, err, "read import file")
	}
	parsed, err := vcard.Decode(string(b))
	if err != nil {
		return nil, cmerr.Malformed(abs, string(b), err)
	}

	uids := make([]uuid.UUID, 0, len(parsed))
	for _, c := range parsed {
		uid, err := c.UID()
		if err != nil {
			uid = m.uids.Generate()
			c.SetUID(uid)
			slog.Info("assigned fresh UID on import", "uid", uid, "reason", cmerr.CodeOf(err))
		}
		if err := m.store.Write(c); err != nil {
			return uids, err
		}
		if err := m.store.AddMember(book, uid); err != nil {
			return uids, err
		}
		uids = append(uids, uid)
	}
	slog.Info("import complete", "path", abs, "book", book, "contacts", len(uids))
	return uids, nil
}
