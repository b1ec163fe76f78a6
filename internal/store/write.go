package store

import (
	"errors"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/roach88/cardbook/internal/cmerr"
	"github.com/roach88/cardbook/internal/vcard"
)

// Write serializes c and overwrites the canonical file named by its UID.
// The file is written to a temporary sibling and renamed into place.
func (s *Store) Write(c *vcard.Contact) error {
	uid, err := c.UID()
	if err != nil {
		return err
	}
	text, err := vcard.Encode(c)
	if err != nil {
		return cmerr.Wrap(cmerr.CodeMalformedDocument, err, "serialize contact %s", uid)
	}

	path := s.ContactPath(uid)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(text), 0o600); err != nil {
		return cmerr.IO(tmp, err, "write contact")
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp) // best-effort cleanup
		return cmerr.IO(path, err, "replace contact")
	}
	slog.Debug("contact written", "uid", uid, "path", path)
	return nil
}

// Delete removes the canonical file of uid. Membership references are left
// alone; see Membership and RemoveMember.
func (s *Store) Delete(uid uuid.UUID) error {
	path := s.ContactPath(uid)
	err := os.Remove(path)
	if errors.Is(err, os.ErrNotExist) {
		return notFoundContact(uid)
	}
	if err != nil {
		return cmerr.IO(path, err, "delete contact")
	}
	slog.Debug("contact deleted", "uid", uid)
	return nil
}
