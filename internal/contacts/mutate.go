package contacts

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/cardbook/internal/cmerr"
	"github.com/roach88/cardbook/internal/match"
	"github.com/roach88/cardbook/internal/vcard"
)

// AddOrReplaceProperty sets every property in props on every contact in
// uids and persists each contact, stamping REV.
//
// SINGLE properties replace the existing instance. MULTIPLE properties
// replace the instance with the same PID, or are appended with a newly
// assigned PID. The result holds the stored properties per contact, each
// carrying its PID, so callers can target them later.
func (m *Manager) AddOrReplaceProperty(props []vcard.Property, uids []uuid.UUID) ([]PropertySet, error) {
	if err := checkMutable(props); err != nil {
		return nil, err
	}
	contacts, err := m.store.ReadByUID(uids)
	if err != nil {
		return nil, err
	}

	sets := make([]PropertySet, 0, len(contacts))
	for _, c := range contacts {
		uid, err := c.UID()
		if err != nil {
			return sets, err
		}
		stored := make([]vcard.Property, 0, len(props))
		for _, p := range props {
			s, err := c.Set(p)
			if err != nil {
				return sets, err
			}
			stored = append(stored, s)
		}
		c.Touch(m.clock.Now())
		if err := m.store.Write(c); err != nil {
			return sets, err
		}
		slog.Debug("properties set", "uid", uid, "count", len(stored))
		sets = append(sets, PropertySet{UID: uid, Properties: stored})
	}
	return sets, nil
}

// DeleteProperties removes the instances named by props from every contact
// in uids and persists the contacts that changed, stamping REV.
//
// A SINGLE property is removed by name. A MULTIPLE property is removed by
// PID when the filter has one; otherwise every instance that strictly
// matches the filter is removed.
func (m *Manager) DeleteProperties(props []vcard.Property, uids []uuid.UUID) error {
	if err := checkMutable(props); err != nil {
		return err
	}
	contacts, err := m.store.ReadByUID(uids)
	if err != nil {
		return err
	}

	for _, c := range contacts {
		removed := 0
		for _, p := range props {
			n, err := c.Remove(p, match.Strict)
			if err != nil {
				return err
			}
			removed += n
		}
		if removed == 0 {
			continue
		}
		c.Touch(m.clock.Now())
		if err := m.store.Write(c); err != nil {
			return err
		}
		uid, _ := c.UID()
		slog.Debug("properties removed", "uid", uid, "count", removed)
	}
	return nil
}

// CreateContact creates one contact per full name in book and returns their
// UIDs. An empty book means the default book.
//
// Full names are compared after NFC normalization, against existing contacts
// and against names earlier in the same batch. A duplicate fails the call
// with AlreadyExists; contacts created before it remain.
func (m *Manager) CreateContact(book string, fullNames []string) ([]uuid.UUID, error) {
	book = resolveBook(book)
	if !m.store.BookExists(book) {
		return nil, cmerr.New(cmerr.CodeNotFound, "book %q not found", book)
	}

	existing, err := m.store.ReadAll("")
	if err != nil {
		return nil, err
	}
	taken := make(map[string]bool)
	for _, c := range existing {
		for _, fn := range c.FullNames() {
			taken[norm.NFC.String(fn)] = true
		}
	}

	uids := make([]uuid.UUID, 0, len(fullNames))
	for _, name := range fullNames {
		if strings.TrimSpace(name) == "" {
			return uids, cmerr.New(cmerr.CodeInvalidName, "full name must not be empty")
		}
		key := norm.NFC.String(name)
		if taken[key] {
			return uids, cmerr.New(cmerr.CodeAlreadyExists, "contact %q already exists", name)
		}

		uid := m.uids.Generate()
		c := vcard.NewContact(name, uid)
		c.Touch(m.clock.Now())
		if err := m.store.Write(c); err != nil {
			return uids, err
		}
		if err := m.store.AddMember(book, uid); err != nil {
			return uids, err
		}
		taken[key] = true
		uids = append(uids, uid)
		slog.Info("contact created", "uid", uid, "book", book)
	}
	return uids, nil
}

// DeleteContacts deletes each contact in uids along with its references in
// every book. Unknown UIDs fail the call before anything is deleted.
func (m *Manager) DeleteContacts(uids []uuid.UUID) error {
	for _, uid := range uids {
		if !m.store.Exists(uid) {
			return cmerr.New(cmerr.CodeNotFound, "contact %s not found", uid)
		}
	}
	membership, err := m.store.Membership()
	if err != nil {
		return err
	}

	for _, uid := range uids {
		for _, book := range membership.Books(uid) {
			if _, err := m.store.RemoveMember(book, uid); err != nil {
				return err
			}
		}
		if err := m.store.Delete(uid); err != nil {
			if cmerr.IsNotFound(err) {
				// Listed twice in uids.
				continue
			}
			return err
		}
		slog.Info("contact deleted", "uid", uid)
	}
	return nil
}

// RemoveFromBook removes each contact in uids from book. A contact left in
// no book at all is deleted. UIDs that are not members of book are skipped.
func (m *Manager) RemoveFromBook(book string, uids []uuid.UUID) error {
	book = resolveBook(book)
	if !m.store.BookExists(book) {
		return cmerr.New(cmerr.CodeNotFound, "book %q not found", book)
	}
	membership, err := m.store.Membership()
	if err != nil {
		return err
	}

	members := make([]uuid.UUID, 0, len(uids))
	for _, uid := range uids {
		if !membership[book][uid] {
			slog.Debug("not a member, skipping", "book", book, "uid", uid)
			continue
		}
		members = append(members, uid)
	}
	orphans := membership.OrphansAfterRemoval(book, members)

	for _, uid := range members {
		if _, err := m.store.RemoveMember(book, uid); err != nil {
			return err
		}
	}
	for _, uid := range orphans {
		if err := m.store.Delete(uid); err != nil && !cmerr.IsNotFound(err) {
			return err
		}
		slog.Info("deleted contact in no book", "uid", uid)
	}
	return nil
}

// AddToBook links each contact in uids into book. An unknown contact fails
// the call with NotFound; contacts linked before it remain.
func (m *Manager) AddToBook(book string, uids []uuid.UUID) error {
	book = resolveBook(book)
	for _, uid := range uids {
		if err := m.store.AddMember(book, uid); err != nil {
			return err
		}
	}
	return nil
}

func checkMutable(props []vcard.Property) error {
	for _, p := range props {
		if vcard.IsImmutable(p.Name) {
			return cmerr.New(cmerr.CodeImmutableProperty, "property %s cannot be modified", strings.ToUpper(p.Name))
		}
	}
	return nil
}
