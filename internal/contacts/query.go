package contacts

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/roach88/cardbook/internal/cmerr"
	"github.com/roach88/cardbook/internal/match"
	"github.com/roach88/cardbook/internal/vcard"
)

// Contacts returns every contact in book, or in the whole store if book is
// empty, in store enumeration order.
func (m *Manager) Contacts(book string) ([]*vcard.Contact, error) {
	return m.store.ReadAll(book)
}

// FindUIDs returns the UIDs of the contacts in book (or the whole store)
// selected by filters combined with op.
//
// A selected contact without a usable UID fails the call.
func (m *Manager) FindUIDs(book string, filters []vcard.Property, op match.LogicalOperator, forgive bool) ([]uuid.UUID, error) {
	all, err := m.store.ReadAll(book)
	if err != nil {
		return nil, err
	}

	selected := match.Select(all, filters, op, forgive)
	uids := make([]uuid.UUID, 0, len(selected))
	for _, c := range selected {
		uid, err := c.UID()
		if err != nil {
			return nil, err
		}
		uids = append(uids, uid)
	}
	slog.Debug("find", "book", book, "op", op, "filters", len(filters), "scanned", len(all), "selected", len(uids))
	return uids, nil
}

// FindProperties returns, per contact in uids, the properties matching any
// of the show filters. Matches for each filter are concatenated in filter
// order. A contact with no match contributes nothing.
func (m *Manager) FindProperties(show []vcard.Property, uids []uuid.UUID, forgive bool) ([]PropertySet, error) {
	contacts, err := m.store.ReadByUID(uids)
	if err != nil {
		return nil, err
	}

	var sets []PropertySet
	for _, c := range contacts {
		uid, err := c.UID()
		if err != nil {
			return nil, err
		}
		var props []vcard.Property
		for _, f := range show {
			props = append(props, match.Present(f, c, forgive)...)
		}
		if len(props) == 0 {
			continue
		}
		sets = append(sets, PropertySet{UID: uid, Properties: props})
	}
	return sets, nil
}

// GenerateIndex builds one row per contact in book (or the whole store)
// holding the value of the first strict match for each of props, joined by
// the configured separator. A contact lacking a match for any of props is
// left out. No props yields no rows.
func (m *Manager) GenerateIndex(book string, props []vcard.Property) ([]string, error) {
	if len(props) == 0 {
		return []string{}, nil
	}
	all, err := m.store.ReadAll(book)
	if err != nil {
		return nil, err
	}

	rows := []string{}
	values := make([]string, len(props))
	for _, c := range all {
		complete := true
		for i, p := range props {
			found := match.Present(p, c, false)
			if len(found) == 0 {
				complete = false
				break
			}
			values[i] = found[0].Value
		}
		if complete {
			rows = append(rows, strings.Join(values, m.separator))
		}
	}
	return rows, nil
}

// Export serializes every contact in book (or the whole store) back to back.
func (m *Manager) Export(book string) (string, error) {
	all, err := m.store.ReadAll(book)
	if err != nil {
		return "", err
	}
	text, err := vcard.EncodeAll(all)
	if err != nil {
		return "", cmerr.Wrap(cmerr.CodeMalformedDocument, err, "serialize contacts")
	}
	return text, nil
}
