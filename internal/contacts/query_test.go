package contacts

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cardbook/internal/cmerr"
	"github.com/roach88/cardbook/internal/match"
	"github.com/roach88/cardbook/internal/testutil"
	"github.com/roach88/cardbook/internal/vcard"
)

func TestFindUIDs_ContactCreatedInBook(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, m.CreateBook("friends"))
	uids := mustCreate(t, m, "friends", "Jane Doe")

	found, err := m.FindUIDs("friends", props(t, "FN:Jane Doe"), match.Or, false)
	require.NoError(t, err)
	assert.Equal(t, uids, found)

	found, err = m.FindUIDs("friends", props(t, "FN:Jane"), match.Or, true)
	require.NoError(t, err)
	assert.Equal(t, uids, found)

	found, err = m.FindUIDs("friends", props(t, "FN:Jane"), match.Or, false)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestFindUIDs_ScopedToBook(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, m.CreateBook("work"))
	mustCreate(t, m, "", "Alice Home")
	work := mustCreate(t, m, "work", "Alice Work")

	found, err := m.FindUIDs("work", props(t, "FN:Alice"), match.Or, true)
	require.NoError(t, err)
	assert.Equal(t, work, found)

	all, err := m.FindUIDs("", props(t, "FN:Alice"), match.Or, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestFindUIDs_Operators(t *testing.T) {
	m, _ := newTestManager(t)
	uids := mustCreate(t, m, "", "Alice", "Bob", "Carol")
	_, err := m.AddOrReplaceProperty(props(t, "EMAIL:alice@example.com"), uids[:1])
	require.NoError(t, err)
	_, err = m.AddOrReplaceProperty(props(t, "NOTE:friend"), uids[:2])
	require.NoError(t, err)

	filters := props(t, "EMAIL:", "NOTE:friend")
	tests := []struct {
		op   match.LogicalOperator
		want []uuid.UUID
	}{
		{match.Or, uids[:2]},
		{match.And, uids[:1]},
		{match.Xor, uids[1:2]},
		{match.Not, uids[2:]},
	}
	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			found, err := m.FindUIDs("", filters, tt.op, false)
			require.NoError(t, err)
			assert.Equal(t, tt.want, found)
		})
	}
}

func TestFindUIDs_MissingBook(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.FindUIDs("nope", nil, match.Or, false)
	assert.True(t, cmerr.IsNotFound(err), "got %v", err)
}

func TestFindUIDs_ContactWithoutUIDFails(t *testing.T) {
	m, s := newTestManager(t)
	mustCreate(t, m, "", "Fine")

	// A canonical file whose document lost its UID.
	uid := uuid.New()
	text := "BEGIN:VCARD\r\nVERSION:4.0\r\nFN:Broken\r\nEND:VCARD\r\n"
	require.NoError(t, writeRaw(s.ContactPath(uid), text))

	_, err := m.FindUIDs("", props(t, "FN:Broken"), match.Or, false)
	assert.True(t, cmerr.Is(err, cmerr.CodeMissingUID), "got %v", err)
}

func TestFindProperties_FiltersByParameter(t *testing.T) {
	m, _ := newTestManager(t)
	uids := mustCreate(t, m, "", "Jane Doe")
	_, err := m.AddOrReplaceProperty(props(t, "TEL;TYPE=home:555-1111", "TEL;TYPE=work:555-2222"), uids)
	require.NoError(t, err)

	sets, err := m.FindProperties(props(t, "TEL;TYPE=home"), uids, false)
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, uids[0], sets[0].UID)
	assert.Equal(t, []string{"555-1111"}, values(sets[0].Properties))

	sets, err = m.FindProperties(props(t, "TEL"), uids, false)
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, []string{"555-1111", "555-2222"}, values(sets[0].Properties))
}

func TestFindProperties_SkipsContactsWithoutMatch(t *testing.T) {
	m, _ := newTestManager(t)
	uids := mustCreate(t, m, "", "Has Mail", "No Mail")
	_, err := m.AddOrReplaceProperty(props(t, "EMAIL:a@example.com"), uids[:1])
	require.NoError(t, err)

	sets, err := m.FindProperties(props(t, "EMAIL", "NICKNAME"), uids, false)
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, uids[0], sets[0].UID)
}

func TestFindProperties_UnknownUID(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.FindProperties(props(t, "FN"), []uuid.UUID{uuid.New()}, false)
	assert.True(t, cmerr.IsNotFound(err), "got %v", err)
}

func TestGenerateIndex_OmitsIncompleteContacts(t *testing.T) {
	m, _ := newTestManager(t)
	uids := mustCreate(t, m, "", "Alice", "Bob", "Carol")
	_, err := m.AddOrReplaceProperty(props(t, "EMAIL:alice@example.com"), uids[:1])
	require.NoError(t, err)
	_, err = m.AddOrReplaceProperty(props(t, "EMAIL:carol@example.com", "EMAIL:carol@work.example"), uids[2:])
	require.NoError(t, err)

	rows, err := m.GenerateIndex("", props(t, "FN", "EMAIL"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Alice\talice@example.com",
		"Carol\tcarol@example.com",
	}, rows)
}

func TestGenerateIndex_Separator(t *testing.T) {
	m, _ := newTestManager(t, WithIndexSeparator(";"))
	uids := mustCreate(t, m, "", "Alice")
	_, err := m.AddOrReplaceProperty(props(t, "NICKNAME:Al"), uids)
	require.NoError(t, err)

	rows, err := m.GenerateIndex("", props(t, "NICKNAME", "FN"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Al;Alice"}, rows)
}

func TestGenerateIndex_NoProperties(t *testing.T) {
	m, _ := newTestManager(t)
	mustCreate(t, m, "", "Alice")

	rows, err := m.GenerateIndex("", nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestExport_RoundTrips(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, m.CreateBook("friends"))
	mustCreate(t, m, "friends", "Alice", "Bob")
	mustCreate(t, m, "", "Carol")

	text, err := m.Export("friends")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(text, "BEGIN:VCARD"))

	parsed, err := vcard.Decode(text)
	require.NoError(t, err)
	require.Len(t, parsed, 2)
	assert.Equal(t, []string{"Alice"}, parsed[0].FullNames())
	assert.Equal(t, []string{"Bob"}, parsed[1].FullNames())

	all, err := m.Export("")
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(all, "END:VCARD"))
}

func TestContacts(t *testing.T) {
	m, _ := newTestManager(t)
	mustCreate(t, m, "", "Alice", "Bob")

	cs, err := m.Contacts("")
	require.NoError(t, err)
	require.Len(t, cs, 2)
	uid, err := cs[0].UID()
	require.NoError(t, err)
	assert.Equal(t, testutil.UID(1), uid)
}

func TestFindProperties_RepeatsPropertyMatchedByTwoFilters(t *testing.T) {
	m, _ := newTestManager(t)
	uids := mustCreate(t, m, "", "Jane Doe")
	_, err := m.AddOrReplaceProperty(props(t, "TEL;TYPE=home:555-1111"), uids)
	require.NoError(t, err)

	sets, err := m.FindProperties(props(t, "TEL", "TEL;TYPE=home"), uids, false)
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, []string{"555-1111", "555-1111"}, values(sets[0].Properties))
}

func TestFindProperties_CanonicalFileWithoutDocument(t *testing.T) {
	m, s := newTestManager(t)
	uids := mustCreate(t, m, "", "Alice", "Bob")
	require.NoError(t, writeRaw(s.ContactPath(uids[0]), ""))

	_, err := m.FindProperties(props(t, "FN"), uids, false)
	assert.True(t, cmerr.Is(err, cmerr.CodeMalformedDocument), "got %v", err)

	sets, err := m.AddOrReplaceProperty(props(t, "NOTE:x"), uids)
	assert.True(t, cmerr.Is(err, cmerr.CodeMalformedDocument), "got %v", err)
	assert.Empty(t, sets)
}

func TestFindProperties_CanonicalFileWithTwoDocuments(t *testing.T) {
	m, s := newTestManager(t)
	uids := mustCreate(t, m, "", "Alice", "Bob")
	two := "BEGIN:VCARD\r\nVERSION:4.0\r\nFN:Alice\r\nUID:" + uids[0].String() + "\r\nEND:VCARD\r\n" +
		"BEGIN:VCARD\r\nVERSION:4.0\r\nFN:Carol\r\nUID:" + testutil.UID(9).String() + "\r\nEND:VCARD\r\n"
	require.NoError(t, writeRaw(s.ContactPath(uids[0]), two))

	require.NotPanics(t, func() {
		_, err := m.FindProperties(props(t, "FN"), uids, false)
		assert.True(t, cmerr.Is(err, cmerr.CodeMalformedDocument), "got %v", err)
	})
}

func TestFindProperties_UIDComesFromDocument(t *testing.T) {
	m, _ := newTestManager(t)
	uids := mustCreate(t, m, "", "Alice", "Bob")

	sets, err := m.FindProperties(props(t, "FN"), []uuid.UUID{uids[1], uids[0]}, false)
	require.NoError(t, err)
	require.Len(t, sets, 2)
	assert.Equal(t, uids[1], sets[0].UID)
	assert.Equal(t, []string{"Bob"}, values(sets[0].Properties))
	assert.Equal(t, uids[0], sets[1].UID)
	assert.Equal(t, []string{"Alice"}, values(sets[1].Properties))
}
