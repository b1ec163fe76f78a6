package contacts

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cardbook/internal/cmerr"
	"github.com/roach88/cardbook/internal/store"
	"github.com/roach88/cardbook/internal/testutil"
	"github.com/roach88/cardbook/internal/vcard"
)

func TestCreateContact(t *testing.T) {
	m, s := newTestManager(t)

	uids, err := m.CreateContact("", []string{"Alice", "Bob"})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{testutil.UID(1), testutil.UID(2)}, uids)

	for _, uid := range uids {
		assert.True(t, s.Exists(uid))
		assert.True(t, s.HasMember(store.DefaultBook, uid))
	}
	c := readOne(t, s, uids[0])
	assert.Equal(t, []string{"Alice"}, c.FullNames())
	assert.Equal(t, "20240102T030405Z", c.Get("REV")[0].Value)
}

func TestCreateContact_DuplicateFailsFast(t *testing.T) {
	m, s := newTestManager(t)
	mustCreate(t, m, "", "Bob")

	uids, err := m.CreateContact("", []string{"Alice", "Bob", "Carol"})
	assert.True(t, cmerr.IsAlreadyExists(err), "got %v", err)
	assert.Equal(t, []uuid.UUID{testutil.UID(2)}, uids, "contacts before the duplicate remain")

	all, err := s.ReadAll("")
	require.NoError(t, err)
	assert.Len(t, all, 2, "Carol must not be created")
}

func TestCreateContact_DuplicateWithinBatch(t *testing.T) {
	m, _ := newTestManager(t)

	uids, err := m.CreateContact("", []string{"Alice", "Alice"})
	assert.True(t, cmerr.IsAlreadyExists(err), "got %v", err)
	assert.Len(t, uids, 1)
}

func TestCreateContact_ComparesNormalizedNames(t *testing.T) {
	m, _ := newTestManager(t)
	mustCreate(t, m, "", "Ren\u00e9e")

	// Same name with a combining accent.
	_, err := m.CreateContact("", []string{"Rene\u0301e"})
	assert.True(t, cmerr.IsAlreadyExists(err), "got %v", err)
}

func TestCreateContact_Errors(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.CreateContact("nope", []string{"Alice"})
	assert.True(t, cmerr.IsNotFound(err), "got %v", err)

	_, err = m.CreateContact("", []string{"  "})
	assert.True(t, cmerr.Is(err, cmerr.CodeInvalidName), "got %v", err)
}

func TestAddOrReplaceProperty_Multiple(t *testing.T) {
	m, s := newTestManager(t)
	uids := mustCreate(t, m, "", "Jane Doe")

	sets, err := m.AddOrReplaceProperty(props(t, "TEL;TYPE=home:555-1111", "TEL;TYPE=work:555-2222"), uids)
	require.NoError(t, err)
	require.Len(t, sets, 1)
	require.Len(t, sets[0].Properties, 2)
	assert.Equal(t, "1", sets[0].Properties[0].PID())
	assert.Equal(t, "2", sets[0].Properties[1].PID())

	// Replace the work number by targeting its PID.
	_, err = m.AddOrReplaceProperty(props(t, "TEL;PID=2;TYPE=work:555-3333"), uids)
	require.NoError(t, err)

	tels := readOne(t, s, uids[0]).Get("TEL")
	assert.Equal(t, []string{"555-1111", "555-3333"}, values(tels))
}

func TestAddOrReplaceProperty_SingleReplaces(t *testing.T) {
	m, s := newTestManager(t)
	uids := mustCreate(t, m, "", "Jane Doe")

	_, err := m.AddOrReplaceProperty(props(t, "BDAY:19800101"), uids)
	require.NoError(t, err)
	_, err = m.AddOrReplaceProperty(props(t, "BDAY:19810202"), uids)
	require.NoError(t, err)

	assert.Equal(t, []string{"19810202"}, values(readOne(t, s, uids[0]).Get("BDAY")))
}

func TestAddOrReplaceProperty_StampsRevision(t *testing.T) {
	m, s := newTestManager(t)
	uids := mustCreate(t, m, "", "Jane Doe")
	before := readOne(t, s, uids[0]).Get("REV")[0].Value

	_, err := m.AddOrReplaceProperty(props(t, "NOTE:hi"), uids)
	require.NoError(t, err)

	after := readOne(t, s, uids[0]).Get("REV")[0].Value
	assert.Greater(t, after, before)
}

func TestAddOrReplaceProperty_Immutable(t *testing.T) {
	m, s := newTestManager(t)
	uids := mustCreate(t, m, "", "Jane Doe")

	for _, text := range []string{"UID:" + uuid.NewString(), "VERSION:3.0", "REV:20000101T000000Z"} {
		_, err := m.AddOrReplaceProperty([]vcard.Property{
			vcard.NewProperty("NOTE", "ignored"),
			props(t, text)[0],
		}, uids)
		assert.True(t, cmerr.Is(err, cmerr.CodeImmutableProperty), "%s: got %v", text, err)
	}
	assert.Empty(t, readOne(t, s, uids[0]).Get("NOTE"), "nothing is written when a property is immutable")
}

func TestDeleteProperties(t *testing.T) {
	m, s := newTestManager(t)
	uids := mustCreate(t, m, "", "Jane Doe")
	_, err := m.AddOrReplaceProperty(props(t,
		"TEL;TYPE=home:555-1111",
		"TEL;TYPE=work:555-2222",
		"TEL;TYPE=work:555-4444",
		"BDAY:19800101",
	), uids)
	require.NoError(t, err)

	require.NoError(t, m.DeleteProperties(props(t, "TEL;TYPE=work:555-2222", "BDAY"), uids))
	c := readOne(t, s, uids[0])
	assert.Equal(t, []string{"555-1111", "555-4444"}, values(c.Get("TEL")))
	assert.Empty(t, c.Get("BDAY"))

	require.NoError(t, m.DeleteProperties(props(t, "TEL;PID=1"), uids))
	assert.Equal(t, []string{"555-4444"}, values(readOne(t, s, uids[0]).Get("TEL")))

	require.NoError(t, m.DeleteProperties(props(t, "TEL;TYPE=work"), uids))
	assert.Empty(t, readOne(t, s, uids[0]).Get("TEL"))
}

func TestDeleteProperties_NoChangeKeepsRevision(t *testing.T) {
	m, s := newTestManager(t)
	uids := mustCreate(t, m, "", "Jane Doe")
	before := readOne(t, s, uids[0]).Get("REV")[0].Value

	require.NoError(t, m.DeleteProperties(props(t, "EMAIL"), uids))
	assert.Equal(t, before, readOne(t, s, uids[0]).Get("REV")[0].Value)
}

func TestDeleteProperties_Immutable(t *testing.T) {
	m, _ := newTestManager(t)
	uids := mustCreate(t, m, "", "Jane Doe")

	err := m.DeleteProperties(props(t, "UID"), uids)
	assert.True(t, cmerr.Is(err, cmerr.CodeImmutableProperty), "got %v", err)
}

func TestDeleteContacts(t *testing.T) {
	m, s := newTestManager(t)
	require.NoError(t, m.CreateBook("work"))
	uids := mustCreate(t, m, "", "Alice", "Bob")
	require.NoError(t, m.AddToBook("work", uids[:1]))

	require.NoError(t, m.DeleteContacts(uids[:1]))

	assert.False(t, s.Exists(uids[0]))
	assert.False(t, s.HasMember(store.DefaultBook, uids[0]))
	assert.False(t, s.HasMember("work", uids[0]))
	assert.True(t, s.Exists(uids[1]))

	report, err := m.Check()
	require.NoError(t, err)
	assert.Empty(t, report.BrokenReferences)
}

func TestDeleteContacts_Unknown(t *testing.T) {
	m, s := newTestManager(t)
	uids := mustCreate(t, m, "", "Alice")

	err := m.DeleteContacts([]uuid.UUID{uids[0], uuid.New()})
	assert.True(t, cmerr.IsNotFound(err), "got %v", err)
	assert.True(t, s.Exists(uids[0]), "nothing is deleted when a UID is unknown")
}

func TestRemoveFromBook_OrphanRule(t *testing.T) {
	m, s := newTestManager(t)
	require.NoError(t, m.CreateBook("work"))
	uids := mustCreate(t, m, "", "Shared", "Alone")
	require.NoError(t, m.AddToBook("work", uids[:1]))

	require.NoError(t, m.RemoveFromBook(store.DefaultBook, uids))

	_, err := s.ReadByUID([]uuid.UUID{uids[0]})
	assert.NoError(t, err, "a contact still in another book survives")
	_, err = s.ReadByUID([]uuid.UUID{uids[1]})
	assert.True(t, cmerr.IsNotFound(err), "a contact in no book is deleted, got %v", err)

	require.NoError(t, m.RemoveFromBook("work", uids[:1]))
	_, err = s.ReadByUID([]uuid.UUID{uids[0]})
	assert.True(t, cmerr.IsNotFound(err), "got %v", err)
}

func TestRemoveFromBook_NonMemberIsSkipped(t *testing.T) {
	m, s := newTestManager(t)
	require.NoError(t, m.CreateBook("work"))
	uids := mustCreate(t, m, "", "Alice")

	require.NoError(t, m.RemoveFromBook("work", uids))
	assert.True(t, s.Exists(uids[0]))
	assert.True(t, s.HasMember(store.DefaultBook, uids[0]))
}

func TestRemoveFromBook_MissingBook(t *testing.T) {
	m, _ := newTestManager(t)

	err := m.RemoveFromBook("nope", []uuid.UUID{uuid.New()})
	assert.True(t, cmerr.IsNotFound(err), "got %v", err)
}

func TestAddToBook(t *testing.T) {
	m, s := newTestManager(t)
	require.NoError(t, m.CreateBook("work"))
	uids := mustCreate(t, m, "", "Alice")

	require.NoError(t, m.AddToBook("work", uids))
	require.NoError(t, m.AddToBook("work", uids), "adding twice is a no-op")
	assert.True(t, s.HasMember("work", uids[0]))

	err := m.AddToBook("work", []uuid.UUID{uuid.New()})
	assert.True(t, cmerr.IsNotFound(err), "got %v", err)
}

func TestBooks_PassThrough(t *testing.T) {
	m, _ := newTestManager(t)
	require.NoError(t, m.CreateBook("family"))
	require.NoError(t, m.CreateBook("work"))
	require.NoError(t, m.RenameBook("work", "office"))
	require.NoError(t, m.DeleteBook("family"))

	names, err := m.Books("")
	require.NoError(t, err)
	assert.Equal(t, []string{"default", "office"}, names)

	names, err = m.Books("o*")
	require.NoError(t, err)
	assert.Equal(t, []string{"office"}, names)
}
