package contacts

import (
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/roach88/cardbook/internal/store"
	"github.com/roach88/cardbook/internal/testutil"
	"github.com/roach88/cardbook/internal/vcard"
)

// newTestManager returns a Manager over a fresh store with deterministic
// UIDs and REV stamps.
func newTestManager(t *testing.T, opts ...Option) (*Manager, *store.Store) {
	t.Helper()
	s := testutil.NewStore(t)
	opts = append([]Option{
		WithUIDGenerator(testutil.NewSequentialUIDs()),
		WithClock(testutil.NewFixedClock(testutil.DefaultEpoch)),
	}, opts...)
	return New(s, opts...), s
}

func mustCreate(t *testing.T, m *Manager, book string, names ...string) []uuid.UUID {
	t.Helper()
	uids, err := m.CreateContact(book, names)
	require.NoError(t, err)
	require.Len(t, uids, len(names))
	return uids
}

func props(t *testing.T, texts ...string) []vcard.Property {
	t.Helper()
	ps, err := vcard.ParseProperties(texts)
	require.NoError(t, err)
	return ps
}

func readOne(t *testing.T, s *store.Store, uid uuid.UUID) *vcard.Contact {
	t.Helper()
	cs, err := s.ReadByUID([]uuid.UUID{uid})
	require.NoError(t, err)
	require.Len(t, cs, 1)
	return cs[0]
}

func values(ps []vcard.Property) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Value
	}
	return out
}

func writeRaw(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o600)
}
