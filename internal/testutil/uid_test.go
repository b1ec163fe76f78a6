package testutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequentialUIDs_Order(t *testing.T) {
	gen := NewSequentialUIDs()

	first := gen.Generate()
	second := gen.Generate()

	assert.Equal(t, "00000000-0000-7000-8000-000000000001", first.String())
	assert.Equal(t, UID(2), second)
	assert.Less(t, first.String(), second.String())
}

func TestSequentialUIDs_Independent(t *testing.T) {
	a := NewSequentialUIDs()
	b := NewSequentialUIDs()

	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Generate(), b.Generate())
	}
}

func TestNewStore(t *testing.T) {
	s := NewStore(t)

	names, err := s.BookNames("")
	require.NoError(t, err)
	assert.Equal(t, []string{"default"}, names)
}

func TestWriteFile(t *testing.T) {
	path := WriteFile(t, "cards.vcf", "hello")

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))
}
