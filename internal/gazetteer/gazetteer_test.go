package gazetteer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntries() []Entry {
	return []Entry{
		{StreetName: "Avenida da Liberdade", PostalCode: "1250-096", Latitude: 38.7205, Longitude: -9.1451, Cluster: 3},
		{StreetName: "Rua Augusta", PostalCode: "1100-053", Latitude: 38.7103, Longitude: -9.1380, Cluster: -1},
		{StreetName: "  Praça do Comércio  ", PostalCode: "1100-148", Latitude: 38.7077, Longitude: -9.1365, Cluster: 5},
	}
}

func TestResolveByBothKeys(t *testing.T) {
	ix := NewIndex(testEntries())

	// Every entry resolves identically under its street-name key and its
	// postal-code key.
	byStreet, ok := ix.Resolve("Avenida da Liberdade")
	require.True(t, ok)
	byPostal, ok := ix.Resolve("1250-096")
	require.True(t, ok)
	assert.Equal(t, byStreet, byPostal)
	assert.Equal(t, 38.7205, byStreet.Latitude)
	assert.Equal(t, 3, byStreet.Cluster)
	assert.Equal(t, "1250-096", byStreet.PostalCode)
}

func TestResolveNormalizesQuery(t *testing.T) {
	ix := NewIndex(testEntries())

	rec, ok := ix.Resolve("  RUA AUGUSTA  ")
	require.True(t, ok)
	assert.Equal(t, -1, rec.Cluster)

	// Keys themselves are stored trimmed and lowercased.
	rec, ok = ix.Resolve("praça do comércio")
	require.True(t, ok)
	assert.Equal(t, 5, rec.Cluster)
}

func TestResolveNotFound(t *testing.T) {
	ix := NewIndex(testEntries())

	_, ok := ix.Resolve("rua inexistente")
	assert.False(t, ok)
	// No fuzzy correction happens here.
	_, ok = ix.Resolve("rua agusta")
	assert.False(t, ok)
}

func TestIndexKeyCount(t *testing.T) {
	ix := NewIndex(testEntries())
	// Three streets + three postal codes, no collisions.
	assert.Equal(t, 6, ix.Len())
	assert.Len(t, ix.Keys(), 6)
}
