package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// square builds a closed ring around the given corner coordinates.
func square(minLon, minLat, maxLon, maxLat float64) []float64 {
	ring, ok := Ring([][]float64{
		{minLon, minLat},
		{maxLon, minLat},
		{maxLon, maxLat},
		{minLon, maxLat},
	})
	if !ok {
		panic("square ring construction failed")
	}
	return ring
}

func TestResolveContainment(t *testing.T) {
	m := NewMatcher([]Polygon{
		{Name: "Santa Maria Maior", Rings: [][]float64{square(-9.15, 38.70, -9.12, 38.72)}},
		{Name: "Alvalade", Rings: [][]float64{square(-9.16, 38.74, -9.13, 38.76)}},
	})

	assert.Equal(t, "Santa Maria Maior", m.Resolve(38.71, -9.13))
	assert.Equal(t, "Alvalade", m.Resolve(38.75, -9.14))
	assert.Equal(t, NotFound, m.Resolve(40.0, -8.0))
}

func TestResolveFirstMatchWins(t *testing.T) {
	// Overlapping polygons: the earlier one in load order always wins.
	overlap := square(-9.15, 38.70, -9.12, 38.72)
	m := NewMatcher([]Polygon{
		{Name: "Primeira", Rings: [][]float64{overlap}},
		{Name: "Segunda", Rings: [][]float64{overlap}},
	})

	assert.Equal(t, "Primeira", m.Resolve(38.71, -9.13))
}

func TestResolveMultipleRings(t *testing.T) {
	m := NewMatcher([]Polygon{
		{Name: "Duas Ilhas", Rings: [][]float64{
			square(-9.15, 38.70, -9.14, 38.71),
			square(-9.12, 38.73, -9.11, 38.74),
		}},
	})

	assert.Equal(t, "Duas Ilhas", m.Resolve(38.705, -9.145))
	assert.Equal(t, "Duas Ilhas", m.Resolve(38.735, -9.115))
	assert.Equal(t, NotFound, m.Resolve(38.72, -9.13))
}

func TestRingRejectsDegenerate(t *testing.T) {
	_, ok := Ring(nil)
	assert.False(t, ok)

	_, ok = Ring([][]float64{{-9.1, 38.7}, {-9.2, 38.8}})
	assert.False(t, ok)

	_, ok = Ring([][]float64{{-9.1}, {-9.2, 38.8}, {-9.3, 38.9}})
	assert.False(t, ok)
}

func TestRingClosesOpenRings(t *testing.T) {
	ring, ok := Ring([][]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}})
	require.True(t, ok)
	n := len(ring)
	assert.Equal(t, ring[0], ring[n-2])
	assert.Equal(t, ring[1], ring[n-1])
}

func TestResolveEmptyMatcher(t *testing.T) {
	m := NewMatcher(nil)
	assert.Equal(t, NotFound, m.Resolve(38.71, -9.13))
	assert.Zero(t, m.Len())
}
