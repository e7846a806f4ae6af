// Package region resolves coordinates to the administrative region
// (freguesia) that contains them.
package region

import (
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
)

// NotFound is the sentinel name returned when no region contains the point.
// It is a reportable absence, not an error.
const NotFound = "Not found"

// Polygon is one region: a name plus its rings as flat (lon, lat) coordinate
// sequences. Rings are tested independently as simple polygons.
type Polygon struct {
	Name  string
	Rings [][]float64
}

// Ring builds a closed flat ring from (lon, lat) pairs. It returns false for
// degenerate rings (fewer than 3 distinct vertices), which callers skip.
func Ring(coords [][]float64) ([]float64, bool) {
	if len(coords) < 3 {
		return nil, false
	}
	flat := make([]float64, 0, (len(coords)+1)*2)
	for _, c := range coords {
		if len(c) < 2 {
			return nil, false
		}
		flat = append(flat, c[0], c[1])
	}
	// Close the ring if the source didn't.
	n := len(flat)
	if flat[0] != flat[n-2] || flat[1] != flat[n-1] {
		flat = append(flat, flat[0], flat[1])
	}
	if len(flat) < 8 { // 3 distinct vertices + closure
		return nil, false
	}
	return flat, true
}

// Matcher performs first-match point-in-region resolution. Region order is
// significant: when polygons overlap, the earlier one in load order wins.
type Matcher struct {
	polys []Polygon
}

// NewMatcher builds a matcher over regions in their load order.
func NewMatcher(polys []Polygon) *Matcher {
	return &Matcher{polys: polys}
}

// Len reports the number of regions.
func (m *Matcher) Len() int { return len(m.polys) }

// Resolve returns the name of the first region with a ring containing the
// point, or NotFound. It never fails: rings that could not be constructed
// were already dropped at load time.
func (m *Matcher) Resolve(lat, lon float64) string {
	pt := geom.Coord{lon, lat}
	for _, poly := range m.polys {
		for _, ring := range poly.Rings {
			if xy.IsPointInRing(geom.XY, pt, ring) {
				return poly.Name
			}
		}
	}
	return NotFound
}
