// Package geoindex provides an immutable spatial index over infrastructure
// points supporting range queries under the haversine great-circle metric.
//
// The index is an R-tree over raw lat/lon degrees: a range query first
// collects candidates inside a local-equirectangular bounding box sized from
// the angular radius, then keeps exactly the points whose haversine distance
// from the center is <= the requested radius.
package geoindex

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"
)

// rectTol is the half-side of the degenerate rectangle each point occupies
// in the tree. Small enough to never widen a query box measurably.
const rectTol = 1e-9

type entry struct {
	pt   *Point
	seq  int // insertion order, used for deterministic query results
	rect rtreego.Rect
}

func (e *entry) Bounds() rtreego.Rect { return e.rect }

// Index is a read-only spatial index. Construct it once at startup with New;
// concurrent RangeQuery calls need no locking.
type Index struct {
	tree *rtreego.Rtree
	size int
}

// New builds the index from the full point collection.
func New(points []*Point) *Index {
	entries := make([]rtreego.Spatial, 0, len(points))
	for i, p := range points {
		loc := rtreego.Point{p.Longitude, p.Latitude}
		entries = append(entries, &entry{pt: p, seq: i, rect: loc.ToRect(rectTol)})
	}
	return &Index{
		tree: rtreego.NewTree(2, 25, 50, entries...),
		size: len(entries),
	}
}

// Len reports the number of indexed points.
func (ix *Index) Len() int { return ix.size }

// RangeQuery returns every point whose great-circle distance from the center
// is <= radiusMeters (boundary points included). Results are ordered by the
// points' load order, so repeated queries against one build are reproducible.
// A radius <= 0 yields an empty result, never an error.
func (ix *Index) RangeQuery(lat, lon, radiusMeters float64) []*Point {
	if radiusMeters <= 0 || ix.size == 0 {
		return nil
	}

	bb, ok := searchBox(lat, lon, radiusMeters)
	if !ok {
		return nil
	}

	candidates := ix.tree.SearchIntersect(bb)

	matched := make([]*entry, 0, len(candidates))
	for _, c := range candidates {
		e := c.(*entry)
		if Haversine(lat, lon, e.pt.Latitude, e.pt.Longitude) <= radiusMeters {
			matched = append(matched, e)
		}
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].seq < matched[j].seq })

	out := make([]*Point, len(matched))
	for i, e := range matched {
		out[i] = e.pt
	}
	return out
}

// searchBox returns a bounding box in degrees guaranteed to contain the
// radius circle. The longitude span is widened by the latitude cosine; near
// the poles it degrades to the full longitude range.
func searchBox(lat, lon, radiusMeters float64) (rtreego.Rect, bool) {
	angDeg := radiusMeters / EarthRadiusMeters * 180 / math.Pi

	// Slack absorbs the equirectangular approximation and float rounding so
	// boundary points are never pruned before the exact haversine test.
	latSpan := angDeg*1.001 + 1e-9

	lonSpan := 180.0
	if cosLat := math.Cos(lat * math.Pi / 180); cosLat > 1e-6 {
		lonSpan = math.Min(180, latSpan/cosLat)
	}

	bb, err := rtreego.NewRect(
		rtreego.Point{lon - lonSpan, lat - latSpan},
		[]float64{2 * lonSpan, 2 * latSpan},
	)
	if err != nil {
		return rtreego.Rect{}, false
	}
	return bb, true
}
