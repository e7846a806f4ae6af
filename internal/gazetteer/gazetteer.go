// Package gazetteer maps street names and postal codes to coordinates and
// cluster ids, and produces fuzzy key suggestions for autocomplete.
package gazetteer

import "strings"

// Entry is one gazetteer record as loaded from the reference file.
type Entry struct {
	StreetName string
	PostalCode string
	Latitude   float64
	Longitude  float64
	// Cluster is the collective-intelligence grouping id, or -1 when the
	// location has no cluster assigned.
	Cluster int
}

// Record is the resolution result for a query.
type Record struct {
	Latitude   float64
	Longitude  float64
	Cluster    int
	PostalCode string
}

// Index is the immutable exact-key location index. Every entry is reachable
// under both its street-name key and its postal-code key, lowercased and
// trimmed.
type Index struct {
	byKey map[string]Record
	keys  []string
}

// NewIndex builds the index. When two entries normalize to the same key the
// later one wins, matching the load-order semantics of the source table.
func NewIndex(entries []Entry) *Index {
	ix := &Index{byKey: make(map[string]Record, 2*len(entries))}
	for _, e := range entries {
		rec := Record{
			Latitude:   e.Latitude,
			Longitude:  e.Longitude,
			Cluster:    e.Cluster,
			PostalCode: e.PostalCode,
		}
		ix.put(Normalize(e.StreetName), rec)
		ix.put(Normalize(e.PostalCode), rec)
	}
	return ix
}

func (ix *Index) put(key string, rec Record) {
	if key == "" {
		return
	}
	if _, exists := ix.byKey[key]; !exists {
		ix.keys = append(ix.keys, key)
	}
	ix.byKey[key] = rec
}

// Normalize trims and lowercases a query or key. No further normalization
// happens here; fuzzy correction is the suggester's job.
func Normalize(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// Resolve looks up a query by exact normalized key. The second return is
// false when neither a street-name key nor a postal-code key matches.
func (ix *Index) Resolve(query string) (Record, bool) {
	rec, ok := ix.byKey[Normalize(query)]
	return rec, ok
}

// Keys returns all indexed keys in insertion order. The slice is shared:
// callers must not mutate it.
func (ix *Index) Keys() []string { return ix.keys }

// Len reports the number of distinct keys.
func (ix *Index) Len() int { return len(ix.keys) }
