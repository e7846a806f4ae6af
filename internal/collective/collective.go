// Package collective looks up externally-sourced "collective intelligence"
// indices for a location and maps their raw [0,1] values to categorical
// labels.
package collective

import "github.com/afsts/OMeuBairro/internal/score"

// NoCluster is the cluster id meaning "no cluster assigned"; such locations
// are joined by postal code instead. Clusters and postal codes are mutually
// exclusive join keys.
const NoCluster = -1

// Row is one collective-intelligence record. The five index columns and the
// growth column are continuous values in [0,1].
type Row struct {
	Cluster     int
	PostalCode  string
	Mobility    float64
	Safety      float64
	Services    float64
	GreenSpaces float64
	Hygiene     float64
	Growth      float64
}

// Table is the immutable collective-intelligence lookup table.
type Table struct {
	byCluster map[int]Row
	byPostal  map[string]Row
}

// NewTable indexes rows by cluster id and by postal code. When two rows
// share a key the first one wins.
func NewTable(rows []Row) *Table {
	t := &Table{
		byCluster: make(map[int]Row, len(rows)),
		byPostal:  make(map[string]Row, len(rows)),
	}
	for _, r := range rows {
		if r.Cluster != NoCluster {
			if _, ok := t.byCluster[r.Cluster]; !ok {
				t.byCluster[r.Cluster] = r
			}
		}
		if r.PostalCode != "" {
			if _, ok := t.byPostal[r.PostalCode]; !ok {
				t.byPostal[r.PostalCode] = r
			}
		}
	}
	return t
}

// Len reports the number of distinct cluster keys plus postal keys.
func (t *Table) Len() int { return len(t.byCluster) + len(t.byPostal) }

// Lookup selects the row for a location: by exact postal code when the
// cluster is NoCluster, otherwise by cluster id (ignoring the postal code).
// An empty result is a valid, reportable state, not an error.
func (t *Table) Lookup(cluster int, postalCode string) (Row, bool) {
	if cluster == NoCluster {
		r, ok := t.byPostal[postalCode]
		return r, ok
	}
	r, ok := t.byCluster[cluster]
	return r, ok
}

// Categorical maps a raw [0,1] index value to a quality label, or nil for
// out-of-range (negative) values.
func Categorical(v float64) *score.Level {
	var l score.Level
	switch {
	case v > 0.75:
		l = score.LevelExcelente
	case v > 0.50:
		l = score.LevelBom
	case v > 0.25:
		l = score.LevelModerado
	case v >= 0:
		l = score.LevelBaixo
	default:
		return nil
	}
	return &l
}

// Growth maps the growth column to its binary label.
func Growth(v float64) string {
	if v > 0.5 {
		return "Sim"
	}
	return "Não"
}
