package catalog

import (
	"github.com/rotisserie/eris"

	"github.com/afsts/OMeuBairro/internal/fetcher"
)

// loadNumericTable reads a region-name -> number mapping (population and
// building counts share this shape).
func loadNumericTable(path string) (map[string]float64, error) {
	table, err := fetcher.DecodeJSONFile[map[string]float64](path)
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: load table %s", path)
	}
	return *table, nil
}

// loadAgeTable reads the building-age distribution table. Each region maps
// to a single nested object whose value is the ordered distribution; only
// that first (and in practice only) list is reported.
func loadAgeTable(path string) (map[string][]float64, error) {
	table, err := fetcher.DecodeJSONFile[map[string]map[string][]float64](path)
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: load building ages %s", path)
	}

	ages := make(map[string][]float64, len(*table))
	for name, inner := range *table {
		for _, dist := range inner {
			ages[name] = dist
			break
		}
	}
	return ages, nil
}
