package catalog

import (
	"github.com/rotisserie/eris"

	"github.com/afsts/OMeuBairro/internal/fetcher"
	"github.com/afsts/OMeuBairro/internal/gazetteer"
)

// gazetteerRow mirrors one record of the postal-code reference file.
type gazetteerRow struct {
	StreetName string  `json:"Street Name"`
	PostalCode string  `json:"Postal Code"`
	Latitude   float64 `json:"Latitude"`
	Longitude  float64 `json:"Longitude"`
	Cluster    *int    `json:"cluster"`
}

func loadGazetteer(path string) ([]gazetteer.Entry, error) {
	rows, err := fetcher.DecodeJSONFile[[]gazetteerRow](path)
	if err != nil {
		return nil, eris.Wrap(err, "catalog: load gazetteer")
	}

	entries := make([]gazetteer.Entry, 0, len(*rows))
	for _, r := range *rows {
		cluster := -1 // no cluster assigned
		if r.Cluster != nil {
			cluster = *r.Cluster
		}
		entries = append(entries, gazetteer.Entry{
			StreetName: r.StreetName,
			PostalCode: r.PostalCode,
			Latitude:   r.Latitude,
			Longitude:  r.Longitude,
			Cluster:    cluster,
		})
	}
	return entries, nil
}
