// Package fetcher parses local reference data files (CSV, JSON, XLSX) for
// the catalog loaders.
package fetcher

import (
	"encoding/csv"
	"os"
	"strings"

	"github.com/rotisserie/eris"
)

// CSVOptions configures the CSV parser.
type CSVOptions struct {
	Delimiter  rune // default ','
	Comment    rune // comment character (0 = none)
	LazyQuotes bool
	TrimSpace  bool
}

// ReadCSV reads a CSV file and returns the header row and all data rows.
// Rows may have a variable number of fields.
func ReadCSV(path string, opts CSVOptions) (header []string, rows [][]string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "csv: open %s", path)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	if opts.Comment != 0 {
		reader.Comment = opts.Comment
	}
	reader.LazyQuotes = opts.LazyQuotes
	reader.FieldsPerRecord = -1 // allow variable fields

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, eris.Wrapf(err, "csv: read %s", path)
	}
	if len(records) == 0 {
		return nil, nil, eris.Errorf("csv: %s is empty", path)
	}

	if opts.TrimSpace {
		for _, record := range records {
			for i, field := range record {
				record[i] = strings.TrimSpace(field)
			}
		}
	}

	return records[0], records[1:], nil
}

// HeaderIndex builds a column name -> position map from a header row.
// Names are matched after trimming; lookups are case-sensitive because the
// reference datasets mix cased and accented column names.
func HeaderIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	return idx
}
