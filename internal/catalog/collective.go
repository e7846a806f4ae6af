package catalog

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/afsts/OMeuBairro/internal/collective"
	"github.com/afsts/OMeuBairro/internal/fetcher"
)

// Column names as they appear in the collective-intelligence dataset.
var collectiveColumns = []string{
	"cluster",
	"Postal Code",
	"Mobilidade_Index",
	"Segurança_Index",
	"Serviços_Index",
	"Espaços Verdes_Index",
	"Higiene Urbana_Index",
	"Crescimento_Index",
}

// loadCollective reads the collective-intelligence table from CSV or XLSX,
// depending on the file extension.
func loadCollective(path string) ([]collective.Row, []Diagnostic, error) {
	var header []string
	var rows [][]string
	var err error

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		header, rows, err = fetcher.ReadXLSX(path, fetcher.XLSXOptions{})
	} else {
		header, rows, err = fetcher.ReadCSV(path, fetcher.CSVOptions{TrimSpace: true})
	}
	if err != nil {
		return nil, nil, eris.Wrap(err, "catalog: load collective intelligence")
	}

	idx := fetcher.HeaderIndex(header)
	for _, col := range collectiveColumns {
		if _, ok := idx[col]; !ok {
			return nil, nil, eris.Errorf("catalog: collective intelligence file %s is missing column %q", path, col)
		}
	}

	var out []collective.Row
	var diags []Diagnostic
	for i, row := range rows {
		r, reason := parseCollectiveRow(idx, row)
		if reason != "" {
			diags = append(diags, Diagnostic{Source: path, Item: i, Reason: reason})
			continue
		}
		out = append(out, r)
	}
	return out, diags, nil
}

func parseCollectiveRow(idx map[string]int, row []string) (collective.Row, string) {
	cell := func(col string) (string, bool) {
		i := idx[col]
		if i >= len(row) {
			return "", false
		}
		return strings.TrimSpace(row[i]), true
	}

	clusterRaw, ok := cell("cluster")
	if !ok {
		return collective.Row{}, "row too short"
	}
	// Cluster ids arrive as "3", "-1", or "3.0" depending on the export.
	clusterF, err := strconv.ParseFloat(clusterRaw, 64)
	if err != nil {
		return collective.Row{}, "unparseable cluster id"
	}

	postal, _ := cell("Postal Code")

	values := make(map[string]float64, 6)
	for _, col := range collectiveColumns[2:] {
		raw, ok := cell(col)
		if !ok {
			return collective.Row{}, "row too short"
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return collective.Row{}, "unparseable value in " + col
		}
		values[col] = v
	}

	return collective.Row{
		Cluster:     int(clusterF),
		PostalCode:  postal,
		Mobility:    values["Mobilidade_Index"],
		Safety:      values["Segurança_Index"],
		Services:    values["Serviços_Index"],
		GreenSpaces: values["Espaços Verdes_Index"],
		Hygiene:     values["Higiene Urbana_Index"],
		Growth:      values["Crescimento_Index"],
	}, ""
}
