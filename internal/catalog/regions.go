package catalog

import (
	"path/filepath"
	"strings"

	shp "github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"

	"github.com/afsts/OMeuBairro/internal/fetcher"
	"github.com/afsts/OMeuBairro/internal/region"
)

// regionFile mirrors the freguesia reference JSON: each feature carries a
// name and a list of rings of [lon, lat] pairs.
type regionFile struct {
	Features []regionFeature `json:"features"`
}

type regionFeature struct {
	Name        string        `json:"INF_NOME"`
	Coordinates [][][]float64 `json:"Coordinates"`
}

func loadRegions(path string) ([]region.Polygon, []Diagnostic, error) {
	if strings.EqualFold(filepath.Ext(path), ".shp") {
		return loadRegionsShapefile(path)
	}
	return loadRegionsJSON(path)
}

func loadRegionsJSON(path string) ([]region.Polygon, []Diagnostic, error) {
	doc, err := fetcher.DecodeJSONFile[regionFile](path)
	if err != nil {
		return nil, nil, eris.Wrap(err, "catalog: load regions")
	}

	var polys []region.Polygon
	var diags []Diagnostic
	for i, f := range doc.Features {
		name := f.Name
		if name == "" {
			name = "Unknown"
		}
		poly := region.Polygon{Name: name}
		for _, rawRing := range f.Coordinates {
			ring, ok := region.Ring(rawRing)
			if !ok {
				diags = append(diags, Diagnostic{Source: path, Item: i, Reason: "degenerate ring skipped"})
				continue
			}
			poly.Rings = append(poly.Rings, ring)
		}
		// A region with no usable rings still occupies its slot in the scan
		// order; it simply never contains anything.
		polys = append(polys, poly)
	}
	return polys, diags, nil
}

func loadRegionsShapefile(path string) ([]region.Polygon, []Diagnostic, error) {
	reader, err := shp.Open(path)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "catalog: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	nameIdx := shapeFieldIndex(reader, "INF_NOME")
	if nameIdx < 0 {
		nameIdx = shapeFieldIndex(reader, "NAME")
	}
	if nameIdx < 0 {
		return nil, nil, eris.Errorf("catalog: shapefile %s has no INF_NOME or NAME field", path)
	}

	var polys []region.Polygon
	var diags []Diagnostic
	item := -1
	for reader.Next() {
		item++
		_, shape := reader.Shape()

		sp, ok := shape.(*shp.Polygon)
		if !ok {
			diags = append(diags, Diagnostic{Source: path, Item: item, Reason: "not a polygon shape"})
			continue
		}

		name := strings.TrimSpace(reader.Attribute(nameIdx))
		if name == "" {
			name = "Unknown"
		}

		poly := region.Polygon{Name: name}
		for _, rawRing := range polygonRings(sp) {
			ring, ok := region.Ring(rawRing)
			if !ok {
				diags = append(diags, Diagnostic{Source: path, Item: item, Reason: "degenerate ring skipped"})
				continue
			}
			poly.Rings = append(poly.Rings, ring)
		}
		polys = append(polys, poly)
	}
	return polys, diags, nil
}

func shapeFieldIndex(reader *shp.Reader, name string) int {
	for i, f := range reader.Fields() {
		fname := strings.TrimRight(f.String(), "\x00")
		if strings.EqualFold(fname, name) {
			return i
		}
	}
	return -1
}

// polygonRings splits a shapefile polygon into its parts as (lon, lat) pairs.
func polygonRings(sp *shp.Polygon) [][][]float64 {
	n := len(sp.Points)
	rings := make([][][]float64, 0, len(sp.Parts))
	for pi, start := range sp.Parts {
		end := n
		if pi+1 < len(sp.Parts) {
			end = int(sp.Parts[pi+1])
		}
		ring := make([][]float64, 0, end-int(start))
		for _, pt := range sp.Points[start:end] {
			ring = append(ring, []float64{pt.X, pt.Y})
		}
		rings = append(rings, ring)
	}
	return rings
}
