package catalog

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/afsts/OMeuBairro/internal/fetcher"
	"github.com/afsts/OMeuBairro/internal/geoindex"
)

// manifestName is the optional per-directory dataset manifest. Without one,
// every *.json file in the infra directory is loaded and its category tag is
// the file basename.
const manifestName = "manifest.yaml"

type infraManifest struct {
	Datasets []infraDataset `yaml:"datasets"`
}

type infraDataset struct {
	File     string `yaml:"file"`
	Category string `yaml:"category"` // optional, defaults to file basename
}

type infraFile struct {
	Features []map[string]any `json:"features"`
}

func loadInfra(ctx context.Context, dir string) ([]*geoindex.Point, []Diagnostic, error) {
	datasets, err := infraDatasets(dir)
	if err != nil {
		return nil, nil, err
	}
	if len(datasets) == 0 {
		return nil, nil, eris.Errorf("catalog: no infrastructure datasets in %s", dir)
	}

	var points []*geoindex.Point
	var diags []Diagnostic
	for _, ds := range datasets {
		if err := ctx.Err(); err != nil {
			return nil, nil, eris.Wrap(err, "catalog: load infra cancelled")
		}

		doc, err := fetcher.DecodeJSONFile[infraFile](ds.File)
		if err != nil {
			return nil, nil, eris.Wrapf(err, "catalog: load infra %s", ds.File)
		}

		for i, item := range doc.Features {
			pt, reason := parseFeature(ds.Category, item)
			if pt == nil {
				diags = append(diags, Diagnostic{Source: ds.File, Item: i, Reason: reason})
				continue
			}
			points = append(points, pt)
		}
	}
	return points, diags, nil
}

func infraDatasets(dir string) ([]infraDataset, error) {
	manifestPath := filepath.Join(dir, manifestName)
	if raw, err := os.ReadFile(manifestPath); err == nil {
		var m infraManifest
		if err := yaml.Unmarshal(raw, &m); err != nil {
			return nil, eris.Wrapf(err, "catalog: parse %s", manifestPath)
		}
		datasets := make([]infraDataset, 0, len(m.Datasets))
		for _, ds := range m.Datasets {
			if ds.Category == "" {
				ds.Category = categoryFromFile(ds.File)
			}
			ds.File = filepath.Join(dir, ds.File)
			datasets = append(datasets, ds)
		}
		return datasets, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, eris.Wrapf(err, "catalog: glob %s", dir)
	}
	datasets := make([]infraDataset, 0, len(files))
	for _, f := range files {
		datasets = append(datasets, infraDataset{File: f, Category: categoryFromFile(f)})
	}
	return datasets, nil
}

func categoryFromFile(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".json")
}

// parseFeature extracts one point from a source feature. Coordinates come
// from the flat Latitude/Longitude fields when present, otherwise from
// geometry.coordinates ([lon, lat]). Features with neither are dropped.
func parseFeature(category string, item map[string]any) (*geoindex.Point, string) {
	lat, latOK := coordField(item, "Latitude")
	lng, lngOK := coordField(item, "Longitude")

	if !latOK || !lngOK {
		glat, glng, ok := geometryCoords(item)
		if !ok {
			return nil, "missing coordinates"
		}
		lat, lng = glat, glng
	}

	props, _ := item["properties"].(map[string]any)
	if props == nil {
		// No properties object: the feature's own fields stand in for it.
		props = item
	}
	if _, ok := props["type"]; !ok {
		props["type"] = category
	}

	return &geoindex.Point{
		Category:   category,
		Latitude:   lat,
		Longitude:  lng,
		Properties: props,
	}, ""
}

func coordField(item map[string]any, key string) (float64, bool) {
	v, ok := item[key]
	if !ok || v == nil {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func geometryCoords(item map[string]any) (lat, lng float64, ok bool) {
	geometry, _ := item["geometry"].(map[string]any)
	if geometry == nil {
		return 0, 0, false
	}
	coords, _ := geometry["coordinates"].([]any)
	if len(coords) < 2 {
		return 0, 0, false
	}
	lngV, lngOK := coords[0].(float64)
	latV, latOK := coords[1].(float64)
	if !lngOK || !latOK {
		return 0, 0, false
	}
	return latV, lngV, true
}
