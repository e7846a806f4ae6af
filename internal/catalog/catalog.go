// Package catalog loads all reference datasets into a single immutable
// Catalog at process startup. Serving must not begin until Load returns:
// after that the catalog is process-wide read-only state and requests read
// it concurrently without locks.
package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/afsts/OMeuBairro/internal/collective"
	"github.com/afsts/OMeuBairro/internal/config"
	"github.com/afsts/OMeuBairro/internal/gazetteer"
	"github.com/afsts/OMeuBairro/internal/geoindex"
	"github.com/afsts/OMeuBairro/internal/region"
)

// Diagnostic records one reference item skipped during loading. Per-item
// failures never abort a load; they are collected here so operators (and
// tests) can see drop counts and reasons.
type Diagnostic struct {
	Source string // file the item came from
	Item   int    // index of the item within the file
	Reason string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s[%d]: %s", d.Source, d.Item, d.Reason)
}

// Catalog is the immutable reference state behind every request.
type Catalog struct {
	Gazetteer    *gazetteer.Index
	Suggester    *gazetteer.Suggester
	Points       []*geoindex.Point
	Index        *geoindex.Index
	Regions      *region.Matcher
	Population   map[string]float64
	Buildings    map[string]float64
	BuildingAges map[string][]float64
	Collective   *collective.Table

	// Diagnostics lists every item dropped while loading, in source order.
	Diagnostics []Diagnostic
}

// Load reads every reference dataset. Missing or unreadable files are fatal:
// the process must not serve from a partial catalog. Malformed individual
// items are skipped and reported in Diagnostics.
func Load(ctx context.Context, cfg config.DataConfig) (*Catalog, error) {
	log := zap.L().With(zap.String("component", "catalog"))

	var (
		entries     []gazetteer.Entry
		points      []*geoindex.Point
		infraDiags  []Diagnostic
		polys       []region.Polygon
		regionDiags []Diagnostic
		population  map[string]float64
		buildings   map[string]float64
		ages        map[string][]float64
		rows        []collective.Row
		ciDiags     []Diagnostic
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entries, err = loadGazetteer(cfg.GazetteerPath)
		return err
	})
	g.Go(func() error {
		var err error
		points, infraDiags, err = loadInfra(ctx, cfg.InfraDir)
		return err
	})
	g.Go(func() error {
		var err error
		polys, regionDiags, err = loadRegions(cfg.RegionsPath)
		return err
	})
	g.Go(func() error {
		var err error
		population, err = loadNumericTable(cfg.PopulationPath)
		return err
	})
	g.Go(func() error {
		var err error
		buildings, err = loadNumericTable(cfg.BuildingsPath)
		return err
	})
	g.Go(func() error {
		var err error
		ages, err = loadAgeTable(cfg.BuildingAgesPath)
		return err
	})
	g.Go(func() error {
		var err error
		rows, ciDiags, err = loadCollective(cfg.CollectivePath)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ix := gazetteer.NewIndex(entries)
	cat := &Catalog{
		Gazetteer:    ix,
		Suggester:    gazetteer.NewSuggester(ix.Keys()),
		Points:       points,
		Index:        geoindex.New(points),
		Regions:      region.NewMatcher(polys),
		Population:   population,
		Buildings:    buildings,
		BuildingAges: ages,
		Collective:   collective.NewTable(rows),
	}
	cat.Diagnostics = append(cat.Diagnostics, infraDiags...)
	cat.Diagnostics = append(cat.Diagnostics, regionDiags...)
	cat.Diagnostics = append(cat.Diagnostics, ciDiags...)

	log.Info("catalog loaded",
		zap.Int("gazetteer_keys", ix.Len()),
		zap.Int("infra_points", len(points)),
		zap.Int("regions", cat.Regions.Len()),
		zap.Int("collective_rows", len(rows)),
		zap.Int("dropped_items", len(cat.Diagnostics)),
	)
	return cat, nil
}
