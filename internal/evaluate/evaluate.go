// Package evaluate composes the catalog components into one neighborhood
// evaluation per query.
package evaluate

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/afsts/OMeuBairro/internal/catalog"
	"github.com/afsts/OMeuBairro/internal/collective"
	"github.com/afsts/OMeuBairro/internal/region"
	"github.com/afsts/OMeuBairro/internal/score"
)

// ErrNotFound means the query matched no gazetteer key. It is a user-visible
// typed result, not a server failure.
var ErrNotFound = eris.New("evaluate: address or postal code not found")

// Center is the resolved query coordinate.
type Center struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// InfraPoint is one retrieved infrastructure point, serialized with the
// field names established by the original API.
type InfraPoint struct {
	Type       string         `json:"type"`
	Latitude   float64        `json:"Latitude"`
	Longitude  float64        `json:"Longitude"`
	Properties map[string]any `json:"properties"`
}

// Result is the full evaluation response. Absent auxiliary data is null,
// never an error.
type Result struct {
	Center          Center       `json:"center"`
	Infra           []InfraPoint `json:"infra"`
	Acessibilidade  score.Level  `json:"indice_acessibilidade"`
	Conectividade   score.Level  `json:"indice_conectividade"`
	Lazer           score.Level  `json:"indice_lazer"`
	Cultural        score.Level  `json:"indice_cultural"`
	Freguesia       string       `json:"freguesia"`
	Populacao       *float64     `json:"populacao"`
	Edificios       *float64     `json:"edificios"`
	IdadeEdificios  []float64    `json:"idade_edificios"`
	Mobilidade      *score.Level `json:"mobilidade_index"`
	Seguranca       *score.Level `json:"seguranca_index"`
	Servicos        *score.Level `json:"servicos_index"`
	EspacosVerdes   *score.Level `json:"espacos_verdes_index"`
	HigieneUrbana   *score.Level `json:"higiene_urbana_index"`
	Crescimento     *string      `json:"crescimento_index"`
}

// Evaluator answers evaluation queries against an immutable catalog. It is
// safe for concurrent use: every operation is a pure read.
type Evaluator struct {
	cat *catalog.Catalog
}

// New creates an Evaluator over a loaded catalog.
func New(cat *catalog.Catalog) *Evaluator {
	return &Evaluator{cat: cat}
}

// Evaluate resolves the query, retrieves all infrastructure within
// radiusMeters, and assembles the scored result. Returns ErrNotFound when
// the query matches no gazetteer key.
func (e *Evaluator) Evaluate(query string, radiusMeters float64) (*Result, error) {
	rec, ok := e.cat.Gazetteer.Resolve(query)
	if !ok {
		return nil, ErrNotFound
	}

	points := e.cat.Index.RangeQuery(rec.Latitude, rec.Longitude, radiusMeters)

	res := &Result{
		Center:         Center{Lat: rec.Latitude, Lng: rec.Longitude},
		Infra:          make([]InfraPoint, 0, len(points)),
		Acessibilidade: score.Accessibility(points, rec.Latitude, rec.Longitude, nil),
		Conectividade:  score.Connectivity(points, radiusMeters),
		Lazer:          score.Leisure(points),
		Cultural:       score.Cultural(points),
	}
	for _, p := range points {
		res.Infra = append(res.Infra, InfraPoint{
			Type:       p.Category,
			Latitude:   p.Latitude,
			Longitude:  p.Longitude,
			Properties: p.Properties,
		})
	}

	res.Freguesia = e.cat.Regions.Resolve(rec.Latitude, rec.Longitude)
	if res.Freguesia != region.NotFound {
		if v, ok := e.cat.Population[res.Freguesia]; ok {
			res.Populacao = &v
		}
		if v, ok := e.cat.Buildings[res.Freguesia]; ok {
			res.Edificios = &v
		}
		if dist, ok := e.cat.BuildingAges[res.Freguesia]; ok {
			res.IdadeEdificios = dist
		}
	}

	if row, ok := e.cat.Collective.Lookup(rec.Cluster, rec.PostalCode); ok {
		res.Mobilidade = collective.Categorical(row.Mobility)
		res.Seguranca = collective.Categorical(row.Safety)
		res.Servicos = collective.Categorical(row.Services)
		res.EspacosVerdes = collective.Categorical(row.GreenSpaces)
		res.HigieneUrbana = collective.Categorical(row.Hygiene)
		growth := collective.Growth(row.Growth)
		res.Crescimento = &growth
	}

	zap.L().Debug("evaluate: query served",
		zap.String("query", query),
		zap.Float64("radius_m", radiusMeters),
		zap.Int("points", len(points)),
		zap.String("freguesia", res.Freguesia),
	)
	return res, nil
}
