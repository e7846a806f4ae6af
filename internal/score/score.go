// Package score derives the four categorical neighborhood quality indices
// from a retrieved infrastructure point set. All functions are pure and
// total: they never fail and touch no shared state.
package score

import (
	"math"
	"strings"

	"github.com/afsts/OMeuBairro/internal/geoindex"
)

// Level is an ordered categorical quality label:
// Baixo < Moderado < Bom < Excelente.
type Level string

const (
	LevelBaixo     Level = "Baixo"
	LevelModerado  Level = "Moderado"
	LevelBom       Level = "Bom"
	LevelExcelente Level = "Excelente"
)

// minDistanceMeters floors per-point distances in the accessibility score so
// a point at the query center cannot divide by zero.
const minDistanceMeters = 0.0001

// DefaultAccessibilityExclusions are the point types that do not count
// toward accessibility: accident records and street lamps are located
// infrastructure but not amenities.
var DefaultAccessibilityExclusions = []string{"Acidentes", "Candeeiros"}

// transportCategories is the connectivity allowlist. Matching is a substring
// test against the point's category tag, case-sensitive as loaded.
var transportCategories = []string{
	"Carris_Metropolitana",
	"Estações_Metro",
	"Estações_Comboio",
	"Estações_Fluvial",
	"Elevadores_e_Ascensores",
}

// parkTypes are the "type" values counted as parks/recreation by the leisure
// index. Fitness equipment appears here and is also counted separately; the
// resulting double count is the established contract.
var parkTypes = map[string]bool{
	"Parques":                       true,
	"Jardins_Parques_Urbano":        true,
	"Parques_de_Merendas":           true,
	"Parques_Infantis":              true,
	"Desporto_EquipamentosFitness":  true,
	"Miradouros":                    true,
	"Parques_Caninos":               true,
	"Desporto_Instalações":          true,
	"Desporto_ActividadesRadicais":  true,
}

const fitnessType = "Desporto_EquipamentosFitness"

// culturalTypes are the "type" values counted by the cultural index.
var culturalTypes = map[string]bool{
	"Museus":                                   true,
	"Imóveis_e_Monumentos_de_Interesse_Público": true,
	"Teatros":                                  true,
	"Arquitetura_Religiosa":                    true,
	"Património_Mundial":                       true,
	"Estatuária":                               true,
	"Monumentos_Nacionais":                     true,
}

// Accessibility scores how reachable the surrounding infrastructure is:
// the mean inverse great-circle distance to each non-excluded point.
// An empty or fully-excluded set is LevelBaixo regardless of anything else.
func Accessibility(points []*geoindex.Point, lat, lon float64, excluded []string) Level {
	if excluded == nil {
		excluded = DefaultAccessibilityExclusions
	}
	skip := make(map[string]bool, len(excluded))
	for _, t := range excluded {
		skip[t] = true
	}

	var invSum float64
	var count int
	for _, p := range points {
		if skip[p.TypeAttr()] {
			continue
		}
		dist := geoindex.Haversine(lat, lon, p.Latitude, p.Longitude)
		if dist < minDistanceMeters {
			dist = minDistanceMeters
		}
		invSum += 1 / dist
		count++
	}

	if count == 0 {
		return LevelBaixo
	}
	return AccessibilityLevel(invSum / float64(count))
}

// AccessibilityLevel maps a mean inverse-distance score to its label.
// Comparisons are strict: a score of exactly 0.01 is Bom, not Excelente.
func AccessibilityLevel(score float64) Level {
	switch {
	case score > 0.01:
		return LevelExcelente
	case score > 0.007:
		return LevelBom
	case score > 0.004:
		return LevelModerado
	default:
		return LevelBaixo
	}
}

// Connectivity scores public-transport coverage: the density of transport
// points per km² of the query circle.
func Connectivity(points []*geoindex.Point, radiusMeters float64) Level {
	if radiusMeters <= 0 {
		return LevelBaixo
	}

	var total int
	for _, p := range points {
		for _, cat := range transportCategories {
			if strings.Contains(p.Category, cat) {
				total++
				break
			}
		}
	}

	areaKm2 := math.Pi * math.Pow(radiusMeters/1000, 2)
	return ConnectivityLevel(float64(total) / areaKm2)
}

// ConnectivityLevel maps a transport density (points per km²) to its label.
func ConnectivityLevel(density float64) Level {
	switch {
	case density > 50:
		return LevelExcelente
	case density > 30:
		return LevelBom
	case density > 15:
		return LevelModerado
	default:
		return LevelBaixo
	}
}

// Leisure scores parks and recreation. areaTotal stays in the formula even
// though no source populates an area attribute yet; the term is inert until
// one does.
func Leisure(points []*geoindex.Point) Level {
	var areaTotal float64
	var parques, equipamentos int

	for _, p := range points {
		t := p.TypeAttr()
		if parkTypes[t] {
			parques++
		}
		if t == fitnessType {
			equipamentos++
		}
	}

	return LeisureLevel(areaTotal/10000 + float64(parques) + float64(equipamentos))
}

// LeisureLevel maps a leisure score to its label.
func LeisureLevel(score float64) Level {
	switch {
	case score > 10:
		return LevelExcelente
	case score > 6:
		return LevelBom
	case score > 3:
		return LevelModerado
	default:
		return LevelBaixo
	}
}

// Cultural scores cultural heritage by counting points of cultural types.
func Cultural(points []*geoindex.Point) Level {
	var total int
	for _, p := range points {
		if culturalTypes[p.TypeAttr()] {
			total++
		}
	}
	return CulturalLevel(total)
}

// CulturalLevel maps a cultural point count to its label.
func CulturalLevel(count int) Level {
	switch {
	case count > 5:
		return LevelExcelente
	case count > 3:
		return LevelBom
	case count > 1:
		return LevelModerado
	default:
		return LevelBaixo
	}
}
