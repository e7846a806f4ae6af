package score

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/afsts/OMeuBairro/internal/geoindex"
)

const (
	centerLat = 38.7169
	centerLon = -9.1399
)

// pointAt places a point the given distance due north of the test center, so
// its haversine distance is exact.
func pointAt(category, typ string, meters float64) *geoindex.Point {
	dLat := meters / geoindex.EarthRadiusMeters * 180 / math.Pi
	return &geoindex.Point{
		Category:   category,
		Latitude:   centerLat + dLat,
		Longitude:  centerLon,
		Properties: map[string]any{"type": typ},
	}
}

func TestAccessibilityEmptySet(t *testing.T) {
	assert.Equal(t, LevelBaixo, Accessibility(nil, centerLat, centerLon, nil))
}

func TestAccessibilityFullyExcluded(t *testing.T) {
	points := []*geoindex.Point{
		pointAt("Acidentes", "Acidentes", 10),
		pointAt("Candeeiros", "Candeeiros", 20),
	}
	// Every point excluded: Baixo regardless of how close they are.
	assert.Equal(t, LevelBaixo, Accessibility(points, centerLat, centerLon, nil))
}

func TestAccessibilityExclusionOverride(t *testing.T) {
	points := []*geoindex.Point{
		pointAt("Candeeiros", "Candeeiros", 50),
	}
	// With an explicit empty exclusion list the lamp counts: 1/50 = 0.02.
	assert.Equal(t, LevelExcelente, Accessibility(points, centerLat, centerLon, []string{}))
}

func TestAccessibilityMeanInverseDistance(t *testing.T) {
	points := []*geoindex.Point{
		pointAt("Museus", "Museus", 50),
		pointAt("Parques", "Parques", 200),
		pointAt("Carris_Metropolitana", "Carris_Metropolitana", 480),
	}
	// (1/50 + 1/200 + 1/480) / 3 = 0.00903, which lands in Bom.
	assert.Equal(t, LevelBom, Accessibility(points, centerLat, centerLon, nil))
}

func TestAccessibilityZeroDistanceFloor(t *testing.T) {
	points := []*geoindex.Point{
		{Category: "Museus", Latitude: centerLat, Longitude: centerLon, Properties: map[string]any{"type": "Museus"}},
	}
	// A point at the center is floored to 0.0001 m, not a division by zero.
	assert.Equal(t, LevelExcelente, Accessibility(points, centerLat, centerLon, nil))
}

func TestAccessibilityLevelBoundaries(t *testing.T) {
	// Comparisons are strict: a score exactly on a threshold takes the
	// lower label.
	assert.Equal(t, LevelBom, AccessibilityLevel(0.01))
	assert.Equal(t, LevelExcelente, AccessibilityLevel(0.010001))
	assert.Equal(t, LevelModerado, AccessibilityLevel(0.007))
	assert.Equal(t, LevelBom, AccessibilityLevel(0.0071))
	assert.Equal(t, LevelBaixo, AccessibilityLevel(0.004))
	assert.Equal(t, LevelModerado, AccessibilityLevel(0.0041))
	assert.Equal(t, LevelBaixo, AccessibilityLevel(0))
}

func TestConnectivityCountsTransportBySubstring(t *testing.T) {
	points := []*geoindex.Point{
		pointAt("Estações_Metro_Linha_Azul", "Estações_Metro", 100),
		pointAt("Carris_Metropolitana", "Carris_Metropolitana", 150),
		pointAt("Museus", "Museus", 200),
	}
	// 2 transport points in a 100 m circle: density 2/(π·0.01) ≈ 63.7.
	assert.Equal(t, LevelExcelente, Connectivity(points, 100))
	// Same points over a 500 m circle: density ≈ 2.5.
	assert.Equal(t, LevelBaixo, Connectivity(points, 500))
}

func TestConnectivityNonPositiveRadius(t *testing.T) {
	assert.Equal(t, LevelBaixo, Connectivity(nil, 0))
	assert.Equal(t, LevelBaixo, Connectivity(nil, -5))
}

func TestConnectivityLevelBoundaries(t *testing.T) {
	assert.Equal(t, LevelBom, ConnectivityLevel(50))
	assert.Equal(t, LevelExcelente, ConnectivityLevel(50.01))
	assert.Equal(t, LevelModerado, ConnectivityLevel(30))
	assert.Equal(t, LevelBom, ConnectivityLevel(30.01))
	assert.Equal(t, LevelBaixo, ConnectivityLevel(15))
	assert.Equal(t, LevelModerado, ConnectivityLevel(15.01))
}

func TestLeisureCountsParks(t *testing.T) {
	points := []*geoindex.Point{
		pointAt("Parques", "Parques", 100),
		pointAt("Miradouros", "Miradouros", 150),
		pointAt("Parques_Infantis", "Parques_Infantis", 200),
		pointAt("Museus", "Museus", 250),
	}
	// 3 park points, no fitness equipment: score 3 stays Baixo (strict >).
	assert.Equal(t, LevelBaixo, Leisure(points))

	points = append(points, pointAt("Parques_Caninos", "Parques_Caninos", 300))
	assert.Equal(t, LevelModerado, Leisure(points))
}

func TestLeisureFitnessDoubleCounts(t *testing.T) {
	points := []*geoindex.Point{
		pointAt("Desporto_EquipamentosFitness", "Desporto_EquipamentosFitness", 100),
		pointAt("Desporto_EquipamentosFitness", "Desporto_EquipamentosFitness", 150),
		pointAt("Desporto_EquipamentosFitness", "Desporto_EquipamentosFitness", 200),
		pointAt("Desporto_EquipamentosFitness", "Desporto_EquipamentosFitness", 250),
	}
	// Fitness equipment counts as a park AND as equipment: 4 points score 8.
	assert.Equal(t, LevelBom, Leisure(points))
}

func TestLeisureLevelBoundaries(t *testing.T) {
	assert.Equal(t, LevelBom, LeisureLevel(10))
	assert.Equal(t, LevelExcelente, LeisureLevel(10.5))
	assert.Equal(t, LevelModerado, LeisureLevel(6))
	assert.Equal(t, LevelBom, LeisureLevel(6.5))
	assert.Equal(t, LevelBaixo, LeisureLevel(3))
	assert.Equal(t, LevelModerado, LeisureLevel(3.5))
}

func TestCulturalCountsHeritage(t *testing.T) {
	points := []*geoindex.Point{
		pointAt("Museus", "Museus", 100),
		pointAt("Teatros", "Teatros", 150),
		pointAt("Parques", "Parques", 200),
	}
	assert.Equal(t, LevelModerado, Cultural(points))

	// A single cultural point is not > 1.
	assert.Equal(t, LevelBaixo, Cultural(points[:1]))
}

func TestCulturalLevelBoundaries(t *testing.T) {
	assert.Equal(t, LevelBom, CulturalLevel(5))
	assert.Equal(t, LevelExcelente, CulturalLevel(6))
	assert.Equal(t, LevelModerado, CulturalLevel(3))
	assert.Equal(t, LevelBom, CulturalLevel(4))
	assert.Equal(t, LevelBaixo, CulturalLevel(1))
	assert.Equal(t, LevelModerado, CulturalLevel(2))
	assert.Equal(t, LevelBaixo, CulturalLevel(0))
}
