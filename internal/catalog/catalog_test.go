package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afsts/OMeuBairro/internal/config"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// fixtureConfig lays out a complete, small reference dataset under a temp
// directory. One infra feature and one region ring are deliberately broken.
func fixtureConfig(t *testing.T) config.DataConfig {
	t.Helper()
	dir := t.TempDir()
	infraDir := filepath.Join(dir, "infra")
	require.NoError(t, os.Mkdir(infraDir, 0o755))

	gazetteer := writeFile(t, dir, "zip_code_cluster.json", `[
		{"Street Name": "Avenida da Liberdade", "Postal Code": "1250-096", "Latitude": 38.7205, "Longitude": -9.1451, "cluster": 3},
		{"Street Name": "Rua Augusta", "Postal Code": "1100-053", "Latitude": 38.7103, "Longitude": -9.1380, "cluster": null}
	]`)

	writeFile(t, infraDir, "Museus.json", `{"features": [
		{"Latitude": 38.7169, "Longitude": -9.1399, "properties": {"name": "MNAA"}},
		{"Latitude": "38.7200", "Longitude": "-9.1400"}
	]}`)
	writeFile(t, infraDir, "Parques.json", `{"features": [
		{"geometry": {"type": "Point", "coordinates": [-9.1500, 38.7250]}},
		{"properties": {"name": "sem coordenadas"}}
	]}`)

	regions := writeFile(t, dir, "Freguesias_Aux.json", `{"features": [
		{"INF_NOME": "Santa Maria Maior", "Coordinates": [
			[[-9.15, 38.70], [-9.12, 38.70], [-9.12, 38.73], [-9.15, 38.73], [-9.15, 38.70]]
		]},
		{"INF_NOME": "Degenerada", "Coordinates": [
			[[-9.10, 38.70], [-9.11, 38.71]]
		]}
	]}`)

	population := writeFile(t, dir, "Populacao_Aux.json", `{"Santa Maria Maior": 12822}`)
	buildings := writeFile(t, dir, "Edificios_Lugar_Aux.json", `{"Santa Maria Maior": 3466}`)
	ages := writeFile(t, dir, "Idade_Edificios_Aux.json", `{"Santa Maria Maior": {"Epoca": [120, 300, 80]}}`)

	ci := writeFile(t, dir, "CollectiveIntelligence.csv",
		"cluster,Postal Code,Mobilidade_Index,Segurança_Index,Serviços_Index,Espaços Verdes_Index,Higiene Urbana_Index,Crescimento_Index\n"+
			"3,1250-096,0.8,0.6,0.3,0.1,0.55,0.7\n"+
			"-1,1100-053,0.2,0.9,0.5,0.76,0.0,0.4\n"+
			"abc,1100-148,0.1,0.1,0.1,0.1,0.1,0.1\n")

	return config.DataConfig{
		GazetteerPath:    gazetteer,
		InfraDir:         infraDir,
		RegionsPath:      regions,
		PopulationPath:   population,
		BuildingsPath:    buildings,
		BuildingAgesPath: ages,
		CollectivePath:   ci,
	}
}

func TestLoadFullCatalog(t *testing.T) {
	cat, err := Load(context.Background(), fixtureConfig(t))
	require.NoError(t, err)

	// Two gazetteer entries index under street and postal keys.
	assert.Equal(t, 4, cat.Gazetteer.Len())
	rec, ok := cat.Gazetteer.Resolve("1100-053")
	require.True(t, ok)
	assert.Equal(t, -1, rec.Cluster, "null cluster loads as -1")

	// Three loadable infra points across both files.
	require.Len(t, cat.Points, 3)
	assert.Equal(t, 3, cat.Index.Len())

	// The degenerate region keeps its slot but never matches.
	assert.Equal(t, 2, cat.Regions.Len())
	assert.Equal(t, "Santa Maria Maior", cat.Regions.Resolve(38.71, -9.13))

	assert.Equal(t, 12822.0, cat.Population["Santa Maria Maior"])
	assert.Equal(t, 3466.0, cat.Buildings["Santa Maria Maior"])
	assert.Equal(t, []float64{120, 300, 80}, cat.BuildingAges["Santa Maria Maior"])

	row, ok := cat.Collective.Lookup(3, "")
	require.True(t, ok)
	assert.Equal(t, 0.8, row.Mobility)

	// One feature without coordinates, one degenerate ring, one bad CI row.
	require.Len(t, cat.Diagnostics, 3)
	reasons := make(map[string]int)
	for _, d := range cat.Diagnostics {
		reasons[d.Reason]++
	}
	assert.Equal(t, 1, reasons["missing coordinates"])
	assert.Equal(t, 1, reasons["degenerate ring skipped"])
	assert.Equal(t, 1, reasons["unparseable cluster id"])
}

func TestLoadInfraManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "pontos.json", `{"features": [
		{"Latitude": 38.7169, "Longitude": -9.1399}
	]}`)
	writeFile(t, dir, "ignorado.json", `{"features": [
		{"Latitude": 38.0, "Longitude": -9.0}
	]}`)
	writeFile(t, dir, manifestName, "datasets:\n  - file: pontos.json\n    category: Estações_Metro\n")

	points, diags, err := loadInfra(context.Background(), dir)
	require.NoError(t, err)
	assert.Empty(t, diags)

	// Only the manifest-listed file loads, under the manifest category.
	require.Len(t, points, 1)
	assert.Equal(t, "Estações_Metro", points[0].Category)
	assert.Equal(t, "Estações_Metro", points[0].TypeAttr())
}

func TestLoadInfraCategoryFromFilename(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Carris_Metropolitana.json", `{"features": [
		{"Latitude": 38.7169, "Longitude": -9.1399, "properties": {"type": "Paragem"}}
	]}`)

	points, _, err := loadInfra(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, "Carris_Metropolitana", points[0].Category)
	// An existing "type" property is never overwritten.
	assert.Equal(t, "Paragem", points[0].TypeAttr())
}

func TestLoadMissingFileIsFatal(t *testing.T) {
	cfg := fixtureConfig(t)
	cfg.GazetteerPath = filepath.Join(t.TempDir(), "missing.json")

	_, err := Load(context.Background(), cfg)
	assert.Error(t, err)
}

func TestLoadCollectiveMissingColumnIsFatal(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ci.csv",
		"cluster,Postal Code,Mobilidade_Index\n3,1250-096,0.8\n")

	_, _, err := loadCollective(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing column")
}

func TestLoadAgeTableFirstNestedValue(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ages.json", `{"Alvalade": {"Epoca": [10, 20]}, "Benfica": {}}`)

	ages, err := loadAgeTable(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20}, ages["Alvalade"])
	_, ok := ages["Benfica"]
	assert.False(t, ok, "regions with an empty distribution object carry no ages")
}
