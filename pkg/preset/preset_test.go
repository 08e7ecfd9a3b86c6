package preset_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/filasync/pkg/preset"
)

func TestParse(t *testing.T) {
	p, err := preset.Parse([]byte(`{
		"name": "My PLA",
		"inherits": "Anycubic PLA 0.4",
		"from": "User",
		"nozzle_temperature": ["215"],
		"filament_retraction": {"length": "1.2"}
	}`))
	require.NoError(t, err)

	assert.Equal(t, "My PLA", p.Name())
	assert.Equal(t, "Anycubic PLA 0.4", p.Inherits())
	assert.True(t, p.IsUserAuthored())
	assert.Equal(t, 5, p.Len())
	assert.Equal(t, "215", p.Get("nozzle_temperature"))
}

func TestParseKeepsNumberText(t *testing.T) {
	p, err := preset.Parse([]byte(`{
		"name": "My PLA",
		"filament_diameter": [1.75],
		"filament_cost": [20.00]
	}`))
	require.NoError(t, err)

	out, err := p.MarshalIndent()
	require.NoError(t, err)
	assert.Contains(t, string(out), "1.75")
	assert.Contains(t, string(out), "20.00")
}

func TestParseRejectsMalformed(t *testing.T) {
	_, err := preset.Parse([]byte(`{"name": `))
	assert.Error(t, err)
}

func TestCanonicalKeepsMetadataScalar(t *testing.T) {
	p, err := preset.Parse([]byte(`{
		"name": "My PLA",
		"inherits": "Anycubic PLA 0.4",
		"from": "User",
		"base_id": "GFA00",
		"nozzle_temperature": "215",
		"hot_plate_temp": ["60"]
	}`))
	require.NoError(t, err)

	c := p.Canonical()

	// Metadata allow-list stays scalar.
	for _, key := range []string{"name", "inherits", "from", "base_id"} {
		assert.Equal(t, preset.KindScalar, c.Fields[key].Kind(), key)
	}

	// Everything else is wrapped per the sequence convention.
	assert.Equal(t, []any{"215"}, c.Fields["nozzle_temperature"].Items())
	assert.Equal(t, []any{"60"}, c.Fields["hot_plate_temp"].Items())
}

func TestNameFallsBackToFilename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "PolyTerra PLA.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"from": "User"}`), 0644))

	p, err := preset.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "PolyTerra PLA", p.Name())
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.json"), []byte(`{"name": "A"}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.json"), []byte(`{"name": "B"}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{not json`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(`ignore me`), 0644))

	presets, skipped, err := preset.LoadDir(dir)
	require.NoError(t, err)

	// Malformed files are skipped and counted, never fatal to the batch.
	assert.Len(t, presets, 2)
	assert.Equal(t, 1, skipped)
}

func TestLoadDirMissing(t *testing.T) {
	_, _, err := preset.LoadDir(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
