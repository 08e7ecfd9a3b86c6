package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/filasync/internal/slicer"
	"github.com/agentstation/filasync/pkg/catalog"
	"github.com/agentstation/filasync/pkg/constants"
	"github.com/agentstation/filasync/pkg/errors"
	"github.com/agentstation/filasync/pkg/logging"
	"github.com/agentstation/filasync/pkg/preset"
	"github.com/agentstation/filasync/pkg/reconcile"
	"github.com/agentstation/filasync/pkg/remote"
)

func writeJSON(t *testing.T, dir, name string, doc map[string]any) string {
	t.Helper()
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// completePreset has enough fields to bypass the truncation heuristic.
func completePreset(name, vendor, typ string) map[string]any {
	doc := map[string]any{
		"name":            name,
		"filament_vendor": []any{vendor},
		"filament_type":   []any{typ},
		"from":            "User",
	}
	for i := 0; i < constants.TruncationKeyThreshold; i++ {
		doc["setting_"+string(rune('a'+i%26))+string(rune('0'+i/26))] = "x"
	}
	return doc
}

type memTransport struct {
	files  map[string][]byte
	writes []string
	closed bool
}

func (m *memTransport) Read(_ context.Context, path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, errors.NewNotFoundError("remote file", path)
	}
	return data, nil
}

func (m *memTransport) WriteAtomic(_ context.Context, path string, data []byte) error {
	if m.files == nil {
		m.files = map[string][]byte{}
	}
	m.files[path] = data
	m.writes = append(m.writes, path)
	return nil
}

func (m *memTransport) Close() error {
	m.closed = true
	return nil
}

func dialerFor(t *memTransport) remote.Dialer {
	return func(context.Context) (remote.Transport, error) {
		return t, nil
	}
}

func TestDiscoverHonorsOverrides(t *testing.T) {
	paths, err := Discover(Options{InputDir: "/in", ProfileDir: "/profiles"})
	require.NoError(t, err)
	assert.Equal(t, "/in", paths.UserPresetDir)
	assert.Equal(t, "/profiles", paths.SystemProfileDir)
}

func TestLoadCountsAndFailsOnEmpty(t *testing.T) {
	dir := t.TempDir()
	writeJSON(t, dir, "good.json", completePreset("Good PLA", "X", "PLA"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{broken"), 0o644))

	var summary Summary
	presets, err := Load(dir, &summary)
	require.NoError(t, err)
	assert.Len(t, presets, 1)
	assert.Equal(t, 1, summary.Loaded)
	assert.Equal(t, 1, summary.Malformed)

	empty := t.TempDir()
	_, err = Load(empty, &Summary{})
	assert.ErrorIs(t, err, errors.ErrNoPresets)
}

func TestExpandWritesAndPassesThrough(t *testing.T) {
	profileDir := t.TempDir()
	writeJSON(t, profileDir, "vendor_filament_pla.json", map[string]any{
		"name":               "vendor_filament_pla",
		"inherits":           "fdm_filament_pla",
		"nozzle_temperature": []any{"210"},
	})
	writeJSON(t, profileDir, "fdm_filament_pla.json", map[string]any{
		"name":          "fdm_filament_pla",
		"filament_type": []any{"PLA"},
	})

	truncated, err := preset.Parse([]byte(`{
		"name": "My PLA",
		"inherits": "vendor_filament_pla",
		"base_id": "10101",
		"from": "User",
		"nozzle_temperature": ["215"]
	}`))
	require.NoError(t, err)

	complete, err := preset.Parse([]byte(`{"name": "Done PLA", "from": "User"}`))
	require.NoError(t, err)

	outDir := t.TempDir()
	var summary Summary
	out := Expand(context.Background(), []*preset.Preset{truncated, complete}, profileDir, outDir, false, &summary)

	require.Len(t, out, 2)
	assert.Equal(t, 1, summary.Expanded)
	assert.Equal(t, 1, summary.Passed)
	assert.Equal(t, 1, summary.Written)

	// User value wins over system template.
	assert.Equal(t, "215", out[0].Get("nozzle_temperature"))
	assert.Equal(t, "PLA", out[0].Get("filament_type"))

	_, err = os.Stat(filepath.Join(outDir, "My PLA.json"))
	assert.NoError(t, err)
}

func TestExpandSkipsUnresolvable(t *testing.T) {
	truncated, err := preset.Parse([]byte(`{
		"name": "Orphan",
		"inherits": "missing_template",
		"base_id": "10101",
		"from": "User"
	}`))
	require.NoError(t, err)

	var summary Summary
	out := Expand(context.Background(), []*preset.Preset{truncated}, t.TempDir(), t.TempDir(), false, &summary)
	assert.Empty(t, out)
	assert.Equal(t, 1, summary.Failed)
}

func TestEnsureIdentities(t *testing.T) {
	good, err := preset.Parse([]byte(`{"name": "Named", "filament_vendor": ["X"], "inherits": "fdm_filament_pla"}`))
	require.NoError(t, err)
	nameless, err := preset.Parse([]byte(`{"from": "User"}`))
	require.NoError(t, err)

	var summary Summary
	out := EnsureIdentities(context.Background(), []*preset.Preset{good, nameless}, &summary)
	require.Len(t, out, 1)
	assert.Equal(t, 1, summary.NoID)

	notes, err := preset.ParseNotes(out[0].Get(preset.FieldNotes))
	require.NoError(t, err)
	assert.Equal(t, "Named", notes.Name)
	assert.Len(t, notes.ID, 5)
}

func TestBuildDocumentsWithRemoteBaseline(t *testing.T) {
	printer := slicer.Printer{Name: "kobra3", Host: "h", User: "root"}
	mt := &memTransport{files: map[string][]byte{
		printer.DatabasePath(): []byte(`{"result": {"count": 1, "list": [{"id": ["42424"], "name": ["Existing"]}], "version": "1"}}`),
		printer.OptionsPath():  []byte(`{"Existing": {"PLA": "Existing"}}`),
	}}

	p, err := preset.Parse([]byte(`{"name": "My PLA", "filament_vendor": ["X"], "filament_type": ["PLA"]}`))
	require.NoError(t, err)
	var summary Summary
	presets := EnsureIdentities(context.Background(), []*preset.Preset{p}, &summary)

	outDir := t.TempDir()
	require.NoError(t, BuildDocuments(context.Background(), dialerFor(mt), printer, presets, outDir, &summary))

	data, err := os.ReadFile(filepath.Join(outDir, constants.DatabaseFileName))
	require.NoError(t, err)
	db, err := catalog.ParseDatabase(data)
	require.NoError(t, err)

	// Remote baseline entry survives alongside the new one.
	require.Len(t, db.List(), 2)
	assert.Equal(t, "42424", db.List()[0].ID())
	assert.Equal(t, 2, db.Count())
	assert.Equal(t, 1, summary.Database.Inserted)

	optData, err := os.ReadFile(filepath.Join(outDir, constants.OptionsFileName))
	require.NoError(t, err)
	opts, err := catalog.ParseOptions(optData)
	require.NoError(t, err)
	assert.Equal(t, "My PLA", opts.Get("X", "PLA"))
	assert.Equal(t, "Existing", opts.Get("Existing", "PLA"))
}

func TestBuildDocumentsFallsBackToSnapshots(t *testing.T) {
	printer := slicer.Printer{Name: "kobra3", Host: "h", User: "root"}

	p, err := preset.Parse([]byte(`{"name": "Offline PLA", "filament_vendor": ["X"], "filament_type": ["PLA"]}`))
	require.NoError(t, err)
	var summary Summary
	presets := EnsureIdentities(context.Background(), []*preset.Preset{p}, &summary)

	outDir := t.TempDir()
	require.NoError(t, BuildDocuments(context.Background(), nil, printer, presets, outDir, &summary))

	data, err := os.ReadFile(filepath.Join(outDir, constants.DatabaseFileName))
	require.NoError(t, err)
	db, err := catalog.ParseDatabase(data)
	require.NoError(t, err)

	// Bundled snapshot entries plus the new insert.
	assert.Greater(t, len(db.List()), 1)
	assert.Equal(t, 1, summary.Database.Inserted)
}

func TestPushDeliversWithBackup(t *testing.T) {
	printer := slicer.Printer{Name: "kobra3", Host: "h", User: "root"}
	outDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outDir, constants.DatabaseFileName), []byte(`{"result": {"count": 0, "list": [], "version": "2"}}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(outDir, constants.OptionsFileName), []byte(`{}`), 0o644))

	mt := &memTransport{files: map[string][]byte{
		printer.DatabasePath(): []byte(`{"result": {"count": 0, "list": [], "version": "1"}}`),
	}}

	require.NoError(t, Push(context.Background(), dialerFor(mt), printer, outDir, false))

	assert.Equal(t, []string{printer.DatabasePath(), printer.OptionsPath()}, mt.writes)
	assert.True(t, mt.closed)

	// Only the database existed remotely, so only it gets backed up.
	entries, err := os.ReadDir(filepath.Join(outDir, "backup"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestPushNoBackup(t *testing.T) {
	printer := slicer.Printer{Name: "kobra3", Host: "h", User: "root"}
	outDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outDir, constants.DatabaseFileName), []byte(`{}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(outDir, constants.OptionsFileName), []byte(`{}`), 0o644))

	mt := &memTransport{files: map[string][]byte{
		printer.DatabasePath(): []byte(`{}`),
	}}

	require.NoError(t, Push(context.Background(), dialerFor(mt), printer, outDir, true))

	_, err := os.Stat(filepath.Join(outDir, "backup"))
	assert.True(t, os.IsNotExist(err))
}

func TestPushRequiresLocalOutputs(t *testing.T) {
	printer := slicer.Printer{Name: "kobra3", Host: "h", User: "root"}
	err := Push(context.Background(), dialerFor(&memTransport{}), printer, t.TempDir(), true)
	assert.True(t, errors.IsNotFound(err))
}

func TestPushLogsThroughContextLogger(t *testing.T) {
	printer := slicer.Printer{Name: "kobra3", Host: "h", User: "root"}
	outDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outDir, constants.DatabaseFileName), []byte(`{}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(outDir, constants.OptionsFileName), []byte(`{}`), 0o644))

	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)

	mt := &memTransport{}
	require.NoError(t, Push(ctx, dialerFor(mt), printer, outDir, true))

	tl.AssertContains(t, "Delivered document")
	tl.AssertContains(t, printer.DatabasePath())
}

func TestSummaryLogAggregatesTotals(t *testing.T) {
	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)

	s := Summary{
		Database: reconcile.Stats{Built: 2, Updated: 1, Inserted: 1},
		Options:  reconcile.Stats{Built: 2, Updated: 2},
	}
	s.Log(ctx)

	tl.AssertContains(t, `"total":{"built":4,"updated":3,"inserted":1,"skipped":0}`)
}
