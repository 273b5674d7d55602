package enums

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/teranos/schemagen/catalog"
	"github.com/teranos/schemagen/codegen"
	"github.com/teranos/schemagen/errors"
	gentest "github.com/teranos/schemagen/internal/testing"
	"github.com/teranos/schemagen/render"
	"github.com/teranos/schemagen/schemaver"
)

func setup(t *testing.T, doc string) (*Generator, *gentest.Recorder, string) {
	t.Helper()
	dir := t.TempDir()
	defs := filepath.Join(dir, "definitions")
	out := filepath.Join(dir, "generated")
	gentest.WriteFile(t, defs, DefaultFile, doc)

	rec := gentest.NewRecorder()
	g := New(Options{Logger: zaptest.NewLogger(t).Sugar()})
	require.NoError(t, g.Initialize(out, defs, rec))
	return g, rec, out
}

func TestGenerate_DefaultsAndPaths(t *testing.T) {
	g, rec, out := setup(t, "Color: {}\n")

	paths, err := g.Generate()
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(out, "include", "ripple", "enums", "GColorEnum.h"), paths[0])
	assert.Equal(t, filepath.Join(out, "src", "ripple", "enums", "GColorEnum.cpp"), paths[1])

	require.Len(t, rec.Calls, 2)
	assert.Equal(t, "enums/enum.h.tmpl", rec.Calls[0].TemplateID)
	assert.Equal(t, "enums/enum.cpp.tmpl", rec.Calls[1].TemplateID)

	ctx := rec.Calls[0].Context
	assert.Equal(t, "Color", ctx["name"])
	assert.Equal(t, "Int32", ctx["underlying_type"])
	assert.Equal(t, false, ctx["is_flag"])
	assert.Equal(t, int64(0), ctx["start_value"])
	assert.Equal(t, 0, ctx["index"])
	assert.Equal(t, "ripple", ctx["library_name"])
}

func TestGenerate_OrdinalFollowsDocumentOrder(t *testing.T) {
	g, rec, _ := setup(t, `
Zeta: {}
Alpha:
  underlying_type: Uint8
  start_value: 3
  values: [low, high]
Mid:
  is_flag: true
  values: [read, write, exec]
`)

	paths, err := g.Generate()
	require.NoError(t, err)
	assert.Len(t, paths, 6)

	names := []string{}
	for _, c := range rec.Calls {
		if c.TemplateID == headerTemplate {
			names = append(names, c.Context["name"].(string))
		}
	}
	assert.Equal(t, []string{"Zeta", "Alpha", "Mid"}, names)

	alpha, ok := rec.Call(paths[2])
	require.True(t, ok)
	assert.Equal(t, 1, alpha.Context["index"])
	assert.Equal(t, "Uint8", alpha.Context["underlying_type"])
	assert.Equal(t, []map[string]any{
		{"name": "low", "value": int64(3)},
		{"name": "high", "value": int64(4)},
	}, alpha.Context["values"])

	mid, ok := rec.Call(paths[4])
	require.True(t, ok)
	assert.Equal(t, 2, mid.Context["index"])
	assert.Equal(t, []map[string]any{
		{"name": "read", "value": int64(1)},
		{"name": "write", "value": int64(2)},
		{"name": "exec", "value": int64(4)},
	}, mid.Context["values"])
}

func TestGenerate_FlagOverflowIsSchemaError(t *testing.T) {
	g, _, _ := setup(t, "Wide:\n  is_flag: true\n  start_value: 62\n  values: [a, b]\n")

	_, err := g.Generate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrSchema))
}

func TestGenerate_RenderErrorNamesPath(t *testing.T) {
	g, rec, out := setup(t, "Color: {}\n")
	source := filepath.Join(out, "src", "ripple", "enums", "GColorEnum.cpp")
	rec.FailOn(source, nil)

	_, err := g.Generate()
	require.Error(t, err)

	var re *render.RenderError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, source, re.Path)
}

func TestGenerate_BeforeInitialize(t *testing.T) {
	_, err := New(Options{}).Generate()
	assert.Error(t, err)
}

func TestInitialize_LoadErrors(t *testing.T) {
	dir := t.TempDir()
	g := New(Options{})

	err := g.Initialize(filepath.Join(dir, "out"), dir, gentest.NewRecorder())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrLoad), "missing file")

	gentest.WriteFile(t, dir, DefaultFile, "Color: [unterminated\n")
	err = g.Initialize(filepath.Join(dir, "out"), dir, gentest.NewRecorder())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrLoad), "malformed document")

	gentest.WriteFile(t, dir, DefaultFile, "- Color\n")
	err = g.Initialize(filepath.Join(dir, "out"), dir, gentest.NewRecorder())
	require.Error(t, err)
	var se *catalog.SchemaError
	assert.True(t, errors.As(err, &se), "root must be a mapping")
}

func TestOptions_CustomFileAndLibrary(t *testing.T) {
	dir := t.TempDir()
	gentest.WriteFile(t, dir, "types/enums.json", `{"Team": {"values": ["red", "blue"]}}`)

	rec := gentest.NewRecorder()
	g := New(Options{LibraryName: "fortress", File: "types/enums.json"})
	require.NoError(t, g.Initialize("out", dir, rec))

	paths, err := g.Generate()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("out", "include", "fortress", "enums", "GTeamEnum.h"), paths[0])
	assert.Equal(t, "fortress", rec.Calls[0].Context["library_name"])
}

func TestRequestedVersionBump(t *testing.T) {
	g, _, _ := setup(t, "Color: {}\n")
	modified := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	gentest.SetModTime(t, g.path, modified)

	bump, err := g.RequestedVersionBump(modified.Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, schemaver.Bump{}, bump)

	bump, err = g.RequestedVersionBump(modified.Add(-time.Second))
	require.NoError(t, err)
	assert.Equal(t, schemaver.Bump{Major: true}, bump)
}

func TestAggregator_EnumRunIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	defs := filepath.Join(dir, "definitions")
	out := filepath.Join(dir, "generated")
	gentest.WriteFile(t, defs, DefaultFile, "Color:\n  values: [red, green]\nShape: {}\n")

	agg, err := codegen.NewAggregator(codegen.Options{
		OutputRoot:      out,
		DefinitionsRoot: defs,
		Renderer:        render.NewTemplateRenderer(nil, nil),
	})
	require.NoError(t, err)
	require.NoError(t, agg.Register(New(Options{})))

	first, err := agg.Regenerate()
	require.NoError(t, err)
	require.True(t, first.Generated())
	assert.Equal(t, schemaver.Version{Major: 1}, first.Version)

	snapshot := map[string][]byte{}
	for _, p := range first.Paths {
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		snapshot[p] = data
	}

	second, err := agg.Regenerate()
	require.NoError(t, err)
	assert.False(t, second.Stale)
	assert.False(t, second.Generated())

	third, err := agg.ForceRegenerate()
	require.NoError(t, err)
	assert.Equal(t, first.Paths, third.Paths)
	for _, p := range third.Paths {
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Equal(t, snapshot[p], data, p)
	}
}
