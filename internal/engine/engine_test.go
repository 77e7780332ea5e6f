package engine

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/microsoft/figma-variables-import/internal/convert"
	"github.com/microsoft/figma-variables-import/internal/manifest"
	"github.com/microsoft/figma-variables-import/internal/result"
	"github.com/microsoft/figma-variables-import/internal/store"
	"github.com/microsoft/figma-variables-import/internal/testutil"
	"github.com/microsoft/figma-variables-import/internal/token"
	"github.com/microsoft/figma-variables-import/internal/variable"
)

// Test helpers

func newTestStore(t *testing.T, opts ...store.Option) *store.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vars.db")
	opts = append([]store.Option{store.WithIDGenerator(testutil.NewSequentialIDs("id"))}, opts...)
	s, err := store.Open(path, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func doc(t *testing.T, src string) token.Object {
	t.Helper()
	d, err := token.Decode("test.json", []byte(src))
	require.NoError(t, err)
	return d
}

// importDocs runs one import of docs, all in the single mode "Default" of
// collection "Tokens".
func importDocs(t *testing.T, s variable.Store, docs map[string]token.Object, files ...string) []result.Entry {
	t.Helper()
	m := &manifest.Manifest{
		Name: "test",
		Collections: []manifest.Collection{{
			Name:  "Tokens",
			Modes: []manifest.Mode{{Name: manifest.DefaultMode, Files: files}},
		}},
	}
	var log result.Log
	require.NoError(t, New(s).Import(t.Context(), m, docs, &log))
	return log.Entries()
}

func errorTexts(entries []result.Entry) []string {
	var out []string
	for _, e := range entries {
		if e.Kind == result.KindError {
			out = append(out, e.Text)
		}
	}
	return out
}

func byName(t *testing.T, s variable.Store) map[string]variable.Variable {
	t.Helper()
	vars, err := s.LocalVariables(t.Context())
	require.NoError(t, err)
	out := make(map[string]variable.Variable, len(vars))
	for _, v := range vars {
		out[v.Name] = v
	}
	return out
}

// modeValue returns the value of v in the only mode it has been written.
func modeValue(t *testing.T, v variable.Variable) variable.Value {
	t.Helper()
	require.Len(t, v.Values, 1, "variable %s", v.Name)
	for _, val := range v.Values {
		return val
	}
	return nil
}

const themeGlobal = `{"color": {"brand": {"$type": "color", "$value": "#0D99FF"}}}`
const themeAlias = `{"color": {"primary": {"$type": "color", "$value": "{color.brand}"}}}`

func themeManifest() *manifest.Manifest {
	return &manifest.Manifest{
		Name: "Theme",
		Collections: []manifest.Collection{{
			Name: "Theme",
			Modes: []manifest.Mode{
				{Name: "Light", Files: []string{"global.json"}},
				{Name: "Dark", Files: []string{"alias.json"}},
			},
		}},
	}
}

func TestImport_ThemeScenario(t *testing.T) {
	s := newTestStore(t)
	ctx := t.Context()

	var log result.Log
	err := New(s).Import(ctx, themeManifest(), map[string]token.Object{
		"global.json": doc(t, themeGlobal),
		"alias.json":  doc(t, themeAlias),
	}, &log)
	require.NoError(t, err)

	assert.Equal(t, []result.Entry{
		{Kind: result.KindInfo, Text: "2 variables were created and 0 other updates were made."},
	}, log.Entries())

	collections, err := s.LocalCollections(ctx)
	require.NoError(t, err)
	require.Len(t, collections, 1)
	theme := collections[0]
	assert.Equal(t, "Theme", theme.Name)
	require.Len(t, theme.Modes, 2)
	assert.Equal(t, "Light", theme.Modes[0].Name)
	assert.Equal(t, "Dark", theme.Modes[1].Name)

	vars := byName(t, s)
	require.Len(t, vars, 2)

	brand := vars["color/brand"]
	assert.Equal(t, variable.KindColor, brand.Kind)
	assert.Equal(t, map[string]variable.Value{
		theme.Modes[0].ID: variable.Color{R: 0x0D / 255.0, G: 0x99 / 255.0, B: 1, A: 1},
	}, brand.Values)
	assert.Equal(t, DefaultScopes, brand.Scopes)

	primary := vars["color/primary"]
	assert.Equal(t, variable.KindColor, primary.Kind)
	assert.Equal(t, map[string]variable.Value{
		theme.Modes[1].ID: variable.Alias{ID: brand.ID},
	}, primary.Values)
}

func TestImport_Idempotent(t *testing.T) {
	s := newTestStore(t)
	docs := map[string]token.Object{"global.json": doc(t, themeGlobal), "alias.json": doc(t, themeAlias)}

	first := importDocs(t, s, docs, "global.json", "alias.json")
	assert.Equal(t, "2 variables were created and 0 other updates were made.", first[len(first)-1].Text)
	before := byName(t, s)

	second := importDocs(t, s, docs, "global.json", "alias.json")
	assert.Equal(t, []result.Entry{
		{Kind: result.KindInfo, Text: "0 variables were created and 2 other updates were made."},
	}, second)
	assert.Equal(t, before, byName(t, s))
}

func TestImport_ForwardReference(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{
			name: "target first",
			src: `{"color": {
				"brand": {"$type": "color", "$value": "#FF0000"},
				"primary": {"$type": "color", "$value": "{color.brand}"}
			}}`,
		},
		{
			name: "alias first",
			src: `{"color": {
				"primary": {"$type": "color", "$value": "{color.brand}"},
				"brand": {"$type": "color", "$value": "#FF0000"}
			}}`,
		},
		{
			name: "alias chain in reverse",
			src: `{"color": {
				"primary": {"$type": "color", "$value": "{color.accent}"},
				"accent": {"$type": "color", "$value": "{color.brand}"},
				"brand": {"$type": "color", "$value": "#FF0000"}
			}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			entries := importDocs(t, s, map[string]token.Object{"a.json": doc(t, tt.src)}, "a.json")
			assert.Empty(t, errorTexts(entries))

			vars := byName(t, s)
			brand := vars["color/brand"]
			assert.Equal(t, variable.Color{R: 1, A: 1}, modeValue(t, brand))

			// Follow the alias chain from primary to a concrete value.
			v := vars["color/primary"]
			for {
				alias, ok := modeValue(t, v).(variable.Alias)
				if !ok {
					break
				}
				var found bool
				for _, candidate := range vars {
					if candidate.ID == alias.ID {
						v, found = candidate, true
					}
				}
				require.True(t, found, "alias target %s", alias.ID)
			}
			assert.Equal(t, "color/brand", v.Name)
		})
	}
}

func TestImport_AliasCycle(t *testing.T) {
	s := newTestStore(t)
	entries := importDocs(t, s, map[string]token.Object{"a.json": doc(t, `{
		"a": {"$type": "number", "$value": "{b}"},
		"b": {"$type": "number", "$value": "{a}"}
	}`)}, "a.json")

	assert.Equal(t, []result.Entry{
		{Kind: result.KindError, Text: "Alias cycle detected: a → b → a."},
		{Kind: result.KindError, Text: "Failed to create or update any variables due to errors."},
	}, entries)
	assert.Empty(t, byName(t, s))
}

func TestImport_AliasCycleAlongsideValidTokens(t *testing.T) {
	s := newTestStore(t)
	entries := importDocs(t, s, map[string]token.Object{"a.json": doc(t, `{
		"space": {
			"sm": {"$type": "number", "$value": 4},
			"x": {"$type": "number", "$value": "{space.z}"},
			"y": {"$type": "number", "$value": "{space.x}"},
			"z": {"$type": "number", "$value": "{space.y}"},
			"md": {"$type": "number", "$value": "{space.sm}"}
		}
	}`)}, "a.json")

	assert.Equal(t, []string{
		"Alias cycle detected: space/x → space/z → space/y → space/x.",
		"2 variables were created and 0 other updates were made, but 1 had errors.",
	}, errorTexts(entries))
	assert.Len(t, byName(t, s), 2)
}

func TestImport_SelfAlias(t *testing.T) {
	s := newTestStore(t)
	entries := importDocs(t, s, map[string]token.Object{"a.json": doc(t, `{
		"a": {"$type": "number", "$value": "{a}"}
	}`)}, "a.json")

	assert.Equal(t, []result.Entry{
		{Kind: result.KindError, Text: "Alias cycle detected: a → a."},
		{Kind: result.KindError, Text: "Failed to create or update any variables due to errors."},
	}, entries)
}

func TestImport_AliasIntoCycle(t *testing.T) {
	s := newTestStore(t)
	entries := importDocs(t, s, map[string]token.Object{"a.json": doc(t, `{
		"c": {"$type": "number", "$value": "{a}"},
		"a": {"$type": "number", "$value": "{b}"},
		"b": {"$type": "number", "$value": "{a}"}
	}`)}, "a.json")

	assert.Equal(t, []string{
		"Unable to add c mode Default because it is an alias of a, which is part of an alias cycle.",
		"Alias cycle detected: a → b → a.",
		"Failed to create or update any variables due to errors.",
	}, errorTexts(entries))
	assert.Empty(t, byName(t, s))
}

func TestImport_UnsupportedTypeIsSkipped(t *testing.T) {
	s := newTestStore(t)
	entries := importDocs(t, s, map[string]token.Object{"a.json": doc(t, `{
		"color": {"$type": "color", "red": {"$value": "#FF0000"}, "green": {"$value": "#00FF00"}},
		"space": {"$type": "dimension", "sm": {"$value": "4px"}, "md": {"$value": 8}},
		"shadow": {"$type": "shadow", "$value": {"x": 0, "y": 1}},
		"radius": {"$type": "borderRadius", "$value": 2},
		"font": {
			"body": {"$type": "fontFamily", "$value": "Segoe UI, sans-serif"},
			"bold": {"$type": "fontWeight", "$value": 700},
			"size": {"$type": "fontSize", "$value": 1}
		},
		"visible": {"$type": "boolean", "$value": true}
	}`)}, "a.json")

	var infos []string
	for _, e := range entries {
		if e.Kind == result.KindInfo {
			infos = append(infos, e.Text)
		}
	}
	assert.Equal(t, []string{
		"Unable to add shadow mode Default because shadow tokens aren't supported.",
		"9 variables were created and 0 other updates were made.",
	}, infos)
	assert.Empty(t, errorTexts(entries))
	assert.Len(t, byName(t, s), 9)
}

func TestImport_MissingTypeIsUnknown(t *testing.T) {
	s := newTestStore(t)
	entries := importDocs(t, s, map[string]token.Object{"a.json": doc(t, `{"a": {"$value": 1}}`)}, "a.json")

	assert.Equal(t, result.Entry{
		Kind: result.KindInfo,
		Text: "Unable to add a mode Default because unknown tokens aren't supported.",
	}, entries[0])
}

func TestImport_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	entries := importDocs(t, s, map[string]token.Object{"a.json": doc(t, `{
		"red": {"$type": "color", "$value": "#FF0000"},
		"veil": {"$type": "color", "$value": "#00000080"},
		"gap": {"$type": "dimension", "$value": "12px"},
		"fast": {"$type": "duration", "$value": "150ms"},
		"ratio": {"$type": "number", "$value": 0.5},
		"body": {"$type": "fontSize", "$value": "0.875rem"},
		"leading": {"$type": "lineHeight", "$value": 150},
		"tracking": {"$type": "letterSpacing", "$value": -0.25},
		"round": {"$type": "borderRadius", "$value": 4},
		"on": {"$type": "boolean", "$value": true},
		"label": {"$type": "string", "$value": "Hello"},
		"family": {"$type": "fontFamily", "$value": "'Segoe UI', sans-serif"},
		"weight": {"$type": "fontWeight", "$value": 700}
	}`)}, "a.json")
	require.Empty(t, errorTexts(entries))

	vars := byName(t, s)
	floats := map[string]float64{
		"gap":      12,
		"fast":     150,
		"ratio":    0.5,
		"body":     14,
		"leading":  1.5,
		"tracking": -0.25,
		"round":    4,
	}
	for name, want := range floats {
		got, ok := modeValue(t, vars[name]).(variable.Float)
		require.True(t, ok, name)
		assert.InDelta(t, want, float64(got), 1e-9, name)
	}

	assert.Equal(t, variable.Color{R: 1, A: 1}, modeValue(t, vars["red"]))
	veil, ok := modeValue(t, vars["veil"]).(variable.Color)
	require.True(t, ok)
	assert.InDelta(t, 0.5, veil.A, 0.01)
	assert.Equal(t, variable.Bool(true), modeValue(t, vars["on"]))
	assert.Equal(t, variable.String("Hello"), modeValue(t, vars["label"]))
	assert.Equal(t, variable.String("Segoe UI"), modeValue(t, vars["family"]))
	assert.Equal(t, variable.String("bold"), modeValue(t, vars["weight"]))
}

func TestImport_InvalidValue(t *testing.T) {
	s := newTestStore(t)
	entries := importDocs(t, s, map[string]token.Object{"a.json": doc(t, `{
		"bad": {"$type": "color", "$value": "red"},
		"flag": {"$type": "boolean", "$value": "yes"},
		"ok": {"$type": "number", "$value": 1}
	}`)}, "a.json")

	assert.Equal(t, []string{
		`Invalid color: bad = "red"`,
		`Invalid boolean: flag = "yes"`,
		"1 variables were created and 0 other updates were made, but 2 had errors.",
	}, errorTexts(entries))
}

func TestImport_AliasKindMismatch(t *testing.T) {
	s := newTestStore(t)
	entries := importDocs(t, s, map[string]token.Object{"a.json": doc(t, `{
		"size": {"$type": "number", "$value": 4},
		"tint": {"$type": "color", "$value": "{size}"}
	}`)}, "a.json")

	errs := errorTexts(entries)
	require.Len(t, errs, 2)
	assert.Equal(t, "Unable to add tint mode Default because it is an alias of size, which is FLOAT, but color tokens are COLOR.", errs[0])
}

func TestImport_MissingTargetSuggestsName(t *testing.T) {
	s := newTestStore(t)
	entries := importDocs(t, s, map[string]token.Object{"a.json": doc(t, `{
		"color": {
			"blue": {"$type": "color", "$value": "#0000FF"},
			"primary": {"$type": "color", "$value": "{color.blu}"}
		}
	}`)}, "a.json")

	assert.Equal(t, []string{
		"Unable to add color/primary mode Default because it is an alias of color/blu but that doesn't exist. Did you mean color/blue?",
		"1 variables were created and 0 other updates were made, but 1 had errors.",
	}, errorTexts(entries))
}

func TestImport_WithoutLibraries(t *testing.T) {
	s := newTestStore(t, store.WithoutLibraries())
	entries := importDocs(t, s, map[string]token.Object{"a.json": doc(t, `{
		"color": {
			"blue": {"$type": "color", "$value": "#0000FF"},
			"primary": {"$type": "color", "$value": "{color.blu}"}
		}
	}`)}, "a.json")

	assert.Equal(t, []string{
		"Team libraries aren't available, so variables that alias variables in other files can't be created. With that in mind:",
		"Unable to add color/primary mode Default because it is an alias of color/blu but it wasn't found—it may be in a different file. Did you mean color/blue?",
		"1 variables were created and 0 other updates were made, but 2 had errors.",
	}, errorTexts(entries))
}

func TestImport_MissingManifestFile(t *testing.T) {
	s := newTestStore(t)
	entries := importDocs(t, s, map[string]token.Object{"a.json": doc(t, `{"a": {"$type": "number", "$value": 1}}`)},
		"a.json", "b.json")

	assert.Equal(t, []string{
		"The manifest mentioned b.json but you didn‘t give me that file, so I skipped it.",
		"1 variables were created and 0 other updates were made, but 1 had errors.",
	}, errorTexts(entries))
}

func TestImport_Metadata(t *testing.T) {
	s := newTestStore(t)
	importDocs(t, s, map[string]token.Object{"a.json": doc(t, `{
		"space": {
			"sm": {
				"$type": "number",
				"$value": 4,
				"$description": "Small gap",
				"$extensions": {"com.figma": {
					"scopes": ["GAP"],
					"codeSyntax": {"WEB": "var(--space-sm)"}
				}}
			},
			"md": {"$type": "number", "$value": 8},
			"name": {"$type": "string", "$value": "x"}
		}
	}`)}, "a.json")

	vars := byName(t, s)
	sm := vars["space/sm"]
	assert.Equal(t, "Small gap", sm.Description)
	assert.Equal(t, []string{"GAP"}, sm.Scopes)
	assert.Equal(t, map[string]string{variable.PlatformWeb: "var(--space-sm)"}, sm.CodeSyntax)

	assert.Equal(t, DefaultScopes, vars["space/md"].Scopes)
	assert.Empty(t, vars["space/name"].Scopes, "strings have no scopes")

	// A later run without a description keeps the stored one.
	importDocs(t, s, map[string]token.Object{"a.json": doc(t, `{"space": {"sm": {"$type": "number", "$value": 5}}}`)}, "a.json")
	assert.Equal(t, "Small gap", byName(t, s)["space/sm"].Description)
}

func TestImport_DefaultScopesPolicy(t *testing.T) {
	s := newTestStore(t)
	var log result.Log
	m := manifest.Default([]string{"a.json"})
	docs := map[string]token.Object{"a.json": doc(t, `{"a": {"$type": "number", "$value": 1}}`)}
	require.NoError(t, New(s, WithDefaultScopes(nil)).Import(t.Context(), m, docs, &log))

	assert.Empty(t, byName(t, s)["a"].Scopes)
}

func TestImport_ModeLimit(t *testing.T) {
	s := newTestStore(t, store.WithModeLimit(1))
	m := &manifest.Manifest{
		Name: "limited",
		Collections: []manifest.Collection{{
			Name: "Theme",
			Modes: []manifest.Mode{
				{Name: "Light", Files: []string{"light.json"}},
				{Name: "Dark", Files: []string{"dark.json"}},
			},
		}},
	}
	var log result.Log
	err := New(s).Import(t.Context(), m, map[string]token.Object{
		"light.json": doc(t, `{"bg": {"$type": "color", "$value": "#FFFFFF"}}`),
		"dark.json":  doc(t, `{"bg": {"$type": "color", "$value": "#000000"}}`),
	}, &log)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Failed to add a variable mode for Dark. You may be at the limit of what your account currently allows. (You already have 1.)",
		"1 variables were created and 0 other updates were made, but 1 had errors.",
	}, errorTexts(log.Entries()))
}

func TestImport_ConversionTableOutOfSync(t *testing.T) {
	s := newTestStore(t)
	table := convert.NewTable(map[string]variable.Kind{"shadow": variable.KindString})

	var log result.Log
	err := New(s, WithConversionTable(table)).Import(t.Context(), manifest.Default([]string{"a.json"}),
		map[string]token.Object{"a.json": doc(t, `{"drop": {"$type": "shadow", "$value": "0 1px 2px"}}`)}, &log)

	require.Error(t, err)
	assert.True(t, IsConversionError(err))
	assert.ErrorIs(t, err, convert.ErrNoConversion)

	var re *RuntimeError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "drop", re.Details["token"])
}

// publishLibrary publishes a "Primitives" collection holding color/blue and
// space/sm into s.
func publishLibrary(t *testing.T, s *store.Store) {
	t.Helper()
	ctx := t.Context()
	src := newTestStore(t, store.WithIDGenerator(testutil.NewSequentialIDs("lib")))

	c, err := src.CreateCollection(ctx, "Primitives")
	require.NoError(t, err)
	blue, err := src.CreateVariable(ctx, "color/blue", c.ID, variable.KindColor)
	require.NoError(t, err)
	require.NoError(t, src.SetValue(ctx, blue.ID, c.Modes[0].ID, variable.Color{B: 1, A: 1}))
	_, err = src.CreateVariable(ctx, "space/sm", c.ID, variable.KindFloat)
	require.NoError(t, err)

	require.NoError(t, s.Publish(ctx, src, "Core"))
}

func TestImport_AliasIntoLibrary(t *testing.T) {
	s := newTestStore(t)
	publishLibrary(t, s)

	entries := importDocs(t, s, map[string]token.Object{"a.json": doc(t, `{
		"color": {
			"primary": {"$type": "color", "$value": "{color.blue}"},
			"link": {"$type": "color", "$value": "{color.blue}"}
		}
	}`)}, "a.json")
	assert.Empty(t, errorTexts(entries))

	imported, err := s.ImportVariable(t.Context(), "lib-3")
	require.NoError(t, err)

	vars := byName(t, s)
	assert.Equal(t, variable.Alias{ID: imported.ID}, modeValue(t, vars["color/primary"]))
	assert.Equal(t, variable.Alias{ID: imported.ID}, modeValue(t, vars["color/link"]))
}

func TestImport_LibraryScopeViolation(t *testing.T) {
	s := newTestStore(t)
	publishLibrary(t, s)

	m := &manifest.Manifest{
		Name: "overlap",
		Collections: []manifest.Collection{
			{Name: "Primitives", Modes: []manifest.Mode{{Name: "Value", Files: []string{"new.json"}}}},
			{Name: "Tokens", Modes: []manifest.Mode{{Name: "Value", Files: []string{"old.json"}}}},
		},
	}
	var log result.Log
	err := New(s).Import(t.Context(), m, map[string]token.Object{
		"new.json": doc(t, `{"space": {"lg": {"$type": "number", "$value": 16}}}`),
		"old.json": doc(t, `{"color": {"blue": {"$type": "color", "$value": "#0000EE"}}}`),
	}, &log)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Failed to create space/lg because it‘s defined in a different library.",
		"Failed to update color/blue because it‘s defined in a different library.",
		"Failed to create or update any variables due to errors.",
	}, errorTexts(log.Entries()))
}

func TestImportFiles_SynthesizesManifest(t *testing.T) {
	s := newTestStore(t)
	entries, err := New(s).ImportFiles(t.Context(), []File{
		{Name: "A.json", Text: `{"a": {"$type": "number", "$value": 1}}`},
		{Name: "B.json", Text: `{"b": {"$type": "number", "$value": "{a}"}}`},
	})
	require.NoError(t, err)
	assert.Empty(t, errorTexts(entries))

	collections, err := s.LocalCollections(t.Context())
	require.NoError(t, err)
	require.Len(t, collections, 1)
	assert.Equal(t, "A.json, B.json", collections[0].Name)
	require.Len(t, collections[0].Modes, 1)
	assert.Equal(t, manifest.DefaultMode, collections[0].Modes[0].Name)
	assert.Len(t, byName(t, s), 2)
}

func TestImportFiles_DuplicateKeysLastValueWins(t *testing.T) {
	s := newTestStore(t)
	entries, err := New(s).ImportFiles(t.Context(), []File{
		{Name: "a.json", Text: `{
			"color": {"$type": "color", "$value": "#000000"},
			"color": {"$type": "color", "$value": "#FFFFFF"}
		}`},
	})
	require.NoError(t, err)
	assert.Equal(t, []result.Entry{
		{Kind: result.KindInfo, Text: "1 variables were created and 0 other updates were made."},
	}, entries)

	vars := byName(t, s)
	require.Contains(t, vars, "color")
	assert.Equal(t, variable.Color{R: 1, G: 1, B: 1, A: 1}, modeValue(t, vars["color"]))
}

func TestImportFiles_HashPrefixedNames(t *testing.T) {
	s := newTestStore(t)
	entries, err := New(s).ImportFiles(t.Context(), []File{
		{Name: "a.json", Text: `{
			"#brand": {"$type": "color", "$value": "#0D99FF"},
			"grp": {"#x": {"$type": "number", "$value": 1}},
			"link": {"$type": "number", "$value": "{grp.#x}"}
		}`},
	})
	require.NoError(t, err)
	assert.Empty(t, errorTexts(entries))

	vars := byName(t, s)
	require.Contains(t, vars, "#brand")
	require.Contains(t, vars, "grp/#x")
	require.Contains(t, vars, "link")
	assert.Equal(t, variable.Alias{ID: vars["grp/#x"].ID}, modeValue(t, vars["link"]))
}

func TestImportFiles_UsesManifest(t *testing.T) {
	s := newTestStore(t)
	entries, err := New(s).ImportFiles(t.Context(), []File{
		{Name: "global.json", Text: themeGlobal},
		{Name: "manifest.json", Text: `{
			"name": "Theme",
			"collections": {"Theme": {"modes": {"Light": ["global.json"], "Dark": ["alias.json"]}}}
		}`},
		{Name: "other.json", Text: `{"name": "x", "collections": {}}`},
		{Name: "alias.json", Text: themeAlias},
		{Name: "broken.json", Text: `{"a": `},
		{Name: "list.json", Text: `[1, 2]`},
	})
	require.NoError(t, err)

	assert.Equal(t, []result.Entry{
		{Kind: result.KindInfo, Text: "Using token manifest file manifest.json."},
		{Kind: result.KindError, Text: "More than one manifest file was found—ignoring other.json."},
		{Kind: result.KindError, Text: "Failed to parse JSON: broken.json."},
		{Kind: result.KindError, Text: "Failed to parse JSON: list.json."},
		{Kind: result.KindError, Text: "2 variables were created and 0 other updates were made, but 3 had errors."},
	}, entries)
}

func TestImportFiles_InvalidManifest(t *testing.T) {
	s := newTestStore(t)
	entries, err := New(s).ImportFiles(t.Context(), []File{
		{Name: "manifest.json", Text: `{"name": 3, "collections": {}}`},
		{Name: "a.json", Text: `{"a": {"$type": "number", "$value": 1}}`},
	})
	require.NoError(t, err)

	require.NotEmpty(t, entries)
	assert.Equal(t, result.KindError, entries[0].Kind)
	assert.True(t, strings.HasPrefix(entries[0].Text, "Ignoring manifest file manifest.json because it is invalid"), entries[0].Text)

	collections, err := s.LocalCollections(t.Context())
	require.NoError(t, err)
	require.Len(t, collections, 1)
	assert.Equal(t, "a.json", collections[0].Name, "the invalid manifest is not a token document either")
}
