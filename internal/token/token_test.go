package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, src string) Object {
	t.Helper()
	root, err := Decode("test.json", []byte(src))
	require.NoError(t, err)
	return root
}

func keys(o Object) []string {
	out := make([]string, len(o))
	for i, m := range o {
		out[i] = m.Key
	}
	return out
}

type named struct {
	Name  string
	Token Token
}

func collect(root Object) []named {
	var out []named
	for name, tok := range All(root) {
		out = append(out, named{name, tok})
	}
	return out
}

func names(root Object) []string {
	var out []string
	for name := range All(root) {
		out = append(out, name)
	}
	return out
}

func TestDecode_PreservesKeyOrder(t *testing.T) {
	root := decode(t, `{"zeta": 1, "alpha": {"b": true, "a": null}, "mid": [1, "x"]}`)

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, keys(root))

	alpha, ok := root.Object("alpha")
	require.True(t, ok)
	assert.Equal(t, []string{"b", "a"}, keys(alpha))

	v, _ := root.Get("zeta")
	assert.Equal(t, float64(1), v)

	v, _ = root.Get("mid")
	assert.Equal(t, Array{float64(1), "x"}, v)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"truncated", `{"a": `},
		{"empty", ``},
		{"trailing data", `{"a": 1} {"b": 2}`},
		{"bad syntax", `{"a": 1,}`},
		{"unclosed array", `{"a": [1, 2`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode("bad.json", []byte(tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "decode bad.json")
		})
	}

	_, err := Decode("list.json", []byte(`[1, 2]`))
	assert.ErrorIs(t, err, ErrNotDocument)

	_, err = Decode("scalar.json", []byte(`"text"`))
	assert.ErrorIs(t, err, ErrNotDocument)
}

func TestDecode_MetadataKeys(t *testing.T) {
	root := decode(t, `{"$schema": "x", "c": {"$type": "color", "$value": "#fff"}}`)
	assert.Equal(t, []string{"$schema", "c"}, keys(root))
}

func TestDecode_HashPrefixedKeys(t *testing.T) {
	root := decode(t, `{
		"#brand": {"$type": "color", "$value": "#0D99FF"},
		"plain": {"$type": "color", "$value": "#000000"},
		"grp": {"#x": {"$type": "number", "$value": 1}, "_y": {"$type": "number", "$value": 2}}
	}`)

	assert.Equal(t, []string{"#brand", "plain", "grp"}, keys(root))
	assert.Equal(t, []string{"#brand", "plain", "grp.#x", "grp._y"}, names(root))
	assert.Equal(t, "#brand", StoreName("#brand"))
}

func TestDecode_DuplicateKeysLastValueWins(t *testing.T) {
	root := decode(t, `{
		"color": {"$type": "color", "$value": "#000000"},
		"size": {"$type": "number", "$value": 1},
		"color": {"$type": "color", "$value": "#FFFFFF"}
	}`)

	assert.Equal(t, []string{"color", "size"}, keys(root), "a repeated key keeps its first position")
	got := collect(root)
	require.Len(t, got, 2)
	assert.Equal(t, "#FFFFFF", got[0].Token.Value)
}

func TestAll_DepthFirstDocumentOrder(t *testing.T) {
	root := decode(t, `{
		"color": {
			"brand": {"$type": "color", "$value": "#0D99FF"},
			"gray": {
				"100": {"$type": "color", "$value": "#F5F5F5"},
				"900": {"$type": "color", "$value": "#111111"}
			},
			"accent": {"$type": "color", "$value": "#FF00FF"}
		},
		"size": {"sm": {"$type": "dimension", "$value": "4px"}}
	}`)

	assert.Equal(t, []string{
		"color.brand",
		"color.gray.100",
		"color.gray.900",
		"color.accent",
		"size.sm",
	}, names(root))
}

func TestAll_SkipsMetadataAndMalformedNodes(t *testing.T) {
	root := decode(t, `{
		"$description": "root",
		"empty": {},
		"comment": {"$description": "only a comment"},
		"scalar": 5,
		"group": {"$description": "g", "t": {"$type": "number", "$value": 1}}
	}`)

	assert.Equal(t, []string{"group.t"}, names(root))
}

func TestAll_Restartable(t *testing.T) {
	root := decode(t, `{"a": {"$type": "number", "$value": 1}, "b": {"$type": "number", "$value": 2}}`)
	seq := All(root)

	var first, second []string
	for name := range seq {
		first = append(first, name)
	}
	for name := range seq {
		second = append(second, name)
	}
	assert.Equal(t, first, second)
}

func TestAll_StopsEarly(t *testing.T) {
	root := decode(t, `{"g": {"a": {"$value": 1}, "b": {"$value": 2}}, "c": {"$value": 3}}`)

	var seen []string
	for name := range All(root) {
		seen = append(seen, name)
		break
	}
	assert.Equal(t, []string{"g.a"}, seen)
}

func TestAll_LegacyFields(t *testing.T) {
	root := decode(t, `{
		"legacy": {"type": "color", "value": "#000000", "description": "old"},
		"both": {"type": "number", "$type": "dimension", "value": 1, "$value": 2},
		"value": {"nested": {"$type": "number", "$value": 3}}
	}`)

	got := collect(root)
	require.Len(t, got, 3)

	assert.Equal(t, "legacy", got[0].Name)
	assert.Equal(t, Token{Type: "color", Value: "#000000", Description: "old"}, got[0].Token)

	assert.Equal(t, "both", got[1].Name)
	assert.Equal(t, "dimension", got[1].Token.Type, "current field name wins")
	assert.Equal(t, float64(2), got[1].Token.Value)

	assert.Equal(t, "value.nested", got[2].Name, "a group called value is still a group")
}

func TestAll_GroupTypeInheritance(t *testing.T) {
	root := decode(t, `{
		"space": {
			"$type": "dimension",
			"sm": {"$value": 4},
			"md": {"$type": "number", "$value": 8},
			"inner": {"lg": {"$value": 16}}
		},
		"loose": {"$value": 1}
	}`)

	got := Flatten(root)
	assert.Equal(t, "dimension", got["space.sm"].Type)
	assert.Equal(t, "number", got["space.md"].Type)
	assert.Equal(t, "dimension", got["space.inner.lg"].Type)
	assert.Equal(t, "", got["loose"].Type)
}

func TestFromNode_ExtensionsMerge(t *testing.T) {
	root := decode(t, `{
		"t": {
			"$type": "color",
			"$value": "#fff",
			"extensions": {"codeSyntax": "--color-t", "codeSyntaxPlatform": "WEB", "shared": "legacy"},
			"$extensions": {"shared": "current", "com.figma": {"scopes": ["ALL_FILLS", "STROKE_COLOR"]}}
		}
	}`)

	tok := Flatten(root)["t"]
	shared, _ := tok.Extensions.String("shared")
	assert.Equal(t, "current", shared)

	scopes, ok := tok.Scopes()
	require.True(t, ok)
	assert.Equal(t, []string{"ALL_FILLS", "STROKE_COLOR"}, scopes)

	assert.Equal(t, []CodeSyntax{{Platform: "WEB", Syntax: "--color-t"}}, tok.CodeSyntax())
}

func TestToken_CodeSyntaxObject(t *testing.T) {
	root := decode(t, `{
		"t": {
			"$type": "number",
			"$value": 1,
			"$extensions": {"com.figma": {"codeSyntax": {"WEB": "var(--t)", "iOS": "Tokens.t", "ANDROID": 7}}}
		}
	}`)

	tok := Flatten(root)["t"]
	assert.Equal(t, []CodeSyntax{
		{Platform: "WEB", Syntax: "var(--t)"},
		{Platform: "iOS", Syntax: "Tokens.t"},
	}, tok.CodeSyntax())

	_, ok := tok.Scopes()
	assert.False(t, ok)
}

func TestToken_ScopesRejectsNonStrings(t *testing.T) {
	tok := Token{Extensions: Object{{Key: "com.figma", Value: Object{{Key: "scopes", Value: Array{"A", float64(1)}}}}}}
	_, ok := tok.Scopes()
	assert.False(t, ok)
}

func TestObject_MarshalJSONKeepsOrder(t *testing.T) {
	obj := Object{{Key: "z", Value: float64(1)}, {Key: "a", Value: Array{"x", Object{{Key: "k", Value: true}}}}}
	data, err := obj.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":["x",{"k":true}]}`, string(data))
}
