package token

// Field names. The "$" forms are current DTCG; the bare forms are legacy.
const (
	fieldType        = "$type"
	fieldValue       = "$value"
	fieldDescription = "$description"
	fieldExtensions  = "$extensions"

	legacyType        = "type"
	legacyValue       = "value"
	legacyDescription = "description"
	legacyExtensions  = "extensions"
)

// figmaExtension is the vendor key under which store-specific hints live.
const figmaExtension = "com.figma"

// Token is a normalised token: exactly one field per attribute regardless of
// which spelling the source document used.
type Token struct {
	Type        string
	Value       any
	Description string
	Extensions  Object
}

// CodeSyntax is a per-platform code name for a variable.
type CodeSyntax struct {
	Platform string
	Syntax   string
}

// IsChildName reports whether key names a child rather than metadata.
func IsChildName(key string) bool {
	return key != "" && key[0] != '$'
}

// IsToken reports whether node carries a value field.
//
// A legacy "value" member only counts when it is a scalar or the node also
// declares a type; otherwise it is a child group that happens to be called
// "value".
func IsToken(node Object) bool {
	if node.Has(fieldValue) {
		return true
	}
	v, ok := node.Get(legacyValue)
	if !ok {
		return false
	}
	if _, isObject := v.(Object); !isObject {
		return true
	}
	return node.Has(fieldType) || node.Has(legacyType)
}

// FromNode normalises a token node. inheritedType is used when the node has
// no type of its own. The second result is false when node is not a token.
func FromNode(node Object, inheritedType string) (Token, bool) {
	if !IsToken(node) {
		return Token{}, false
	}

	tok := Token{Type: inheritedType}
	if t, ok := firstString(node, fieldType, legacyType); ok {
		tok.Type = t
	}
	if v, ok := node.Get(fieldValue); ok {
		tok.Value = v
	} else {
		tok.Value, _ = node.Get(legacyValue)
	}
	tok.Description, _ = firstString(node, fieldDescription, legacyDescription)

	// Legacy extensions first so that $extensions keys override them.
	if ext, ok := node.Object(legacyExtensions); ok {
		tok.Extensions = mergeObjects(tok.Extensions, ext)
	}
	if ext, ok := node.Object(fieldExtensions); ok {
		tok.Extensions = mergeObjects(tok.Extensions, ext)
	}
	return tok, true
}

// groupType returns the type a group declares for its descendants.
func groupType(node Object) (string, bool) {
	return firstString(node, fieldType, legacyType)
}

func firstString(node Object, keys ...string) (string, bool) {
	for _, k := range keys {
		if s, ok := node.String(k); ok {
			return s, true
		}
	}
	return "", false
}

func mergeObjects(base, over Object) Object {
	out := make(Object, 0, len(base)+len(over))
	for _, m := range base {
		if !over.Has(m.Key) {
			out = append(out, m)
		}
	}
	return append(out, over...)
}

// Alias returns the name of the token this token references, if its value is
// an alias.
func (t Token) Alias() (string, bool) {
	return AliasTarget(t.Value)
}

// Scopes returns the applicable-scope list from $extensions["com.figma"].
func (t Token) Scopes() ([]string, bool) {
	figma, ok := t.Extensions.Object(figmaExtension)
	if !ok {
		return nil, false
	}
	raw, ok := figma.Get("scopes")
	if !ok {
		return nil, false
	}
	arr, ok := raw.(Array)
	if !ok {
		return nil, false
	}
	scopes := make([]string, 0, len(arr))
	for _, v := range arr {
		s, ok := v.(string)
		if !ok {
			return nil, false
		}
		scopes = append(scopes, s)
	}
	return scopes, true
}

// CodeSyntax returns per-platform code names, in document order.
//
// Two forms are recognised: the flat pair codeSyntax + codeSyntaxPlatform,
// and a com.figma codeSyntax object mapping platform to name.
func (t Token) CodeSyntax() []CodeSyntax {
	var out []CodeSyntax
	syntax, okSyntax := t.Extensions.String("codeSyntax")
	platform, okPlatform := t.Extensions.String("codeSyntaxPlatform")
	if okSyntax && okPlatform {
		out = append(out, CodeSyntax{Platform: platform, Syntax: syntax})
	}

	figma, ok := t.Extensions.Object(figmaExtension)
	if !ok {
		return out
	}
	bySyntax, ok := figma.Object("codeSyntax")
	if !ok {
		return out
	}
	for _, m := range bySyntax {
		if s, ok := m.Value.(string); ok {
			out = append(out, CodeSyntax{Platform: m.Key, Syntax: s})
		}
	}
	return out
}
