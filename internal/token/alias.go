package token

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// StoreSeparator is the variable store's hierarchy separator.
const StoreSeparator = "/"

// IsAlias reports whether s uses alias syntax: a non-empty name in braces.
func IsAlias(s string) bool {
	return len(s) > 2 && s[0] == '{' && s[len(s)-1] == '}'
}

// AliasTarget returns the referenced token name when v is an alias string.
func AliasTarget(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || !IsAlias(s) {
		return "", false
	}
	return s[1 : len(s)-1], true
}

// StoreName maps a full token name onto the store's naming convention.
// Names are NFC-normalised so that differently composed spellings of the
// same name meet on one variable.
func StoreName(name string) string {
	return strings.ReplaceAll(norm.NFC.String(name), Separator, StoreSeparator)
}
