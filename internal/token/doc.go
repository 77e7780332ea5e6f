// Package token reads design-token documents in the Design Tokens Community
// Group (DTCG) format.
//
// A document is an ordered tree. Keys starting with "$" are metadata; every
// other key names a child. A child is a token when it carries a value field,
// otherwise it is a group whose key becomes part of its descendants' names:
//
//	{"color": {"brand": {"$type": "color", "$value": "#0D99FF"}}}
//
// yields one token named "color.brand".
//
// Legacy field names (type, value, description, extensions) are accepted
// and normalised into Token at the walker boundary, so nothing downstream
// needs to know which format version a document used.
package token
