package token

import "iter"

// Separator joins group keys into a token's full name.
const Separator = "."

// All returns a lazy, depth-first sequence of (full name, token) pairs in
// document order.
//
// Nodes that are neither tokens nor objects are skipped, as are empty or
// comment-only groups. Each call to the returned sequence walks root afresh.
// A group's $type applies to descendants that declare none.
func All(root Object) iter.Seq2[string, Token] {
	return func(yield func(string, Token) bool) {
		inherited, _ := groupType(root)
		walk(root, "", inherited, yield)
	}
}

func walk(group Object, prefix, inherited string, yield func(string, Token) bool) bool {
	for _, m := range group {
		if !IsChildName(m.Key) {
			continue
		}
		child, ok := m.Value.(Object)
		if !ok {
			continue
		}
		name := prefix + m.Key
		if tok, ok := FromNode(child, inherited); ok {
			if !yield(name, tok) {
				return false
			}
			continue
		}
		childType := inherited
		if t, ok := groupType(child); ok {
			childType = t
		}
		if !walk(child, name+Separator, childType, yield) {
			return false
		}
	}
	return true
}

// Flatten collects All(root) into a map from full name to token.
func Flatten(root Object) map[string]Token {
	tokens := make(map[string]Token)
	for name, tok := range All(root) {
		tokens[name] = tok
	}
	return tokens
}
