package spos

import "strings"

// getDotPath resolves a dot-path key (e.g. "a.b.c") against a nested
// object, grounded on original_source/spos/blocks.py's
// ObjectBlock.get_value.
func getDotPath(obj map[string]any, key string) (any, bool) {
	parts := strings.Split(key, ".")
	var cur any = obj
	for _, p := range parts {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		v, ok := m[p]
		if !ok {
			return nil, false
		}
		cur = v
	}
	return cur, true
}

// setDotPath writes value into obj at a (possibly dotted) output name,
// creating intermediate maps as needed. This is the decode-side inverse
// of getDotPath, reconstructing nested objects from the flat sequence of
// block output names — spec.md §4.4/§9's "nest_keys" step, whose Python
// body is absent from the retrieved source, so the algorithm here is
// designed directly from the described behaviour rather than ported.
func setDotPath(obj map[string]any, key string, value any) {
	parts := strings.Split(key, ".")
	cur := obj
	for i, p := range parts {
		if i == len(parts)-1 {
			cur[p] = value
			return
		}
		next, ok := cur[p].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[p] = next
		}
		cur = next
	}
}
