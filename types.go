// Package spos implements the Small Payload Object Serializer: a
// schema-driven codec that packs structured records into compact
// bit-aligned messages for bandwidth-constrained links, and unpacks them
// back. See SPEC_FULL.md for the full data model; this file holds the
// shared Block interface every block type implements.
package spos

import (
	"fmt"

	"github.com/luxedo/spos/bitio"
)

// Block is the compiled, typed form of one schema element. Validate once
// at spec-compile time, then Encode/Decode many times against disjoint
// bit streams.
type Block interface {
	// Key is the dot-path this block reads from the payload object at
	// encode time and writes to the decoded object at decode time. Empty
	// for blocks that aren't looked up by key (an array's inner element
	// block).
	Key() string

	// OutputName is the name used for this block's entry in a decoded
	// object: the alias if one was declared, otherwise Key.
	OutputName() string

	// HasStaticValue reports whether the block spec carries a literal
	// value override.
	HasStaticValue() bool

	// StaticValue returns the literal override value; only meaningful
	// when HasStaticValue is true.
	StaticValue() any

	// Width reports the block's bit width. For blocks whose width
	// depends on the value being encoded (a dynamic array), Width
	// reports only the fixed portion; callers needing the exact
	// per-message width measure bitio.BitWriter.Len() before and after
	// Encode instead.
	Width() int

	// Encode writes value's bit representation to w. If the block has a
	// static value, value is ignored and the static value is encoded
	// instead.
	Encode(w *bitio.BitWriter, value any) error

	// Decode reads this block's bits from r and returns the decoded
	// value.
	Decode(r *bitio.BitReader) (any, error)

	// Random returns a value that Encode will accept for this block,
	// drawn uniformly (or as close as the block's domain allows) from
	// its valid range. Used by the randompayload package to synthesize
	// test payloads without a caller-supplied payload_data.
	Random() any
}

// common holds the attributes shared by every block type: key, alias,
// and an optional static value override.
type common struct {
	key      string
	alias    string
	hasValue bool
	value    any
}

func (c *common) Key() string { return c.key }

func (c *common) OutputName() string {
	if c.alias != "" {
		return c.alias
	}
	return c.key
}

func (c *common) HasStaticValue() bool { return c.hasValue }
func (c *common) StaticValue() any     { return c.value }

// rawBlock is a block specification as loaded from JSON: a string-keyed
// map of arbitrary values. Typed accessors below convert it into Go
// values, reporting a *PayloadSpecError with the offending key's name on
// mismatch.
type rawBlock map[string]any

func (b rawBlock) has(key string) bool {
	_, ok := b[key]
	return ok
}

func (b rawBlock) blockName() string {
	if k, ok := b["key"].(string); ok {
		return k
	}
	return "<unnamed>"
}

func (b rawBlock) requireString(key string) (string, error) {
	v, ok := b[key]
	if !ok {
		return "", &PayloadSpecError{Block: b.blockName(), Reason: fmt.Sprintf("missing required key '%s'", key)}
	}
	s, ok := v.(string)
	if !ok {
		return "", &PayloadSpecError{Block: b.blockName(), Reason: fmt.Sprintf("key '%s' must be a string", key)}
	}
	return s, nil
}

func (b rawBlock) optString(key, def string) (string, error) {
	v, ok := b[key]
	if !ok {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", &PayloadSpecError{Block: b.blockName(), Reason: fmt.Sprintf("key '%s' must be a string", key)}
	}
	return s, nil
}

func (b rawBlock) requireInt(key string) (int, error) {
	v, ok := b[key]
	if !ok {
		return 0, &PayloadSpecError{Block: b.blockName(), Reason: fmt.Sprintf("missing required key '%s'", key)}
	}
	n, ok := toInt(v)
	if !ok {
		return 0, &PayloadSpecError{Block: b.blockName(), Reason: fmt.Sprintf("key '%s' must be an integer", key)}
	}
	return n, nil
}

func (b rawBlock) optInt(key string, def int) (int, error) {
	v, ok := b[key]
	if !ok {
		return def, nil
	}
	n, ok := toInt(v)
	if !ok {
		return 0, &PayloadSpecError{Block: b.blockName(), Reason: fmt.Sprintf("key '%s' must be an integer", key)}
	}
	return n, nil
}

func (b rawBlock) optFloat(key string, def float64) (float64, error) {
	v, ok := b[key]
	if !ok {
		return def, nil
	}
	f, ok := toFloat(v)
	if !ok {
		return 0, &PayloadSpecError{Block: b.blockName(), Reason: fmt.Sprintf("key '%s' must be numeric", key)}
	}
	return f, nil
}

func (b rawBlock) optBool(key string, def bool) (bool, error) {
	v, ok := b[key]
	if !ok {
		return def, nil
	}
	bv, ok := v.(bool)
	if !ok {
		return false, &PayloadSpecError{Block: b.blockName(), Reason: fmt.Sprintf("key '%s' must be a boolean", key)}
	}
	return bv, nil
}

// toInt coerces a dynamic JSON-ish numeric value to an int, accepting
// int, int64, and whole-valued float64.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int64(n)) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

// toFloat coerces a dynamic JSON-ish numeric value to a float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func (b rawBlock) validateCommon() (key, alias string, hasValue bool, value any, err error) {
	if kv, ok := b["key"]; ok {
		k, ok := kv.(string)
		if !ok {
			return "", "", false, nil, &PayloadSpecError{Block: b.blockName(), Reason: "'key' must be a string"}
		}
		key = k
	}
	if av, ok := b["alias"]; ok {
		a, ok := av.(string)
		if !ok {
			return "", "", false, nil, &PayloadSpecError{Block: key, Reason: "'alias' must be a string"}
		}
		alias = a
	}
	if v, ok := b["value"]; ok {
		hasValue = true
		value = v
	}
	return key, alias, hasValue, value, nil
}

// checkAllowedKeys rejects any key in b not present in allowed (plus the
// always-allowed common keys), implementing spec.md §4.5's "unrecognised
// keys inside a block are rejected" rule.
func (b rawBlock) checkAllowedKeys(allowed ...string) error {
	permitted := map[string]bool{"key": true, "type": true, "value": true, "alias": true}
	for _, k := range allowed {
		permitted[k] = true
	}
	for k := range b {
		if !permitted[k] {
			return &PayloadSpecError{Block: b.blockName(), Reason: fmt.Sprintf("unexpected key '%s'", k)}
		}
	}
	return nil
}
