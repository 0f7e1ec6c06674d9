package spos

import (
	"math/rand"
	"reflect"

	"github.com/luxedo/spos/bitio"
)

// arrayBlock encodes a sequence. In fixed mode the length is part of the
// schema and every encoded array must match it exactly. In dynamic mode
// (default) a length prefix of width ceil(log2(length+1)) carries the
// actual element count, which may be less than length but never more.
type arrayBlock struct {
	common
	length     int
	fixed      bool
	inner      Block
	prefixBits int // dynamic mode only
}

func compileArrayBlock(b rawBlock) (Block, error) {
	if err := b.checkAllowedKeys("length", "fixed", "blocks"); err != nil {
		return nil, err
	}
	key, alias, hasValue, value, err := b.validateCommon()
	if err != nil {
		return nil, err
	}
	length, err := b.requireInt("length")
	if err != nil {
		return nil, err
	}
	if length < 0 {
		return nil, &PayloadSpecError{Block: key, Reason: "array block 'length' must be non-negative"}
	}
	fixed, err := b.optBool("fixed", false)
	if err != nil {
		return nil, err
	}
	rawInner, ok := b["blocks"]
	if !ok {
		return nil, &PayloadSpecError{Block: key, Reason: "missing required key 'blocks'"}
	}
	innerMap, ok := rawInner.(map[string]any)
	if !ok {
		return nil, &PayloadSpecError{Block: key, Reason: "'blocks' must be a block specification"}
	}
	inner, err := Compile(innerMap)
	if err != nil {
		return nil, err
	}
	return &arrayBlock{
		common:     common{key, alias, hasValue, value},
		length:     length,
		fixed:      fixed,
		inner:      inner,
		prefixBits: bitsForCount(length + 1),
	}, nil
}

// Width reports the fixed-mode width, or just the prefix width in
// dynamic mode (the element payload is value-dependent).
func (bl *arrayBlock) Width() int {
	if bl.fixed {
		return bl.length * bl.inner.Width()
	}
	return bl.prefixBits
}

// toSlice coerces any slice-shaped dynamic value into []any, per spec.md
// §9's dynamic-typing boundary note.
func toSlice(value any) ([]any, bool) {
	if s, ok := value.([]any); ok {
		return s, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func (bl *arrayBlock) Encode(w *bitio.BitWriter, value any) error {
	if bl.hasValue {
		value = bl.value
	}
	items, ok := toSlice(value)
	if !ok {
		return &EncodeError{Key: bl.key, Reason: "array block requires a sequence value"}
	}
	if bl.fixed {
		if len(items) != bl.length {
			return &EncodeError{Key: bl.key, Reason: "fixed array length mismatch"}
		}
		for _, item := range items {
			if err := bl.inner.Encode(w, item); err != nil {
				return withKey(err, bl.key)
			}
		}
		return nil
	}
	if len(items) > bl.length {
		return &EncodeError{Key: bl.key, Reason: "array has more elements than the spec allows"}
	}
	if err := encodeIntRaw(w, int64(len(items)), bl.prefixBits, "truncate"); err != nil {
		return err
	}
	for _, item := range items {
		if err := bl.inner.Encode(w, item); err != nil {
			return withKey(err, bl.key)
		}
	}
	return nil
}

func (bl *arrayBlock) Decode(r *bitio.BitReader) (any, error) {
	count := bl.length
	if !bl.fixed {
		bits, err := r.ReadBits(bl.prefixBits)
		if err != nil {
			return nil, wrapTruncated(err)
		}
		count = int(bits)
	}
	out := make([]any, count)
	for i := 0; i < count; i++ {
		v, err := decodeBlock(bl.inner, r)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Random draws a random element count (exactly length in fixed mode, 0..
// length in dynamic mode) and fills it with the inner block's own random
// values.
func (bl *arrayBlock) Random() any {
	n := bl.length
	if !bl.fixed {
		n = rand.Intn(bl.length + 1)
	}
	out := make([]any, n)
	for i := range out {
		out[i] = bl.inner.Random()
	}
	return out
}
