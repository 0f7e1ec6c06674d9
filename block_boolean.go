package spos

import (
	"math/rand"

	"github.com/luxedo/spos/bitio"
)

// booleanBlock encodes truthy values to a single bit.
type booleanBlock struct {
	common
}

func compileBooleanBlock(b rawBlock) (Block, error) {
	if err := b.checkAllowedKeys(); err != nil {
		return nil, err
	}
	key, alias, hasValue, value, err := b.validateCommon()
	if err != nil {
		return nil, err
	}
	return &booleanBlock{common{key, alias, hasValue, value}}, nil
}

func (bl *booleanBlock) Width() int { return 1 }

// boolValue coerces bool or 0/1 numeric values, per spec.md §4.2 and the
// dynamic-typing note in §9.
func boolValue(v any) (bool, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case int:
		return t != 0, nil
	case int64:
		return t != 0, nil
	case float64:
		return t != 0, nil
	default:
		return false, &EncodeError{Reason: "boolean block requires a bool or numeric value"}
	}
}

func (bl *booleanBlock) Encode(w *bitio.BitWriter, value any) error {
	if bl.hasValue {
		value = bl.value
	}
	v, err := boolValue(value)
	if err != nil {
		return withKey(err, bl.key)
	}
	if v {
		return w.AppendBits(1, 1)
	}
	return w.AppendBits(0, 1)
}

func (bl *booleanBlock) Decode(r *bitio.BitReader) (any, error) {
	bits, err := r.ReadBits(1)
	if err != nil {
		return nil, wrapTruncated(err)
	}
	return bits == 1, nil
}

func (bl *booleanBlock) Random() any { return rand.Intn(2) == 1 }
