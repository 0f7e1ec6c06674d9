package spos

import (
	"math/rand"

	"github.com/luxedo/spos/bitio"
)

// integerBlock encodes a post-offset value into bits, width bits; mode
// controls overflow behaviour.
type integerBlock struct {
	common
	bits   int
	offset int
	mode   string // "truncate" or "remainder"
}

func compileIntegerBlock(b rawBlock) (Block, error) {
	if err := b.checkAllowedKeys("bits", "offset", "mode"); err != nil {
		return nil, err
	}
	key, alias, hasValue, value, err := b.validateCommon()
	if err != nil {
		return nil, err
	}
	bits, err := b.requireInt("bits")
	if err != nil {
		return nil, err
	}
	offset, err := b.optInt("offset", 0)
	if err != nil {
		return nil, err
	}
	mode, err := b.optString("mode", "truncate")
	if err != nil {
		return nil, err
	}
	if mode != "truncate" && mode != "remainder" {
		return nil, &PayloadSpecError{Block: key, Reason: "mode must be 'truncate' or 'remainder'"}
	}
	if bits <= 0 || bits > 64 {
		return nil, &PayloadSpecError{Block: key, Reason: "integer block 'bits' must be in [1, 64]"}
	}
	return &integerBlock{common{key, alias, hasValue, value}, bits, offset, mode}, nil
}

func (bl *integerBlock) Width() int { return bl.bits }

func intValue(v any) (int64, error) {
	switch t := v.(type) {
	case int:
		return int64(t), nil
	case int64:
		return t, nil
	case float64:
		return int64(t), nil
	default:
		return 0, &EncodeError{Reason: "integer block requires an integer value"}
	}
}

// encodeIntRaw saturates or wraps value into bits bits per mode and
// writes it. Shared by IntegerBlock and the internal length/index
// prefixes used by array, steps, and categories blocks.
func encodeIntRaw(w *bitio.BitWriter, value int64, bits int, mode string) error {
	if bits == 64 {
		// Every non-negative int64 fits; a negative value saturates to 0
		// under truncate and wraps (two's complement) under remainder.
		if value < 0 && mode != "remainder" {
			value = 0
		}
		return w.AppendBits(uint64(value), bits)
	}
	overflow := uint64(1)<<uint(bits) - 1
	var u uint64
	switch mode {
	case "remainder":
		m := int64(overflow) + 1
		value %= m
		if value < 0 {
			value += m
		}
		u = uint64(value)
	default: // truncate (saturate)
		u = uint64(clamp(value, 0, int64(overflow)))
	}
	return w.AppendBits(u, bits)
}

func (bl *integerBlock) Encode(w *bitio.BitWriter, value any) error {
	if bl.hasValue {
		value = bl.value
	}
	v, err := intValue(value)
	if err != nil {
		return withKey(err, bl.key)
	}
	return encodeIntRaw(w, v-int64(bl.offset), bl.bits, bl.mode)
}

func (bl *integerBlock) Decode(r *bitio.BitReader) (any, error) {
	bits, err := r.ReadBits(bl.bits)
	if err != nil {
		return nil, wrapTruncated(err)
	}
	return int64(bits) + int64(bl.offset), nil
}

// Random draws uniformly from the block's full representable range,
// mirroring original_source/spos/random.py's generate_value for the
// "integer" case (random.randint(0, 2**bits)).
func (bl *integerBlock) Random() any {
	mask := ^uint64(0)
	if bl.bits < 64 {
		mask = uint64(1)<<uint(bl.bits) - 1
	}
	return int64(rand.Uint64()&mask) + int64(bl.offset)
}
