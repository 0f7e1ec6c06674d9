package spos

import "github.com/luxedo/spos/bitio"

// padBlock writes bits zero bits and discards them on decode.
type padBlock struct {
	common
	bits int
}

func compilePadBlock(b rawBlock) (Block, error) {
	if err := b.checkAllowedKeys("bits"); err != nil {
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
	if bits <= 0 {
		return nil, &PayloadSpecError{Block: key, Reason: "pad block 'bits' must be positive"}
	}
	return &padBlock{common{key, alias, hasValue, value}, bits}, nil
}

func (bl *padBlock) Width() int { return bl.bits }

func (bl *padBlock) Encode(w *bitio.BitWriter, value any) error {
	return w.AppendBits(0, bl.bits)
}

func (bl *padBlock) Decode(r *bitio.BitReader) (any, error) {
	if _, err := r.ReadBits(bl.bits); err != nil {
		return nil, wrapTruncated(err)
	}
	return nil, nil
}

// Random is nil: Encode ignores its value argument entirely, so any
// placeholder satisfies the payload object's key-presence check.
func (bl *padBlock) Random() any { return nil }
