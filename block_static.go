package spos

import "github.com/luxedo/spos/bitio"

// staticBlock is a header-only entry that carries a literal value and
// contributes no wire bits. Declared by omitting "type" from a block
// spec that has "value" — spec.md §3's "static header blocks".
type staticBlock struct {
	common
}

func compileStaticBlock(b rawBlock) (Block, error) {
	if err := b.checkAllowedKeys(); err != nil {
		return nil, err
	}
	key, alias, hasValue, value, err := b.validateCommon()
	if err != nil {
		return nil, err
	}
	if !hasValue {
		return nil, &PayloadSpecError{Block: b.blockName(), Reason: "a block without 'type' must declare a static 'value'"}
	}
	return &staticBlock{common{key, alias, hasValue, value}}, nil
}

func (bl *staticBlock) Width() int { return 0 }

func (bl *staticBlock) Encode(w *bitio.BitWriter, value any) error { return nil }

func (bl *staticBlock) Decode(r *bitio.BitReader) (any, error) { return bl.value, nil }

func (bl *staticBlock) Random() any { return bl.value }
