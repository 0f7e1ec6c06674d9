package spos

import "github.com/luxedo/spos/bitio"

// BlockList is an ordered, key-unique sequence of compiled blocks. It
// backs a PayloadSpec's body, its optional header, and an object block's
// blocklist.
type BlockList []Block

// compileBlockList compiles each raw block spec in order and enforces
// key uniqueness across the list, including alias collisions, per
// spec.md §3's BlockList invariant.
func compileBlockList(raw []any) (BlockList, error) {
	out := make(BlockList, 0, len(raw))
	seen := map[string]bool{}
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, &PayloadSpecError{Reason: "block list entries must be objects"}
		}
		block, err := Compile(m)
		if err != nil {
			return nil, err
		}
		if block.Key() == "" && !block.HasStaticValue() {
			return nil, &PayloadSpecError{Block: rawBlock(m).blockName(), Reason: "'key' is required unless the block is a pure static value"}
		}
		name := block.OutputName()
		if name != "" {
			if seen[name] {
				return nil, &PayloadSpecError{Block: name, Reason: "duplicate key/alias within a block list"}
			}
			seen[name] = true
		}
		out = append(out, block)
	}
	return out, nil
}

// decodeBlock decodes one block's wire bits and, if the block carries a
// static value override, substitutes it for the decoded result — the
// bits are still consumed so the message's byte layout is unaffected,
// mirroring original_source/spos/blocks.py's BlockBase.bin_decode cache
// behaviour. A numeric static value is returned in the block's decoded
// type (int64 where Decode yields int64, float64 where it yields float64).
func decodeBlock(b Block, r *bitio.BitReader) (any, error) {
	v, err := b.Decode(r)
	if err != nil {
		return nil, err
	}
	if b.HasStaticValue() {
		sv := b.StaticValue()
		switch v.(type) {
		case int64:
			if n, err := intValue(sv); err == nil {
				return n, nil
			}
		case float64:
			if f, ok := toFloat(sv); ok {
				return f, nil
			}
		}
		return sv, nil
	}
	return v, nil
}

// encode writes every block in the list, resolving each non-static
// block's value from obj by dot-path key.
func (bl BlockList) encode(w *bitio.BitWriter, obj map[string]any) error {
	for _, block := range bl {
		if block.HasStaticValue() {
			if err := block.Encode(w, nil); err != nil {
				return err
			}
			continue
		}
		value, ok := getDotPath(obj, block.Key())
		if !ok {
			return &EncodeError{Key: block.Key(), Reason: "missing required key and no static value configured"}
		}
		if err := block.Encode(w, value); err != nil {
			return withKey(err, block.Key())
		}
	}
	return nil
}

// decode reads every block in the list and nests the results into a
// fresh object keyed by each block's output name (alias if set).
func (bl BlockList) decode(r *bitio.BitReader) (map[string]any, error) {
	out := map[string]any{}
	for _, block := range bl {
		v, err := decodeBlock(block, r)
		if err != nil {
			return nil, withKey(err, block.Key())
		}
		if block.OutputName() != "" {
			setDotPath(out, block.OutputName(), v)
		}
	}
	return out, nil
}

// random synthesizes a payload object covering every non-static,
// keyed block in the list with a value Encode will accept.
func (bl BlockList) random() map[string]any {
	out := map[string]any{}
	randomInto(out, bl)
	return out
}

// randomInto writes a random value for every non-static, keyed block in
// bl into out, nesting by dot-path. Shared by BlockList.random and
// RandomPayload so a spec's header and body can be synthesized into one
// object without one overwriting the other's nested keys.
func randomInto(out map[string]any, bl BlockList) {
	for _, block := range bl {
		if block.HasStaticValue() || block.Key() == "" {
			continue
		}
		setDotPath(out, block.Key(), block.Random())
	}
}

// width sums the fixed portion of every block's width; dynamic blocks
// (arrays) only contribute their prefix here — exact total width is a
// property of a specific message, measured via BitWriter.Len().
func (bl BlockList) width() int {
	total := 0
	for _, b := range bl {
		total += b.Width()
	}
	return total
}
