package spos

import "github.com/luxedo/spos/bitio"

// objectBlock delegates to an ordered list of inner blocks with no extra
// framing bits, resolving each inner block's key against the object map.
type objectBlock struct {
	common
	blocklist BlockList
}

func compileObjectBlock(b rawBlock) (Block, error) {
	if err := b.checkAllowedKeys("blocklist"); err != nil {
		return nil, err
	}
	key, alias, hasValue, value, err := b.validateCommon()
	if err != nil {
		return nil, err
	}
	rawList, ok := b["blocklist"]
	if !ok {
		return nil, &PayloadSpecError{Block: key, Reason: "missing required key 'blocklist'"}
	}
	list, ok := rawList.([]any)
	if !ok {
		return nil, &PayloadSpecError{Block: key, Reason: "'blocklist' must be a list of block specifications"}
	}
	blocklist, err := compileBlockList(list)
	if err != nil {
		return nil, err
	}
	return &objectBlock{common{key, alias, hasValue, value}, blocklist}, nil
}

func (bl *objectBlock) Width() int {
	total := 0
	for _, inner := range bl.blocklist {
		total += inner.Width()
	}
	return total
}

func (bl *objectBlock) Encode(w *bitio.BitWriter, value any) error {
	if bl.hasValue {
		value = bl.value
	}
	obj, ok := value.(map[string]any)
	if !ok {
		return &EncodeError{Key: bl.key, Reason: "object block requires an object value"}
	}
	return bl.blocklist.encode(w, obj)
}

func (bl *objectBlock) Decode(r *bitio.BitReader) (any, error) {
	return bl.blocklist.decode(r)
}

func (bl *objectBlock) Random() any { return bl.blocklist.random() }
