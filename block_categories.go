package spos

import (
	"math/rand"

	"github.com/luxedo/spos/bitio"
)

// categoriesBlock encodes one of a fixed set of category names. Width
// covers categories ∪ {error name, decode-error}, per spec.md §4.2.
type categoriesBlock struct {
	common
	bits       int
	categories []string
	errorName  string
	hasError   bool
}

func compileCategoriesBlock(b rawBlock) (Block, error) {
	if err := b.checkAllowedKeys("categories", "error"); err != nil {
		return nil, err
	}
	key, alias, hasValue, value, err := b.validateCommon()
	if err != nil {
		return nil, err
	}
	rawCats, ok := b["categories"]
	if !ok {
		return nil, &PayloadSpecError{Block: key, Reason: "missing required key 'categories'"}
	}
	catList, ok := rawCats.([]any)
	if !ok {
		return nil, &PayloadSpecError{Block: key, Reason: "'categories' must be a list"}
	}
	seen := map[string]bool{}
	cats := make([]string, len(catList))
	for i, v := range catList {
		s, ok := v.(string)
		if !ok {
			return nil, &PayloadSpecError{Block: key, Reason: "'categories' entries must be strings"}
		}
		if seen[s] {
			return nil, &PayloadSpecError{Block: key, Reason: "'categories' entries must be unique"}
		}
		seen[s] = true
		cats[i] = s
	}
	errorName, hasError, err := optErrorField(b, key)
	if err != nil {
		return nil, err
	}
	bits := bitsForCount(len(cats) + 2)
	return &categoriesBlock{common{key, alias, hasValue, value}, bits, cats, errorName, hasError}, nil
}

func optErrorField(b rawBlock, key string) (string, bool, error) {
	v, ok := b["error"]
	if !ok {
		return "", false, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", false, &PayloadSpecError{Block: key, Reason: "'error' must be a string"}
	}
	return s, true, nil
}

func (bl *categoriesBlock) Width() int { return bl.bits }

func (bl *categoriesBlock) indexOf(name string) int {
	for i, c := range bl.categories {
		if c == name {
			return i
		}
	}
	return -1
}

func (bl *categoriesBlock) Encode(w *bitio.BitWriter, value any) error {
	if bl.hasValue {
		value = bl.value
	}
	s, ok := value.(string)
	if !ok {
		return &EncodeError{Key: bl.key, Reason: "categories block requires a string value"}
	}
	idx := bl.indexOf(s)
	if idx < 0 {
		if !bl.hasError {
			return &EncodeError{Key: bl.key, Reason: "value '" + s + "' is not a known category and no 'error' fallback is configured"}
		}
		idx = len(bl.categories)
	}
	return encodeIntRaw(w, int64(idx), bl.bits, "truncate")
}

func (bl *categoriesBlock) Decode(r *bitio.BitReader) (any, error) {
	bits, err := r.ReadBits(bl.bits)
	if err != nil {
		return nil, wrapTruncated(err)
	}
	idx := int(bits)
	if idx < len(bl.categories) {
		return bl.categories[idx], nil
	}
	if idx == len(bl.categories) && bl.hasError {
		return bl.errorName, nil
	}
	return "error", nil
}

// Random picks one of the configured categories uniformly; it never
// synthesizes the error fallback, since that path exists for values
// outside the configured set, not as a value to encode.
func (bl *categoriesBlock) Random() any {
	if len(bl.categories) == 0 {
		return ""
	}
	return bl.categories[rand.Intn(len(bl.categories))]
}
