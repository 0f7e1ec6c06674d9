package spos

import (
	"math/rand"
	"strings"

	"github.com/luxedo/spos/bitio"
)

const base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// stringBlock maps each character to a 6-bit index in the standard
// base-64 alphabet, optionally overridden per-index by custom_alphabeth.
type stringBlock struct {
	common
	length          int
	customAlphabeth map[int]rune // index -> char, overrides both directions
	customReverse   map[rune]int // char -> index, derived from customAlphabeth
}

func compileStringBlock(b rawBlock) (Block, error) {
	if err := b.checkAllowedKeys("length", "custom_alphabeth"); err != nil {
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
	if length <= 0 {
		return nil, &PayloadSpecError{Block: key, Reason: "string block 'length' must be positive"}
	}
	custom := map[int]rune{}
	customRev := map[rune]int{}
	if raw, ok := b["custom_alphabeth"]; ok {
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, &PayloadSpecError{Block: key, Reason: "'custom_alphabeth' must be a map of index to character"}
		}
		for k, v := range m {
			idx, convErr := parseMapIntKey(k)
			if convErr != nil {
				return nil, &PayloadSpecError{Block: key, Reason: "custom_alphabeth keys must be integer indexes"}
			}
			s, ok := v.(string)
			if !ok || len([]rune(s)) != 1 {
				return nil, &PayloadSpecError{Block: key, Reason: "custom_alphabeth values must be single characters"}
			}
			ch := []rune(s)[0]
			custom[idx] = ch
			customRev[ch] = idx
		}
	}
	return &stringBlock{common{key, alias, hasValue, value}, length, custom, customRev}, nil
}

func parseMapIntKey(s string) (int, error) {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, &PayloadSpecError{Reason: "not an integer"}
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}

func (bl *stringBlock) Width() int { return 6 * bl.length }

func (bl *stringBlock) charIndex(ch rune) int {
	if idx, ok := bl.customReverse[ch]; ok {
		return idx
	}
	if ch == ' ' {
		return 62
	}
	if idx := strings.IndexRune(base64Alphabet, ch); idx >= 0 {
		return idx
	}
	return 63
}

func (bl *stringBlock) indexChar(idx int) rune {
	if ch, ok := bl.customAlphabeth[idx]; ok {
		return ch
	}
	return rune(base64Alphabet[idx])
}

// pad right-pads or truncates value to exactly bl.length runes, per
// spec.md §4.2 ("right-trimmed or right-padded with '/' to exactly
// length characters").
func (bl *stringBlock) pad(value string) []rune {
	runes := []rune(value)
	if len(runes) > bl.length {
		return runes[:bl.length]
	}
	out := make([]rune, bl.length)
	copy(out, runes)
	for i := len(runes); i < bl.length; i++ {
		out[i] = '/'
	}
	return out
}

func (bl *stringBlock) Encode(w *bitio.BitWriter, value any) error {
	if bl.hasValue {
		value = bl.value
	}
	s, ok := value.(string)
	if !ok {
		return &EncodeError{Key: bl.key, Reason: "string block requires a string value"}
	}
	for _, ch := range bl.pad(s) {
		if err := w.AppendBits(uint64(bl.charIndex(ch)), 6); err != nil {
			return err
		}
	}
	return nil
}

func (bl *stringBlock) Decode(r *bitio.BitReader) (any, error) {
	var sb strings.Builder
	for i := 0; i < bl.length; i++ {
		bits, err := r.ReadBits(6)
		if err != nil {
			return nil, wrapTruncated(err)
		}
		sb.WriteRune(bl.indexChar(int(bits)))
	}
	return sb.String(), nil
}

// Random draws bl.length characters uniformly from the base-64 alphabet.
func (bl *stringBlock) Random() any {
	var sb strings.Builder
	for i := 0; i < bl.length; i++ {
		sb.WriteRune(bl.indexChar(rand.Intn(64)))
	}
	return sb.String()
}
