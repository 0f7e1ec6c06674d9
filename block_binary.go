package spos

import (
	"fmt"
	"math/big"
	"math/rand"
	"regexp"
	"strings"

	"github.com/luxedo/spos/bitio"
)

// binaryBlock packs a "0b…"/"0x…" literal into bits bits, dropping
// low-order bits on overflow and left-padding with zeros on underflow.
// Supports arbitrary widths via math/big, since binary blocks are the one
// block type commonly used for wide payloads (keys, nonces).
type binaryBlock struct {
	common
	bits int
}

var binaryLiteralRe = regexp.MustCompile(`^(0b[01]+|0x[0-9a-fA-F]+)$`)

func compileBinaryBlock(b rawBlock) (Block, error) {
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
		return nil, &PayloadSpecError{Block: key, Reason: "binary block 'bits' must be positive"}
	}
	return &binaryBlock{common{key, alias, hasValue, value}, bits}, nil
}

func (bl *binaryBlock) Width() int { return bl.bits }

// literalBits parses a "0b…"/"0x…" string into its magnitude and its
// literal bit length (digit count for "0b", 4*digit count for "0x" —
// nibbles are never collapsed, resolving spec.md §9's third open
// question).
func literalBits(s string) (*big.Int, int, error) {
	if !binaryLiteralRe.MatchString(s) {
		return nil, 0, &EncodeError{Reason: fmt.Sprintf("value '%s' must be a '0b' or '0x' literal", s)}
	}
	digits := s[2:]
	var base int
	var literalLen int
	if strings.HasPrefix(s, "0b") {
		base = 2
		literalLen = len(digits)
	} else {
		base = 16
		literalLen = 4 * len(digits)
	}
	v, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return nil, 0, &EncodeError{Reason: fmt.Sprintf("value '%s' is not a valid literal", s)}
	}
	return v, literalLen, nil
}

func (bl *binaryBlock) Encode(w *bitio.BitWriter, value any) error {
	if bl.hasValue {
		value = bl.value
	}
	s, ok := value.(string)
	if !ok {
		return &EncodeError{Key: bl.key, Reason: "binary block requires a string value"}
	}
	v, literalLen, err := literalBits(s)
	if err != nil {
		return withKey(err, bl.key)
	}
	if literalLen > bl.bits {
		v = new(big.Int).Rsh(v, uint(literalLen-bl.bits))
	}
	return w.AppendBitsBig(v, bl.bits)
}

func (bl *binaryBlock) Decode(r *bitio.BitReader) (any, error) {
	v, err := r.ReadBitsBig(bl.bits)
	if err != nil {
		return nil, wrapTruncated(err)
	}
	return "0b" + padBinaryString(v, bl.bits), nil
}

// Random draws a literal of exactly bl.bits bits.
func (bl *binaryBlock) Random() any {
	var sb strings.Builder
	sb.WriteString("0b")
	for i := 0; i < bl.bits; i++ {
		sb.WriteByte('0' + byte(rand.Intn(2)))
	}
	return sb.String()
}

// padBinaryString formats v in base 2, left-padded with zeros to exactly
// width digits.
func padBinaryString(v *big.Int, width int) string {
	s := v.Text(2)
	if len(s) >= width {
		return s[len(s)-width:]
	}
	return strings.Repeat("0", width-len(s)) + s
}
