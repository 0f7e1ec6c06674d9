package spos

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/luxedo/spos/bitio"
)

// formatOutput renders w's bit stream as the requested wire
// representation. "bin" and "hex" trim/pad the textual digit count to
// their own alignment (1 bit, 4 bits); "bytes" is the raw byte-padded
// form that BitWriter.Bytes already produces.
func formatOutput(w *bitio.BitWriter, output string) (any, error) {
	switch output {
	case "bin":
		return binString(w.Bytes(), w.Len()), nil
	case "hex":
		return hexString(w.Bytes(), w.Len()), nil
	case "bytes", "":
		return w.Bytes(), nil
	default:
		return nil, fmt.Errorf("spos: unknown output format %q", output)
	}
}

func binString(buf []byte, bitLen int) string {
	var sb strings.Builder
	sb.WriteString("0b")
	for i := 0; i < bitLen; i++ {
		byteIdx := i / 8
		bitOff := i % 8
		bit := (buf[byteIdx] >> uint(7-bitOff)) & 1
		if bit == 1 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

func hexString(buf []byte, bitLen int) string {
	nibbles := (bitLen + 3) / 4
	var sb strings.Builder
	sb.WriteString("0x")
	for i := 0; i < nibbles; i++ {
		bitStart := i * 4
		byteIdx := bitStart / 8
		var v byte
		if bitStart%8 == 0 {
			v = buf[byteIdx] >> 4
		} else {
			v = buf[byteIdx] & 0x0f
		}
		sb.WriteString(strconv.FormatUint(uint64(v), 16))
	}
	return sb.String()
}

// parseMessage normalises any of the three wire representations into a
// BitReader carrying the message's exact bit length: a "0b..." string
// contributes exactly its digit count, "0x..." contributes 4 bits per
// hex digit, and a []byte contributes 8 bits per byte.
func parseMessage(message any) (*bitio.BitReader, error) {
	switch m := message.(type) {
	case string:
		switch {
		case strings.HasPrefix(m, "0b"):
			return parseBin(m[2:])
		case strings.HasPrefix(m, "0x"):
			return parseHex(m[2:])
		default:
			return nil, fmt.Errorf("spos: message string must be prefixed with 0b or 0x")
		}
	case []byte:
		return bitio.NewReader(m, len(m)*8), nil
	default:
		return nil, fmt.Errorf("spos: unsupported message type %T", message)
	}
}

func parseBin(digits string) (*bitio.BitReader, error) {
	bitLen := len(digits)
	buf := make([]byte, (bitLen+7)/8)
	for i, c := range digits {
		var bit byte
		switch c {
		case '0':
			bit = 0
		case '1':
			bit = 1
		default:
			return nil, fmt.Errorf("spos: invalid bin digit %q", c)
		}
		buf[i/8] |= bit << uint(7-i%8)
	}
	return bitio.NewReader(buf, bitLen), nil
}

func parseHex(digits string) (*bitio.BitReader, error) {
	bitLen := len(digits) * 4
	buf := make([]byte, (bitLen+7)/8)
	for i, c := range digits {
		v, err := strconv.ParseUint(string(c), 16, 8)
		if err != nil {
			return nil, fmt.Errorf("spos: invalid hex digit %q", c)
		}
		bitStart := i * 4
		byteIdx := bitStart / 8
		if bitStart%8 == 0 {
			buf[byteIdx] |= byte(v) << 4
		} else {
			buf[byteIdx] |= byte(v)
		}
	}
	return bitio.NewReader(buf, bitLen), nil
}
