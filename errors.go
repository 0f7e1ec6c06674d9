package spos

import (
	"errors"

	"github.com/luxedo/spos/bitio"
)

// Sentinel errors for conditions that carry no useful extra detail beyond
// their kind. Callers distinguish these with errors.Is.
var (
	// CrcMismatch is returned by Decode when the trailing CRC-8 byte does
	// not match the CRC-8 recomputed over the preceding bits.
	CrcMismatch = errors.New("spos: crc8 mismatch")

	// TruncatedMessage is returned when a read would consume more bits
	// than the message contains.
	TruncatedMessage = errors.New("spos: truncated message")
)

// PayloadSpecError reports a malformed payload specification: missing or
// forbidden keys, wrong value types, non-ascending steps, duplicate
// categories, duplicate block keys, or a version that doesn't fit in
// version_bits.
type PayloadSpecError struct {
	Block  string // block key or spec name the error concerns, empty if spec-wide
	Reason string
}

func (e *PayloadSpecError) Error() string {
	if e.Block == "" {
		return "spos: invalid payload spec: " + e.Reason
	}
	return "spos: invalid payload spec at block '" + e.Block + "': " + e.Reason
}

// SpecsVersionError reports that a DecodeFromSpecs pool failed its
// consistency checks (mismatched name, version_bits, encode_version, or
// duplicate versions).
type SpecsVersionError struct {
	Reason string
}

func (e *SpecsVersionError) Error() string {
	return "spos: inconsistent spec pool: " + e.Reason
}

// EncodeError reports an input value outside a non-saturating domain: a
// dynamic array longer than its spec, an unknown category with no
// configured error name, a missing required key with no static value, or
// a non-string value for a string block.
type EncodeError struct {
	Key    string
	Reason string
}

func (e *EncodeError) Error() string {
	if e.Key == "" {
		return "spos: encode error: " + e.Reason
	}
	return "spos: encode error at key '" + e.Key + "': " + e.Reason
}

// DecodeError reports a decoded value that is not representable. The
// block decoders in this package do not return it: every 6-bit string
// index maps to a character, a message shorter than the spec requires
// yields TruncatedMessage, and binary literal prefixes are checked at
// encode time as an EncodeError.
type DecodeError struct {
	Key    string
	Reason string
}

func (e *DecodeError) Error() string {
	if e.Key == "" {
		return "spos: decode error: " + e.Reason
	}
	return "spos: decode error at key '" + e.Key + "': " + e.Reason
}

// withKey attaches key to an *EncodeError that doesn't carry one yet, so
// nested blocks (array elements, object members) can report which field
// failed without every leaf encoder needing to know its own key.
func withKey(err error, key string) error {
	if err == nil || key == "" {
		return err
	}
	if ee, ok := err.(*EncodeError); ok && ee.Key == "" {
		ee.Key = key
		return ee
	}
	if de, ok := err.(*DecodeError); ok && de.Key == "" {
		de.Key = key
		return de
	}
	return err
}

// wrapTruncated converts a bitio.ErrTruncated into the package-level
// TruncatedMessage sentinel so callers can use errors.Is uniformly.
func wrapTruncated(err error) error {
	if errors.Is(err, bitio.ErrTruncated) {
		return TruncatedMessage
	}
	return err
}
