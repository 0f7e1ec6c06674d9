package spos

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeNestedKeyRoundTrip(t *testing.T) {
	spec, err := CompileSpec(map[string]any{
		"name": "nested", "version": 1,
		"body": []any{
			map[string]any{"type": "integer", "key": "nested.value", "bits": 8},
		},
	})
	require.NoError(t, err)

	out, err := Encode(map[string]any{"nested": map[string]any{"value": 255}}, spec, "bin")
	require.NoError(t, err)
	require.Equal(t, "0b11111111", out)

	decoded, err := Decode(out, spec)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"nested": map[string]any{"value": int64(255)}}, decoded.Body)
}

func TestEncodeVersionedCrcMessageStructure(t *testing.T) {
	spec, err := CompileSpec(map[string]any{
		"name": "beacon", "version": 1,
		"meta": map[string]any{"encode_version": true, "version_bits": 4, "crc8": true},
		"body": []any{},
	})
	require.NoError(t, err)

	out, err := Encode(map[string]any{}, spec, "bytes")
	require.NoError(t, err)
	msg, ok := out.([]byte)
	require.True(t, ok)
	require.Len(t, msg, 2)
	require.Equal(t, byte(0b00010000), msg[0]) // version=1 in the high 4 bits, zero pad below
	require.Equal(t, crc8([]byte{msg[0]}), msg[1])

	decoded, err := Decode(msg, spec)
	require.NoError(t, err)
	require.Equal(t, uint64(1), decoded.Meta.Version)
}

func TestDecodeDetectsCrcMismatch(t *testing.T) {
	spec, err := CompileSpec(map[string]any{
		"name": "beacon", "version": 1,
		"meta": map[string]any{"encode_version": true, "version_bits": 4, "crc8": true},
		"body": []any{},
	})
	require.NoError(t, err)

	out, err := Encode(map[string]any{}, spec, "bytes")
	require.NoError(t, err)
	msg := out.([]byte)
	msg[1] ^= 0xff // corrupt the trailer

	_, err = Decode(msg, spec)
	require.True(t, errors.Is(err, CrcMismatch))
}

func TestDecodeDetectsTruncatedMessage(t *testing.T) {
	spec, err := CompileSpec(map[string]any{
		"name": "s", "version": 1,
		"body": []any{
			map[string]any{"type": "integer", "key": "x", "bits": 16},
		},
	})
	require.NoError(t, err)
	_, err = Decode([]byte{0x01}, spec)
	require.True(t, errors.Is(err, TruncatedMessage))
}

func TestEncodeDynamicArrayPrefixAndElements(t *testing.T) {
	spec, err := CompileSpec(map[string]any{
		"name": "arr", "version": 1,
		"body": []any{
			map[string]any{
				"type": "array", "key": "arr", "length": 4,
				"blocks": map[string]any{"type": "integer", "bits": 4},
			},
		},
	})
	require.NoError(t, err)

	out, err := Encode(map[string]any{"arr": []any{1, 2, 3}}, spec, "bin")
	require.NoError(t, err)
	require.Equal(t, "0b011000100100011", out)

	decoded, err := Decode(out, spec)
	require.NoError(t, err)
	require.Equal(t, []any{int64(1), int64(2), int64(3)}, decoded.Body["arr"])
}

func TestEncodeDecodeStaticHeaderConstant(t *testing.T) {
	spec, err := CompileSpec(map[string]any{
		"name": "s", "version": 1,
		"meta": map[string]any{
			"header": []any{
				map[string]any{"key": "proto", "value": "spos/1"},
			},
		},
		"body": []any{
			map[string]any{"type": "integer", "key": "x", "bits": 8},
		},
	})
	require.NoError(t, err)

	out, err := Encode(map[string]any{"x": 7}, spec, "bytes")
	require.NoError(t, err)
	require.Len(t, out.([]byte), 1) // the static header contributes no bits

	decoded, err := Decode(out, spec)
	require.NoError(t, err)
	require.Len(t, decoded.Meta.Header, 1)
	require.Equal(t, "proto", decoded.Meta.Header[0].Key)
	require.Equal(t, "spos/1", decoded.Meta.Header[0].Value)
	require.EqualValues(t, 7, decoded.Body["x"])
}

func TestEncodeRejectsMissingKeyWithoutStaticValue(t *testing.T) {
	spec, err := CompileSpec(map[string]any{
		"name": "s", "version": 1,
		"body": []any{
			map[string]any{"type": "integer", "key": "x", "bits": 8},
		},
	})
	require.NoError(t, err)
	_, err = Encode(map[string]any{}, spec, "bytes")
	require.Error(t, err)
}
