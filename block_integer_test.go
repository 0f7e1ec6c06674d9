package spos

import (
	"testing"

	"github.com/luxedo/spos/bitio"
	"github.com/stretchr/testify/require"
)

func encodeDecodeInt(t *testing.T, b Block, in int64) int64 {
	w := bitio.NewWriter()
	require.NoError(t, b.Encode(w, in))
	require.Equal(t, b.Width(), w.Len())
	r := bitio.NewReader(w.Bytes(), w.Len())
	v, err := b.Decode(r)
	require.NoError(t, err)
	got, ok := v.(int64)
	require.True(t, ok)
	return got
}

func TestIntegerBlockSaturatesUnderTruncateMode(t *testing.T) {
	b, err := Compile(map[string]any{
		"type": "integer", "key": "x", "bits": 4, "offset": 10, "mode": "truncate",
	})
	require.NoError(t, err)

	// values < offset saturate to offset
	require.EqualValues(t, 10, encodeDecodeInt(t, b, 0))
	require.EqualValues(t, 10, encodeDecodeInt(t, b, -100))

	// values > offset + 2^bits - 1 saturate to that max
	require.EqualValues(t, 25, encodeDecodeInt(t, b, 1000)) // 10 + 15

	// values in range round-trip exactly
	require.EqualValues(t, 17, encodeDecodeInt(t, b, 17))
}

func TestIntegerBlockRemainderMode(t *testing.T) {
	b, err := Compile(map[string]any{
		"type": "integer", "key": "x", "bits": 4, "mode": "remainder",
	})
	require.NoError(t, err)
	require.EqualValues(t, 0, encodeDecodeInt(t, b, 16))
	require.EqualValues(t, 15, encodeDecodeInt(t, b, -1))
	require.EqualValues(t, 1, encodeDecodeInt(t, b, 17))
}

func TestIntegerBlockRejectsOutOfRangeBits(t *testing.T) {
	_, err := Compile(map[string]any{"type": "integer", "key": "x", "bits": 0})
	require.Error(t, err)
	_, err = Compile(map[string]any{"type": "integer", "key": "x", "bits": 65})
	require.Error(t, err)
}

func TestIntegerBlockRejectsBadMode(t *testing.T) {
	_, err := Compile(map[string]any{"type": "integer", "key": "x", "bits": 4, "mode": "saturate"})
	require.Error(t, err)
}
