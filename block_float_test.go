package spos

import (
	"testing"

	"github.com/luxedo/spos/bitio"
	"github.com/stretchr/testify/require"
)

func encodeDecodeFloat(t *testing.T, b Block, in float64) float64 {
	w := bitio.NewWriter()
	require.NoError(t, b.Encode(w, in))
	require.Equal(t, b.Width(), w.Len())
	r := bitio.NewReader(w.Bytes(), w.Len())
	v, err := b.Decode(r)
	require.NoError(t, err)
	got, ok := v.(float64)
	require.True(t, ok)
	return got
}

func TestFloatBlockQuantizationLaw(t *testing.T) {
	b, err := Compile(map[string]any{
		"type": "float", "key": "x", "bits": 8, "lower": 0, "upper": 255,
	})
	require.NoError(t, err)

	// with a 255-unit range over 2^8-1=255 levels, integers round-trip exactly.
	require.InDelta(t, 0, encodeDecodeFloat(t, b, 0), 1e-9)
	require.InDelta(t, 255, encodeDecodeFloat(t, b, 255), 1e-9)
	require.InDelta(t, 128, encodeDecodeFloat(t, b, 128), 1e-9)
}

func TestFloatBlockClampsOutOfRange(t *testing.T) {
	b, err := Compile(map[string]any{
		"type": "float", "key": "x", "bits": 8, "lower": 0, "upper": 100,
	})
	require.NoError(t, err)
	require.InDelta(t, 0, encodeDecodeFloat(t, b, -500), 1e-6)
	require.InDelta(t, 100, encodeDecodeFloat(t, b, 1e6), 1e-6)
}

func TestFloatBlockApproximationModes(t *testing.T) {
	// bits=1 over [0,2] gives two levels: 0 and 2. A value of 1.0 sits
	// exactly at the boundary between them (level 0.5 before rounding).
	floor, err := Compile(map[string]any{
		"type": "float", "key": "x", "bits": 1, "lower": 0, "upper": 2, "approximation": "floor",
	})
	require.NoError(t, err)
	require.InDelta(t, 0, encodeDecodeFloat(t, floor, 1.0), 1e-9)

	ceil, err := Compile(map[string]any{
		"type": "float", "key": "x", "bits": 1, "lower": 0, "upper": 2, "approximation": "ceil",
	})
	require.NoError(t, err)
	require.InDelta(t, 2, encodeDecodeFloat(t, ceil, 1.0), 1e-9)
}

func TestFloatBlockRejectsEqualBounds(t *testing.T) {
	_, err := Compile(map[string]any{"type": "float", "key": "x", "bits": 4, "lower": 5, "upper": 5})
	require.Error(t, err)
}
