package spos

import (
	"testing"

	"github.com/luxedo/spos/bitio"
	"github.com/stretchr/testify/require"
)

func TestBinaryBlockRoundTripHexAndBin(t *testing.T) {
	b, err := Compile(map[string]any{"type": "binary", "key": "x", "bits": 16})
	require.NoError(t, err)
	require.Equal(t, 16, b.Width())

	w := bitio.NewWriter()
	require.NoError(t, b.Encode(w, "0xabcd"))
	r := bitio.NewReader(w.Bytes(), w.Len())
	v, err := b.Decode(r)
	require.NoError(t, err)
	require.Equal(t, "0b1010101111001101", v)

	w2 := bitio.NewWriter()
	require.NoError(t, b.Encode(w2, "0b1010101111001101"))
	r2 := bitio.NewReader(w2.Bytes(), w2.Len())
	v2, err := b.Decode(r2)
	require.NoError(t, err)
	require.Equal(t, v, v2)
}

func TestBinaryBlockUnderflowLeftPadsWithZeros(t *testing.T) {
	b, err := Compile(map[string]any{"type": "binary", "key": "x", "bits": 8})
	require.NoError(t, err)
	w := bitio.NewWriter()
	require.NoError(t, b.Encode(w, "0b101"))
	r := bitio.NewReader(w.Bytes(), w.Len())
	v, err := b.Decode(r)
	require.NoError(t, err)
	require.Equal(t, "0b00000101", v)
}

func TestBinaryBlockOverflowDropsLowOrderBits(t *testing.T) {
	b, err := Compile(map[string]any{"type": "binary", "key": "x", "bits": 4})
	require.NoError(t, err)
	w := bitio.NewWriter()
	// 0b101011 (6 bits) truncated to the top 4 bits: 0b1010
	require.NoError(t, b.Encode(w, "0b101011"))
	r := bitio.NewReader(w.Bytes(), w.Len())
	v, err := b.Decode(r)
	require.NoError(t, err)
	require.Equal(t, "0b1010", v)
}

func TestBinaryBlockRejectsNonLiteral(t *testing.T) {
	b, err := Compile(map[string]any{"type": "binary", "key": "x", "bits": 8})
	require.NoError(t, err)
	w := bitio.NewWriter()
	require.Error(t, b.Encode(w, "not-a-literal"))
	require.Error(t, b.Encode(w, 42))
}
