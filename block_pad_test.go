package spos

import (
	"testing"

	"github.com/luxedo/spos/bitio"
	"github.com/stretchr/testify/require"
)

func TestPadBlockWritesZerosAndDiscardsOnDecode(t *testing.T) {
	b, err := Compile(map[string]any{"type": "pad", "key": "reserved", "bits": 5})
	require.NoError(t, err)
	require.Equal(t, 5, b.Width())

	w := bitio.NewWriter()
	require.NoError(t, w.AppendBits(0b11111, 5))
	require.NoError(t, b.Encode(w, nil))
	require.Equal(t, 10, w.Len())
	require.Equal(t, byte(0b11111000), w.Bytes()[0])

	r := bitio.NewReader(w.Bytes(), w.Len())
	_, err = r.ReadBits(5)
	require.NoError(t, err)
	v, err := b.Decode(r)
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestPadBlockRejectsNonPositiveBits(t *testing.T) {
	_, err := Compile(map[string]any{"type": "pad", "key": "reserved", "bits": 0})
	require.Error(t, err)
}
