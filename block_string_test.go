package spos

import (
	"testing"

	"github.com/luxedo/spos/bitio"
	"github.com/stretchr/testify/require"
)

func TestStringBlockRoundTrip(t *testing.T) {
	b, err := Compile(map[string]any{"type": "string", "key": "x", "length": 5})
	require.NoError(t, err)
	require.Equal(t, 30, b.Width())

	w := bitio.NewWriter()
	require.NoError(t, b.Encode(w, "Ab0+/"))
	r := bitio.NewReader(w.Bytes(), w.Len())
	v, err := b.Decode(r)
	require.NoError(t, err)
	require.Equal(t, "Ab0+/", v)
}

func TestStringBlockPadsShortValuesWithSlash(t *testing.T) {
	b, err := Compile(map[string]any{"type": "string", "key": "x", "length": 5})
	require.NoError(t, err)
	w := bitio.NewWriter()
	require.NoError(t, b.Encode(w, "hi"))
	r := bitio.NewReader(w.Bytes(), w.Len())
	v, err := b.Decode(r)
	require.NoError(t, err)
	require.Equal(t, "hi///", v)
}

func TestStringBlockTruncatesLongValues(t *testing.T) {
	b, err := Compile(map[string]any{"type": "string", "key": "x", "length": 3})
	require.NoError(t, err)
	w := bitio.NewWriter()
	require.NoError(t, b.Encode(w, "hello"))
	r := bitio.NewReader(w.Bytes(), w.Len())
	v, err := b.Decode(r)
	require.NoError(t, err)
	require.Equal(t, "hel", v)
}

func TestStringBlockSpaceAndUnknownCharMapping(t *testing.T) {
	b, err := Compile(map[string]any{"type": "string", "key": "x", "length": 2})
	require.NoError(t, err)
	w := bitio.NewWriter()
	require.NoError(t, b.Encode(w, " ~")) // space, then a char outside the alphabet
	r := bitio.NewReader(w.Bytes(), w.Len())
	v, err := b.Decode(r)
	require.NoError(t, err)
	require.Equal(t, byte('+'), base64Alphabet[62])
	require.Equal(t, byte('/'), base64Alphabet[63])
	require.Equal(t, "+/", v)
}

func TestStringBlockCustomAlphabeth(t *testing.T) {
	b, err := Compile(map[string]any{
		"type": "string", "key": "x", "length": 1,
		"custom_alphabeth": map[string]any{"0": "!"},
	})
	require.NoError(t, err)
	w := bitio.NewWriter()
	require.NoError(t, b.Encode(w, "!"))
	r := bitio.NewReader(w.Bytes(), w.Len())
	v, err := b.Decode(r)
	require.NoError(t, err)
	require.Equal(t, "!", v)
}
