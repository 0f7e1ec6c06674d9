package spos

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCrc8KnownVector(t *testing.T) {
	// CRC-8/SMBUS (poly 0x07, init 0x00, no reflect, no xorout) of "123456789".
	assert.Equal(t, byte(0xf4), crc8([]byte("123456789")))
}

func TestCrc8EmptyInput(t *testing.T) {
	assert.Equal(t, byte(0x00), crc8(nil))
}

func TestCrc8DetectsSingleBitFlip(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04}
	base := crc8(data)
	flipped := append([]byte{}, data...)
	flipped[2] ^= 0x08
	assert.NotEqual(t, base, crc8(flipped))
}
