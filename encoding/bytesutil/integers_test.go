package bytesutil_test

import (
	"testing"

	"github.com/prysmaticlabs/eraauth/encoding/bytesutil"
	"github.com/stretchr/testify/assert"
)

func TestToBytes(t *testing.T) {
	tests := []struct {
		a uint64
		b []byte
	}{
		{0, []byte{0}},
		{255, []byte{255}},
		{256, []byte{0, 1}},
		{65535, []byte{255, 255, 0}},
		{16777217, []byte{1, 0, 0, 1}},
		{4294967297, []byte{1, 0, 0, 0, 1, 0, 0, 0}},
		{1, []byte{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}},
	}
	for _, tt := range tests {
		b := bytesutil.ToBytes(tt.a, len(tt.b))
		assert.Equal(t, tt.b, b)
	}
}

func TestBytes8(t *testing.T) {
	tests := []struct {
		a uint64
		b []byte
	}{
		{0, []byte{0, 0, 0, 0, 0, 0, 0, 0}},
		{16777216, []byte{0, 0, 0, 1, 0, 0, 0, 0}},
		{9223372036854775807, []byte{255, 255, 255, 255, 255, 255, 255, 127}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.b, bytesutil.Bytes8(tt.a))
	}
}

func TestBytes32(t *testing.T) {
	b := bytesutil.Bytes32(4294967297)
	assert.Equal(t, 32, len(b))
	assert.Equal(t, []byte{1, 0, 0, 0, 1, 0, 0, 0}, b[:8])
	assert.Equal(t, make([]byte, 24), b[8:])
}

func TestToBytes32(t *testing.T) {
	assert.Equal(t, [32]byte{1, 2, 3}, bytesutil.ToBytes32([]byte{1, 2, 3}))
	long := make([]byte, 40)
	long[31] = 9
	long[32] = 10
	got := bytesutil.ToBytes32(long)
	assert.Equal(t, byte(9), got[31])
}

func TestReverseByteOrder(t *testing.T) {
	input := []byte{1, 2, 3, 4}
	assert.Equal(t, []byte{4, 3, 2, 1}, bytesutil.ReverseByteOrder(input))
	assert.Equal(t, []byte{1, 2, 3, 4}, input, "input was mutated")
}

func TestSafeCopyRoots(t *testing.T) {
	assert.Nil(t, bytesutil.SafeCopyRoots(nil))
	roots := [][32]byte{{1}, {2}}
	cp := bytesutil.SafeCopyRoots(roots)
	cp[0][0] = 7
	assert.Equal(t, byte(1), roots[0][0])
	assert.Nil(t, bytesutil.SafeCopyBytes(nil))
}

func TestRootsToHashes(t *testing.T) {
	assert.Nil(t, bytesutil.RootsToHashes(nil))
	assert.Nil(t, bytesutil.HashesToRoots(nil))
	roots := [][32]byte{{1}, {2, 3}}
	hashes := bytesutil.RootsToHashes(roots)
	assert.Equal(t, "0x0203000000000000000000000000000000000000000000000000000000000000", hashes[1].Hex())
	assert.Equal(t, roots, bytesutil.HashesToRoots(hashes))
}
