package bitmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBytesNeeded(t *testing.T) {
	assert.Equal(t, 0, BytesNeeded(0))
	assert.Equal(t, 1, BytesNeeded(1))
	assert.Equal(t, 1, BytesNeeded(8))
	assert.Equal(t, 2, BytesNeeded(9))
}

func TestSetGetRoundTrip(t *testing.T) {
	region := make([]byte, BytesNeeded(20))
	b := New(region, 20)
	b.Clear()

	for _, i := range []int{0, 1, 7, 8, 15, 19} {
		assert.False(t, b.Get(i))
		b.Set(i, true)
		assert.True(t, b.Get(i))
	}
	b.Set(7, false)
	assert.False(t, b.Get(7))
	assert.True(t, b.Get(8))
}

func TestBitOrderIsByteZeroBitZeroFirst(t *testing.T) {
	region := make([]byte, 1)
	b := New(region, 8)
	b.Set(0, true)
	assert.Equal(t, byte(0x01), region[0])
	b.Set(1, true)
	assert.Equal(t, byte(0x03), region[0])
}

func TestSetRange(t *testing.T) {
	region := make([]byte, BytesNeeded(16))
	b := New(region, 16)
	b.SetRange(4, 8, true)
	for i := 0; i < 16; i++ {
		assert.Equal(t, i >= 4 && i < 12, b.Get(i), "bit %d", i)
	}
}

func TestShiftTailForward(t *testing.T) {
	region := make([]byte, BytesNeeded(8))
	b := New(region, 8)
	for i := 0; i < 8; i++ {
		b.Set(i, i%2 == 0) // 1 0 1 0 1 0 1 0
	}

	b.ShiftTailForward(2, 2)
	// bits [4,8) slide down to [2,6); tail [6,8) zeroed.
	want := []bool{true, false, true, false, true, false, false, false}
	for i, w := range want {
		assert.Equal(t, w, b.Get(i), "bit %d", i)
	}
}

func TestShiftTailForwardNoopOnZeroDistance(t *testing.T) {
	region := []byte{0xAB}
	b := New(region, 8)
	b.ShiftTailForward(3, 0)
	assert.Equal(t, byte(0xAB), region[0])
}
