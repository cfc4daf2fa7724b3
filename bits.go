// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package moore

// Bits is a fixed width bit vector. Bit i lives in word i/64, at bit i%64 of
// that word (least significant bit first).
//
// Transition and output functions receive their buffers as Bits and must use
// this layout to pack and unpack values.
//
type Bits []uint64

// Words returns the number of 64 bits words needed to store width bits.
//
func Words(width int) int {
	if width <= 0 {
		return 0
	}
	return (width + 63) / 64
}

// NewBits returns a zeroed bit vector large enough for width bits.
//
func NewBits(width int) Bits {
	return make(Bits, Words(width))
}

// Get returns the state of bit i.
//
func (b Bits) Get(i int) bool {
	return b[i>>6]&(1<<uint(i&63)) != 0
}

// Set sets bit i to v.
//
func (b Bits) Set(i int, v bool) {
	if v {
		b[i>>6] |= 1 << uint(i&63)
	} else {
		b[i>>6] &^= 1 << uint(i&63)
	}
}

// Uint64 returns count bits starting at bit off as an uint64. Bit off is the
// lsb. count must be at most 64.
//
func (b Bits) Uint64(off, count int) uint64 {
	var v uint64
	for bit := 0; bit < count; bit++ {
		if b.Get(off + bit) {
			v |= 1 << uint(bit)
		}
	}
	return v
}

// SetUint64 sets count bits starting at bit off to the count low bits of v.
//
func (b Bits) SetUint64(off, count int, v uint64) {
	for bit := 0; bit < count; bit++ {
		b.Set(off+bit, v&(1<<uint(bit)) != 0)
	}
}

// Copy returns a copy of b.
//
func (b Bits) Copy() Bits {
	if b == nil {
		return nil
	}
	c := make(Bits, len(b))
	copy(c, b)
	return c
}

// Clear sets all bits to 0.
//
func (b Bits) Clear() {
	for i := range b {
		b[i] = 0
	}
}
