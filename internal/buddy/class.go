package buddy

import "math/bits"

// Class is a power-of-two size class. A slot of class k has edge 1<<k.
type Class int

// SizeToLog2 returns the smallest class whose edge is at least size.
// Sizes of 1 or less map to class 0.
func SizeToLog2(size int) Class {
	if size <= 1 {
		return 0
	}
	return Class(bits.Len(uint(size - 1)))
}

// Log2ToSize returns the edge length of class k.
func Log2ToSize(k Class) int {
	return 1 << k
}

// Size returns the edge length of the class.
func (c Class) Size() int {
	return Log2ToSize(c)
}
