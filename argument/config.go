package argument

import "unsafe"

const (
	// MaxNDims bounds the dimensionality of an array argument.
	MaxNDims = 4

	// MaxNArgs bounds the arity of a call.
	MaxNArgs = 16

	// InlineSize is the capacity of a descriptor's inline value buffer.
	InlineSize = int(unsafe.Sizeof(uintptr(0)))
)
