// Package types defines the data type identifiers carried by argument
// descriptors and the size lookup used to lay out inline values.
//
// # Key Types
//
//   - TypeID: element type of an argument (char, i8 ... c64)
//   - Void: opaque bytes whose size is tracked by the descriptor itself
//   - Invalid: sentinel for placeholder and terminator slots
//
// Identifiers are ordered so that every type below Invalid is valid.
package types
