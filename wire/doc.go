// Package wire encodes a Signature as a flat sequence of fixed-size
// little-endian records that a callee in another address space can read.
//
// Each record is RecordSize bytes:
//
//	offset  size  field
//	0       4     kind
//	4       4     type
//	8       4     dims
//	12      4     reserved (zero)
//	16      32    shape, MaxNDims u64 extents
//	48      8     data: inline value bytes, or a translated address
//
// A signature of arity n occupies n+1 records; the last one has kind 0.
// Reference payloads are host addresses and must be rewritten by a
// Translator when the receiver has its own address space.
package wire
