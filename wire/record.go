package wire

import (
	"encoding/binary"

	"github.com/wippyai/offload/argument"
	"github.com/wippyai/offload/errors"
	"github.com/wippyai/offload/types"
)

const (
	offKind  = 0
	offType  = 4
	offDims  = 8
	offShape = 16
	offData  = offShape + 8*argument.MaxNDims

	// DataSize is the width of the payload field.
	DataSize = 8

	// RecordSize is the encoded size of one descriptor.
	RecordSize = offData + DataSize
)

var byteOrder = binary.LittleEndian

// Record is the decoded form of one descriptor as seen by the callee.
type Record struct {
	Shape [argument.MaxNDims]uint64
	Data  [DataSize]byte
	Dims  uint32
	Kind  argument.Kind
	Type  types.TypeID
}

// ByRef applies the descriptor storage rule to a decoded record.
func (r *Record) ByRef() bool {
	return r.Dims != 0 || r.Kind.IsOutput()
}

// Address returns the payload as an address. Meaningful only when ByRef.
func (r *Record) Address() uint64 {
	return byteOrder.Uint64(r.Data[:])
}

// Inline returns the inline value bytes of a value-mode record.
func (r *Record) Inline() ([]byte, error) {
	if r.ByRef() {
		return nil, errors.InvalidData(errors.PhaseDecode, "record holds a reference")
	}
	size := r.Shape[0]
	if r.Type != types.Void {
		n, err := argument.TypeSizer().Size(r.Type)
		if err != nil {
			return nil, err
		}
		size = uint64(n)
	}
	if size > DataSize {
		return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Type(r.Type.String()).
			Detail("inline size %d exceeds payload field", size).
			Build()
	}
	return r.Data[:size:size], nil
}

// SizeBytes returns the encoded size of r.
func (r *Record) SizeBytes() int {
	return RecordSize
}

// MarshalBytes writes r into dst, which must hold RecordSize bytes.
func (r *Record) MarshalBytes(dst []byte) {
	_ = dst[RecordSize-1]
	byteOrder.PutUint32(dst[offKind:], uint32(r.Kind))
	byteOrder.PutUint32(dst[offType:], uint32(r.Type))
	byteOrder.PutUint32(dst[offDims:], r.Dims)
	byteOrder.PutUint32(dst[offDims+4:], 0)
	for i, extent := range r.Shape {
		byteOrder.PutUint64(dst[offShape+8*i:], extent)
	}
	copy(dst[offData:offData+DataSize], r.Data[:])
}

// UnmarshalBytes reads r from src, which must hold RecordSize bytes.
// Kind and type are range checked in their 32-bit encoded form; r is left
// unchanged when either is out of range.
func (r *Record) UnmarshalBytes(src []byte) error {
	_ = src[RecordSize-1]
	kind := byteOrder.Uint32(src[offKind:])
	if kind > uint32(argument.KindInout) {
		return errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Value(kind).
			Detail("unknown kind %#x", kind).
			Build()
	}
	typ := byteOrder.Uint32(src[offType:])
	if typ > uint32(types.Invalid) {
		return errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Value(typ).
			Detail("unknown type %#x", typ).
			Build()
	}
	r.Kind = argument.Kind(kind)
	r.Type = types.TypeID(typ)
	r.Dims = byteOrder.Uint32(src[offDims:])
	for i := range r.Shape {
		r.Shape[i] = byteOrder.Uint64(src[offShape+8*i:])
	}
	copy(r.Data[:], src[offData:offData+DataSize])
	return nil
}
