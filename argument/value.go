package argument

import (
	"unsafe"

	"github.com/wippyai/offload/errors"
	"github.com/wippyai/offload/types"
)

// Value returns the address of the argument's payload: the referenced
// buffer in reference mode, the descriptor's inline bytes otherwise.
// The descriptor must have been constructed.
func Value(d *Descriptor) unsafe.Pointer {
	if d.ByRef() {
		return d.ref
	}
	return unsafe.Pointer(&d.data[0])
}

// SetValue stores value as the payload. In reference mode the address
// itself is kept; otherwise the scalar's bytes are copied inline, or
// zeroed when value is nil. A failed size lookup leaves d unchanged.
func SetValue(d *Descriptor, value unsafe.Pointer) error {
	if d.ByRef() {
		d.ref = value
		return nil
	}

	size, err := inlineSize(d)
	if err != nil {
		return err
	}
	if value != nil {
		copy(d.data[:size], unsafe.Slice((*byte)(value), size))
	} else {
		clear(d.data[:size])
	}
	return nil
}

// Bytes returns the payload as a byte slice aliasing its storage. A
// reference without a known extent, or a nil reference, yields nil.
func Bytes(d *Descriptor) []byte {
	if !d.ByRef() {
		size, err := inlineSize(d)
		if err != nil {
			return nil
		}
		return d.data[:size:size]
	}
	if d.ref == nil {
		return nil
	}
	n, err := d.DataSize()
	if err != nil || n == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(d.ref), n)
}

func inlineSize(d *Descriptor) (int, error) {
	size := d.shape[0]
	if d.typ != types.Void {
		var err error
		size, err = sizer.Size(d.typ)
		if err != nil {
			return 0, errors.New(errors.PhaseValue, errors.KindUnknownType).
				Type(d.typ.String()).
				Cause(err).
				Detail("inline value size lookup").
				Build()
		}
	}
	if size > InlineSize {
		return 0, errors.New(errors.PhaseValue, errors.KindInvalidArgument).
			Type(d.typ.String()).
			Detail("%d-byte scalar exceeds inline capacity %d", size, InlineSize).
			Build()
	}
	return size, nil
}
