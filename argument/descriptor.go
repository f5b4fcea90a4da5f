package argument

import (
	"unsafe"

	"github.com/wippyai/offload/errors"
	"github.com/wippyai/offload/types"
)

// Descriptor describes one call argument. The zero value reads as a
// terminator: kind invalid, type invalid.
//
// Copying a Descriptor by value is safe; a copied value-mode descriptor
// carries its own inline bytes.
type Descriptor struct {
	ref   unsafe.Pointer
	shape [MaxNDims]int
	data  [InlineSize]byte
	dims  int
	kind  Kind
	typ   types.TypeID
}

// ByRef reports whether the payload is the address of caller-owned memory.
// Arrays and arguments the callee writes are held by reference; every other
// argument is copied inline.
func (d *Descriptor) ByRef() bool {
	return d.dims != 0 || d.kind.IsOutput()
}

func (d *Descriptor) Kind() Kind { return d.kind }

// Type returns the declared type, or types.Invalid for a terminator.
func (d *Descriptor) Type() types.TypeID {
	if d.kind == KindInvalid {
		return types.Invalid
	}
	return d.typ
}

func (d *Descriptor) Dims() int { return d.dims }

// Shape returns the meaningful shape entries: the first Dims() extents of
// an array, or the byte size of a weak scalar.
func (d *Descriptor) Shape() []int {
	if d.dims == 0 && d.typ == types.Void {
		return d.shape[:1:1]
	}
	return d.shape[:d.dims:d.dims]
}

// Weak reports whether the argument is an opaque byte blob sized by
// Shape()[0].
func (d *Descriptor) Weak() bool {
	return d.dims == 0 && d.typ == types.Void
}

// Size returns the number of elements: the product of the extents, or 1
// for a scalar. Arrays constructed without a shape report 0.
func (d *Descriptor) Size() int {
	n := 1
	for i := 0; i < d.dims; i++ {
		n *= d.shape[i]
	}
	return n
}

// ElemSize returns the byte size of one element. Void arrays count bytes.
func (d *Descriptor) ElemSize() (int, error) {
	if d.typ == types.Void {
		if d.dims == 0 {
			return d.shape[0], nil
		}
		return 1, nil
	}
	size, err := sizer.Size(d.typ)
	if err != nil {
		return 0, errors.New(errors.PhaseValue, errors.KindUnknownType).
			Type(d.typ.String()).
			Cause(err).
			Detail("element size lookup").
			Build()
	}
	return size, nil
}

// DataSize returns the byte size of the whole payload.
func (d *Descriptor) DataSize() (int, error) {
	elem, err := d.ElemSize()
	if err != nil {
		return 0, err
	}
	return d.Size() * elem, nil
}
