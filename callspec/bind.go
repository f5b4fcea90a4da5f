package callspec

import (
	"strings"
	"unsafe"

	"github.com/wippyai/offload/argument"
	"github.com/wippyai/offload/errors"
	"github.com/wippyai/offload/types"
)

// Binding is a Signature whose reference arguments point into buffers
// owned by the binding. It must stay reachable while the signature is in
// use.
type Binding struct {
	Signature argument.Signature

	call    *Call
	types   []types.TypeID
	buffers [][]byte
}

// Bind allocates a buffer per argument, encodes the initial values and
// constructs the signature.
func (c *Call) Bind() (*Binding, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	b := &Binding{
		call:    c,
		types:   make([]types.TypeID, len(c.Args)),
		buffers: make([][]byte, len(c.Args)),
	}
	if err := argument.Build(&b.Signature, len(c.Args)); err != nil {
		return nil, err
	}

	for i := range c.Args {
		if err := b.bind(i, &c.Args[i]); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (b *Binding) bind(i int, a *Arg) error {
	kind, _ := parseKind(a.Kind)
	typ, _ := types.Parse(a.Type)
	b.types[i] = typ

	dims := len(a.Shape)
	shape := a.Shape
	if dims == 0 && (a.Size > 0 || typ == types.Void) {
		shape = []int{a.Size}
	}

	if err := argument.Construct(&b.Signature, i, kind, nil, typ, dims, shape); err != nil {
		return err
	}
	d := &b.Signature[i]

	size, err := d.DataSize()
	if err != nil {
		return err
	}
	if size == 0 {
		if len(a.Values) > 0 {
			return errors.InvalidArgument(errors.PhaseParse, i, "values given for an empty argument")
		}
		return nil
	}

	buf := make([]byte, size)
	if err := encodeValues(typ, a.Values, buf); err != nil {
		return errors.New(errors.PhaseParse, errors.KindInvalidArgument).
			Arg(i).
			Type(typ.String()).
			Cause(err).
			Build()
	}
	if err := argument.SetValue(d, unsafe.Pointer(&buf[0])); err != nil {
		return err
	}
	if d.ByRef() {
		b.buffers[i] = buf
	}
	return nil
}

// Call returns the description the binding was built from.
func (b *Binding) Call() *Call {
	return b.call
}

// Len returns the number of bound arguments.
func (b *Binding) Len() int {
	return len(b.types)
}

// Bytes returns the current payload of argument i.
func (b *Binding) Bytes(i int) []byte {
	if i < 0 || i >= len(b.types) {
		return nil
	}
	if buf := b.buffers[i]; buf != nil {
		return buf
	}
	return argument.Bytes(&b.Signature[i])
}

// Values decodes the current payload of argument i into strings in the
// syntax accepted by Arg.Values.
func (b *Binding) Values(i int) ([]string, error) {
	if i < 0 || i >= len(b.types) {
		return nil, errors.OutOfBounds(errors.PhaseValue, i, len(b.types))
	}
	return decodeValues(b.types[i], b.Bytes(i))
}

// Format renders argument i as comma separated values.
func (b *Binding) Format(i int) (string, error) {
	values, err := b.Values(i)
	if err != nil {
		return "", err
	}
	return strings.Join(values, ","), nil
}
