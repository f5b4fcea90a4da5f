package wire

import (
	"github.com/wippyai/offload/argument"
	"github.com/wippyai/offload/errors"
	"github.com/wippyai/offload/types"
)

// Translator maps the reference payload of argument arg to an address in
// the receiver's address space.
type Translator func(arg int, d *argument.Descriptor) (uint64, error)

// HostAddress keeps reference payloads as host addresses, for receivers
// sharing the caller's address space.
func HostAddress(_ int, d *argument.Descriptor) (uint64, error) {
	return uint64(uintptr(argument.Value(d))), nil
}

// FromDescriptor builds the record of d, using addr as the payload of a
// reference-mode descriptor.
func FromDescriptor(d *argument.Descriptor, addr uint64) Record {
	r := Record{
		Kind: d.Kind(),
		Type: d.Type(),
		Dims: uint32(d.Dims()),
	}
	for i, extent := range d.Shape() {
		r.Shape[i] = uint64(extent)
	}
	if d.ByRef() {
		byteOrder.PutUint64(r.Data[:], addr)
	} else if d.Kind() != argument.KindInvalid {
		copy(r.Data[:], argument.Bytes(d))
	}
	return r
}

// MarshalSignature encodes sig up to and including its terminator.
func MarshalSignature(sig *argument.Signature, translate Translator) ([]byte, error) {
	n, err := sig.Arity()
	if err != nil {
		return nil, err
	}
	return AppendSignature(make([]byte, 0, (n+1)*RecordSize), sig, translate)
}

// AppendSignature appends the encoding of sig to dst.
func AppendSignature(dst []byte, sig *argument.Signature, translate Translator) ([]byte, error) {
	n, err := sig.Arity()
	if err != nil {
		return nil, err
	}
	if translate == nil {
		translate = HostAddress
	}

	start := len(dst)
	dst = append(dst, make([]byte, (n+1)*RecordSize)...)
	for i := 0; i <= n; i++ {
		d := &sig[i]
		var addr uint64
		if i < n && d.ByRef() {
			if addr, err = translate(i, d); err != nil {
				return nil, errors.New(errors.PhaseEncode, errors.KindInvalidArgument).
					Arg(i).
					Cause(err).
					Detail("translate reference").
					Build()
			}
		}
		r := FromDescriptor(d, addr)
		r.MarshalBytes(dst[start+i*RecordSize:])
	}
	return dst, nil
}

// UnmarshalSignature decodes records up to the terminator, which is not
// included in the result.
func UnmarshalSignature(src []byte) ([]Record, error) {
	var records []Record
	for i := 0; i <= argument.MaxNArgs; i++ {
		off := i * RecordSize
		if off+RecordSize > len(src) {
			return nil, errors.New(errors.PhaseDecode, errors.KindOutOfBounds).
				Arg(i).
				Detail("record at offset %d truncated (%d bytes)", off, len(src)).
				Build()
		}
		var r Record
		if err := r.UnmarshalBytes(src[off:]); err != nil {
			return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
				Arg(i).
				Cause(err).
				Detail("record at offset %d", off).
				Build()
		}
		if r.Kind == argument.KindInvalid {
			return records, nil
		}
		if r.Type == types.Invalid && r.Kind != argument.KindInout {
			return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
				Arg(i).
				Detail("%s record has no type", r.Kind).
				Build()
		}
		if r.Dims > argument.MaxNDims {
			return nil, errors.New(errors.PhaseDecode, errors.KindInvalidData).
				Arg(i).
				Value(r.Dims).
				Detail("dims %d exceeds %d", r.Dims, argument.MaxNDims).
				Build()
		}
		records = append(records, r)
	}
	return nil, errors.InvalidData(errors.PhaseDecode, "signature has no terminator")
}
