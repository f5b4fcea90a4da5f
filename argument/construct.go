package argument

import (
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/offload/errors"
	"github.com/wippyai/offload/types"
)

// Construct specializes slot arg of sig.
//
// value is copied inline for scalar inputs and kept as an address otherwise;
// nil zero-initializes an inline value. shape must hold at least dims
// extents; for a weak scalar, shape[0] is its byte size. A nil shape on an
// array leaves every extent unknown.
//
// On failure the slot is left untouched.
func Construct(sig *Signature, arg int, kind Kind, value unsafe.Pointer, typ types.TypeID, dims int, shape []int) error {
	if arg >= MaxNArgs {
		return errors.New(errors.PhaseConstruct, errors.KindInvalidArgument).
			Arg(arg).
			Detail("index exceeds maximum arity %d", MaxNArgs).
			Build()
	}
	return construct(sig, arg, kind, value, typ, dims, shape)
}

// Input constructs an argument the callee only reads.
func Input(sig *Signature, arg int, value unsafe.Pointer, typ types.TypeID, dims int, shape []int) error {
	return Construct(sig, arg, KindInput, value, typ, dims, shape)
}

// Output constructs an argument the callee only writes.
func Output(sig *Signature, arg int, value unsafe.Pointer, typ types.TypeID, dims int, shape []int) error {
	return Construct(sig, arg, KindOutput, value, typ, dims, shape)
}

// Inout constructs an argument the callee reads and writes.
func Inout(sig *Signature, arg int, value unsafe.Pointer, typ types.TypeID, dims int, shape []int) error {
	return Construct(sig, arg, KindInout, value, typ, dims, shape)
}

// construct also accepts the terminator slot at index MaxNArgs.
func construct(sig *Signature, arg int, kind Kind, value unsafe.Pointer, typ types.TypeID, dims int, shape []int) error {
	if sig == nil {
		return errors.InvalidArgument(errors.PhaseConstruct, arg, "nil signature")
	}
	if arg < 0 || arg >= len(sig) {
		return errors.New(errors.PhaseConstruct, errors.KindInvalidArgument).
			Arg(arg).
			Detail("index out of range [0, %d)", len(sig)).
			Build()
	}
	if kind > KindInout {
		return errors.New(errors.PhaseConstruct, errors.KindInvalidArgument).
			Arg(arg).
			Value(kind).
			Detail("unknown kind %d", kind).
			Build()
	}
	placeholder := (kind == KindInvalid || kind == KindInout) && typ == types.Invalid
	if !placeholder && !typ.Valid() {
		return errors.New(errors.PhaseConstruct, errors.KindInvalidArgument).
			Arg(arg).
			Type(typ.String()).
			Detail("%s argument requires a valid type", kind).
			Build()
	}
	if dims < 0 || dims > MaxNDims {
		return errors.New(errors.PhaseConstruct, errors.KindInvalidArgument).
			Arg(arg).
			Value(dims).
			Detail("dims %d out of range [0, %d]", dims, MaxNDims).
			Build()
	}

	weak := typ == types.Void
	if !weak {
		if size, err := sizer.Size(typ); err == nil && size == 1 {
			weak = true
		}
	}

	if shape != nil {
		need := dims
		if need == 0 {
			need = 1
		}
		if len(shape) < need {
			return errors.New(errors.PhaseConstruct, errors.KindInvalidArgument).
				Arg(arg).
				Detail("shape has %d entries, need %d", len(shape), need).
				Build()
		}
		for i := 0; i < dims; i++ {
			if shape[i] < 0 {
				return errors.New(errors.PhaseConstruct, errors.KindInvalidArgument).
					Arg(arg).
					Value(shape[i]).
					Detail("negative extent in dimension %d", i).
					Build()
			}
		}
	}

	d := Descriptor{kind: kind, dims: dims}

	if shape != nil {
		if dims > 0 || !weak {
			if dims == 0 {
				Logger().Warn("strong-typed scalar ignores shape",
					zap.Uintptr("signature", uintptr(unsafe.Pointer(sig))),
					zap.Int("arg", arg),
					zap.Stringer("kind", kind),
					zap.Stringer("type", typ))
			}
			d.typ = typ
		} else {
			if shape[0] < 0 || shape[0] > InlineSize {
				return errors.New(errors.PhaseConstruct, errors.KindInvalidArgument).
					Arg(arg).
					Type(types.Void.String()).
					Value(shape[0]).
					Detail("weak scalar of %d bytes exceeds inline capacity %d", shape[0], InlineSize).
					Build()
			}
			d.typ = types.Void
			d.shape[0] = shape[0]
		}
		copy(d.shape[:dims], shape[:dims])
	} else {
		if dims > 0 {
			Logger().Warn("array argument has no shape",
				zap.Uintptr("signature", uintptr(unsafe.Pointer(sig))),
				zap.Int("arg", arg),
				zap.Stringer("kind", kind),
				zap.Int("dims", dims))
		}
		d.typ = typ
	}

	if kind != KindInvalid {
		if err := SetValue(&d, value); err != nil {
			return err
		}
	}

	sig[arg] = d
	return nil
}
