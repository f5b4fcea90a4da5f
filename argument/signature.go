package argument

import (
	"github.com/wippyai/offload/errors"
	"github.com/wippyai/offload/types"
)

// Signature is the ordered argument list of one call, terminated by a
// descriptor of kind KindInvalid. The extra slot holds the terminator of a
// call with MaxNArgs arguments.
type Signature [MaxNArgs + 1]Descriptor

// Build initializes the first nargs slots of sig as untyped inout
// placeholders and terminates the list at index nargs.
// A nil sig is accepted only when nargs is 0.
func Build(sig *Signature, nargs int) error {
	if nargs < 0 || nargs > MaxNArgs {
		return errors.New(errors.PhaseBuild, errors.KindInvalidArgument).
			Value(nargs).
			Detail("arity %d out of range [0, %d]", nargs, MaxNArgs).
			Build()
	}
	if sig == nil {
		if nargs == 0 {
			return nil
		}
		return errors.InvalidArgument(errors.PhaseBuild, errors.NoArg, "nil signature")
	}

	for i := 0; i < nargs; i++ {
		if err := construct(sig, i, KindInout, nil, types.Invalid, 0, nil); err != nil {
			return err
		}
	}
	return construct(sig, nargs, KindInvalid, nil, types.Invalid, 0, nil)
}

// Arity returns the number of arguments before the terminator.
func (s *Signature) Arity() (int, error) {
	for i := range s {
		if s[i].kind == KindInvalid {
			return i, nil
		}
	}
	return 0, errors.InvalidData(errors.PhaseBuild, "signature has no terminator")
}

// Arg returns the descriptor at index i, which must be below the arity.
func (s *Signature) Arg(i int) (*Descriptor, error) {
	n, err := s.Arity()
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= n {
		return nil, errors.OutOfBounds(errors.PhaseValue, i, n)
	}
	return &s[i], nil
}
