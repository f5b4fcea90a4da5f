// Package argument marshals the arguments of one offloaded call into a
// fixed-size Signature of Descriptors.
//
// Each Descriptor records the argument's kind (input, output, inout), its
// element type, its dimensionality and shape, and a payload. The payload is
// stored in one of two ways, decided at every access by a single predicate:
//
//   - value mode: scalar inputs are copied into the descriptor's inline
//     buffer of pointer width
//   - reference mode: arrays (dims > 0) and anything the callee writes
//     (output, inout) hold the address of caller-owned memory
//
// Scalars declared as Void, or as any 1-byte type with a shape, are weak:
// the descriptor keeps only their byte size in Shape()[0] and reports Void.
//
// # Usage
//
//	var sig argument.Signature
//	if err := argument.Build(&sig, 2); err != nil {
//	    return err
//	}
//	n := int32(41)
//	if err := argument.Input(&sig, 0, unsafe.Pointer(&n), types.I32, 0, nil); err != nil {
//	    return err
//	}
//	out := make([]float64, 12)
//	if err := argument.Output(&sig, 1, unsafe.Pointer(&out[0]), types.F64, 2, []int{3, 4}); err != nil {
//	    return err
//	}
//
// A Signature is owned by one goroutine while it is built or mutated.
// Referenced buffers must outlive the call; the package never copies or
// frees them.
package argument
