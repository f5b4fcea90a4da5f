package offload

import (
	"context"

	"github.com/wippyai/offload/argument"
)

// Memory is a device address space the host copies argument buffers into
// and out of.
type Memory interface {
	Read(addr, length uint32) ([]byte, error)
	Write(addr uint32, data []byte) error
	Size() uint32
}

// Allocator hands out device buffers for the reference arguments of one
// call. Reset releases every buffer of the previous call.
type Allocator interface {
	Alloc(size, align uint32) (uint32, error)
	Reset()
}

// Dispatcher runs named kernels with an argument signature. Output and
// inout payloads are updated in place when the call succeeds.
type Dispatcher interface {
	Kernels() []string
	Call(ctx context.Context, kernel string, sig *argument.Signature) error
}
