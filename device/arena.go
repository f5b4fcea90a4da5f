package device

import (
	"math"

	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/offload"
	"github.com/wippyai/offload/errors"
)

const pageSize = 65536

var _ offload.Allocator = (*arena)(nil)

// arena is a bump allocator over guest memory. Buffers live for one call
// and are released together by Reset.
type arena struct {
	mem  api.Memory
	base uint32
	next uint32
}

func newArena(mem api.Memory, base uint32) *arena {
	return &arena{mem: mem, base: base, next: base}
}

func (a *arena) Alloc(size, align uint32) (uint32, error) {
	ptr := alignTo(a.next, align)
	if ptr < a.next || ptr > math.MaxUint32-size {
		return 0, errors.AllocationFailed(errors.PhaseTransport, size, align)
	}
	end := ptr + size
	if have := a.mem.Size(); end > have {
		pages := (end - have + pageSize - 1) / pageSize
		if _, ok := a.mem.Grow(pages); !ok {
			return 0, errors.AllocationFailed(errors.PhaseTransport, size, align)
		}
	}
	a.next = end
	return ptr, nil
}

// Reset releases every buffer at once.
func (a *arena) Reset() {
	a.next = a.base
}

func alignTo(offset, align uint32) uint32 {
	if align == 0 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}
