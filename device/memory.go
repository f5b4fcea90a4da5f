package device

import (
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/offload"
	"github.com/wippyai/offload/errors"
)

// Memory is guest linear memory seen as a device address space.
type Memory struct {
	mem api.Memory
}

var _ offload.Memory = (*Memory)(nil)

// Read returns a copy of length bytes at addr.
func (m *Memory) Read(addr, length uint32) ([]byte, error) {
	view, ok := m.mem.Read(addr, length)
	if !ok {
		return nil, m.outOfRange(addr, length)
	}
	return append([]byte(nil), view...), nil
}

func (m *Memory) Write(addr uint32, data []byte) error {
	if !m.mem.Write(addr, data) {
		return m.outOfRange(addr, uint32(len(data)))
	}
	return nil
}

// Size returns the current memory size in bytes.
func (m *Memory) Size() uint32 {
	if m.mem == nil {
		return 0
	}
	return m.mem.Size()
}

func (m *Memory) outOfRange(addr, length uint32) error {
	return errors.New(errors.PhaseTransport, errors.KindOutOfBounds).
		Value(addr).
		Detail("range [%#x, %#x) outside %d-byte memory", addr, uint64(addr)+uint64(length), m.Size()).
		Build()
}
