package device

import (
	"context"
	"sort"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/offload"
	"github.com/wippyai/offload/argument"
	"github.com/wippyai/offload/errors"
	"github.com/wippyai/offload/wire"
)

const defaultHeapBase = 1024

// Config holds configuration for device creation
type Config struct {
	// MemoryLimitPages sets the maximum guest memory in pages (64KB each).
	// 0 means the wazero default.
	MemoryLimitPages uint32

	// HeapBase is the first guest address used for call buffers.
	// 0 means 1024, leaving low memory to the guest.
	HeapBase uint32
}

// Device is an instantiated guest module whose kernels can be called with
// a Signature. Calls on one Device are serialized.
type Device struct {
	runtime wazero.Runtime
	module  api.Module
	memory  *Memory
	heap    offload.Allocator
	kernels []string
	mu      sync.Mutex
}

// New compiles and instantiates wasmBytes. The module must export a memory.
func New(ctx context.Context, wasmBytes []byte, cfg *Config) (*Device, error) {
	runtimeCfg := wazero.NewRuntimeConfig()
	heapBase := uint32(defaultHeapBase)
	if cfg != nil {
		if cfg.MemoryLimitPages > 0 {
			runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
		}
		if cfg.HeapBase > 0 {
			heapBase = cfg.HeapBase
		}
	}

	rt := wazero.NewRuntimeWithConfig(ctx, runtimeCfg)

	compiled, err := rt.CompileModule(ctx, wasmBytes)
	if err != nil {
		rt.Close(ctx)
		return nil, errors.Wrap(errors.PhaseDevice, errors.KindInvalidData, err, "compile kernel module")
	}

	var kernels []string
	for name, def := range compiled.ExportedFunctions() {
		if isKernel(def) {
			kernels = append(kernels, name)
		}
	}
	sort.Strings(kernels)

	mod, err := rt.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName(""))
	if err != nil {
		rt.Close(ctx)
		return nil, errors.Wrap(errors.PhaseDevice, errors.KindDevice, err, "instantiate kernel module")
	}

	mem := mod.Memory()
	if mem == nil {
		rt.Close(ctx)
		return nil, errors.NotFound(errors.PhaseDevice, "export", "memory")
	}

	Logger().Debug("device ready",
		zap.Strings("kernels", kernels),
		zap.Uint32("memory", mem.Size()),
		zap.Uint32("heap_base", heapBase))

	return &Device{
		runtime: rt,
		module:  mod,
		memory:  &Memory{mem: mem},
		heap:    newArena(mem, heapBase),
		kernels: kernels,
	}, nil
}

var _ offload.Dispatcher = (*Device)(nil)

func isKernel(def api.FunctionDefinition) bool {
	params, results := def.ParamTypes(), def.ResultTypes()
	return len(params) == 1 && params[0] == api.ValueTypeI32 &&
		len(results) == 1 && results[0] == api.ValueTypeI32
}

// Kernels returns the sorted names of exported functions callable as kernels.
func (d *Device) Kernels() []string {
	return append([]string(nil), d.kernels...)
}

// Memory returns the guest address space.
func (d *Device) Memory() *Memory {
	return d.memory
}

// Call executes kernel with the arguments described by sig. Output and
// inout buffers are updated in place when the kernel succeeds.
func (d *Device) Call(ctx context.Context, kernel string, sig *argument.Signature) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	fn := d.module.ExportedFunction(kernel)
	if fn == nil || !isKernel(fn.Definition()) {
		return errors.NotFound(errors.PhaseDevice, "kernel", kernel)
	}

	n, err := sig.Arity()
	if err != nil {
		return err
	}

	d.heap.Reset()

	var addrs [argument.MaxNArgs]uint32
	var sizes [argument.MaxNArgs]uint32
	for i := 0; i < n; i++ {
		desc := &sig[i]
		if !desc.ByRef() || argument.Value(desc) == nil {
			continue
		}
		ptr, size, err := d.stage(i, desc)
		if err != nil {
			return err
		}
		addrs[i], sizes[i] = ptr, size
	}

	record, err := wire.MarshalSignature(sig, func(i int, _ *argument.Descriptor) (uint64, error) {
		return uint64(addrs[i]), nil
	})
	if err != nil {
		return err
	}
	sigPtr, err := d.heap.Alloc(uint32(len(record)), 8)
	if err != nil {
		return err
	}
	if err := d.memory.Write(sigPtr, record); err != nil {
		return errors.Wrap(errors.PhaseTransport, errors.KindOutOfBounds, err, "write signature")
	}

	Logger().Debug("dispatch",
		zap.String("kernel", kernel),
		zap.Int("arity", n),
		zap.Uint32("signature", sigPtr))

	results, err := fn.Call(ctx, uint64(sigPtr))
	if err != nil {
		return errors.Wrap(errors.PhaseDevice, errors.KindDevice, err, "call kernel "+kernel)
	}
	if status := int32(uint32(results[0])); status != 0 {
		return errors.New(errors.PhaseDevice, errors.KindDevice).
			Value(status).
			Detail("kernel %q returned status %d", kernel, status).
			Build()
	}

	for i := 0; i < n; i++ {
		desc := &sig[i]
		if addrs[i] == 0 || !desc.Kind().IsOutput() {
			continue
		}
		data, err := d.memory.Read(addrs[i], sizes[i])
		if err != nil {
			return errors.New(errors.PhaseTransport, errors.KindOutOfBounds).
				Arg(i).
				Cause(err).
				Detail("copy output back").
				Build()
		}
		copy(argument.Bytes(desc), data)
	}
	return nil
}

// stage reserves a guest buffer for a reference argument and copies its
// input bytes in.
func (d *Device) stage(i int, desc *argument.Descriptor) (uint32, uint32, error) {
	size, err := desc.DataSize()
	if err != nil {
		return 0, 0, err
	}
	if size == 0 {
		return 0, 0, errors.InvalidArgument(errors.PhaseTransport, i, "reference argument has no known extent")
	}
	elem, err := desc.ElemSize()
	if err != nil {
		return 0, 0, err
	}
	align := uint32(1)
	for align < uint32(elem) && align < 8 {
		align <<= 1
	}

	ptr, err := d.heap.Alloc(uint32(size), align)
	if err != nil {
		return 0, 0, err
	}
	src := make([]byte, size)
	if desc.Kind().IsInput() {
		src = argument.Bytes(desc)
	}
	if err := d.memory.Write(ptr, src); err != nil {
		return 0, 0, errors.New(errors.PhaseTransport, errors.KindOutOfBounds).
			Arg(i).
			Cause(err).
			Detail("copy input in").
			Build()
	}
	return ptr, uint32(size), nil
}

// Close releases the guest module and its runtime.
func (d *Device) Close(ctx context.Context) error {
	return d.runtime.Close(ctx)
}
