// Package offload marshals the arguments of calls offloaded from a host
// process to an attached execution device.
//
// # Architecture Overview
//
//	offload/            Root package with Memory, Allocator and Dispatcher interfaces
//	├── argument/       Argument descriptors, signature builder, value access
//	├── types/          Element type identifiers and size lookup
//	├── wire/           Fixed-size record encoding of a signature
//	├── device/         wazero-backed device executing guest kernels
//	├── callspec/       YAML and compact call descriptions
//	├── errors/         Structured error types
//	└── cmd/xsig/       CLI and interactive dispatcher
//
// # Quick Start
//
// Describe a call, then dispatch it to a device:
//
//	var sig argument.Signature
//	_ = argument.Build(&sig, 2)
//	n := int32(41)
//	_ = argument.Input(&sig, 0, unsafe.Pointer(&n), types.I32, 0, nil)
//	var out int32
//	_ = argument.Output(&sig, 1, unsafe.Pointer(&out), types.I32, 0, nil)
//
//	dev, err := device.New(ctx, kernelWasm, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer dev.Close(ctx)
//
//	if err := dev.Call(ctx, "increment", &sig); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(out) // 42
//
// # Storage Model
//
// Scalar inputs travel inline inside their descriptor. Arrays and outputs
// travel by reference; the device translates each reference into its own
// address space, copies inputs in and copies outputs back.
//
// # Thread Safety
//
// A Signature belongs to the goroutine preparing the call. A Device
// serializes calls made on it.
package offload
