// Package device executes kernels on a WebAssembly guest acting as an
// attached accelerator with its own address space.
//
// A kernel is an exported guest function of type (i32) -> i32. It receives
// the guest address of the call's wire signature and returns a status,
// 0 meaning success. Before the call, every reference argument gets a guest
// buffer; inputs are copied into it and outputs are copied back afterwards.
// Value-mode arguments travel inside the signature records.
package device
