// Package callspec describes offloaded calls as data and binds them to
// argument signatures backed by Go-owned buffers.
//
// A call can be written in YAML:
//
//	kernel: increment
//	args:
//	  - kind: input
//	    type: i32
//	    values: [41]
//	  - kind: output
//	    type: i32
//	  - kind: inout
//	    type: f64
//	    shape: [2, 2]
//	    values: [1, 2, 3, 4]
//	  - kind: input
//	    type: void
//	    size: 3
//	    values: [0x01, 0x02, 0x03]
//
// or in the compact form accepted by ParseArg, one argument per spec:
//
//	i32:in=41
//	f64[2x2]:inout=1,2,3,4
//	void(3):in=1,2,3
package callspec
