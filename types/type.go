package types

import (
	"strings"

	"github.com/wippyai/offload/errors"
)

type TypeID uint8

const (
	Char TypeID = iota
	I8
	U8
	I16
	U16
	I32
	U32
	I64
	U64
	F32
	F64
	C32
	C64
	Void
	Invalid
)

var typeNames = [...]string{
	Char:    "char",
	I8:      "i8",
	U8:      "u8",
	I16:     "i16",
	U16:     "u16",
	I32:     "i32",
	U32:     "u32",
	I64:     "i64",
	U64:     "u64",
	F32:     "f32",
	F64:     "f64",
	C32:     "c32",
	C64:     "c64",
	Void:    "void",
	Invalid: "invalid",
}

// sizes holds byte sizes for every type with an intrinsic size.
// Void and Invalid are absent.
var sizes = [...]int{
	Char: 1,
	I8:   1,
	U8:   1,
	I16:  2,
	U16:  2,
	I32:  4,
	U32:  4,
	I64:  8,
	U64:  8,
	F32:  4,
	F64:  8,
	C32:  8,
	C64:  16,
}

func (t TypeID) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "unknown"
}

// Valid reports whether t names a real type (Void included).
func (t TypeID) Valid() bool {
	return t < Invalid
}

// Size returns the byte size of t.
// Void, Invalid and unregistered identifiers fail with an unknown_type error.
func Size(t TypeID) (int, error) {
	if int(t) < len(sizes) {
		return sizes[t], nil
	}
	return 0, errors.UnknownType(errors.PhaseValue, t.String())
}

// Parse maps a type name back to its identifier.
func Parse(name string) (TypeID, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range typeNames {
		if s == n {
			return TypeID(i), nil
		}
	}
	switch n {
	case "byte":
		return U8, nil
	case "int":
		return I32, nil
	case "float":
		return F32, nil
	case "double":
		return F64, nil
	}
	return Invalid, errors.New(errors.PhaseParse, errors.KindUnknownType).
		Type(name).
		Detail("unrecognized type name").
		Build()
}

// Sizer resolves type sizes. Registries other than the built-in one
// can be injected where a Sizer is accepted.
type Sizer interface {
	Size(t TypeID) (int, error)
}

type builtin struct{}

func (builtin) Size(t TypeID) (int, error) { return Size(t) }

// Default is the built-in registry.
var Default Sizer = builtin{}
