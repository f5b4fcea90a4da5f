package callspec

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/wippyai/offload/argument"
	offerrors "github.com/wippyai/offload/errors"
	"github.com/wippyai/offload/types"
)

const sample = `
kernel: increment
args:
  - kind: input
    type: i32
    values: [41]
  - kind: output
    type: i32
  - kind: inout
    type: f64
    shape: [2, 2]
    values: [1, 2.5, -3, 4]
  - kind: in
    type: void
    size: 3
    values: [0x01, 0x02, 0xff]
`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if c.Kernel != "increment" {
		t.Errorf("Kernel = %q, want increment", c.Kernel)
	}
	if len(c.Args) != 4 {
		t.Fatalf("got %d args, want 4", len(c.Args))
	}
	want := Arg{Kind: "inout", Type: "f64", Shape: []int{2, 2}, Values: []string{"1", "2.5", "-3", "4"}}
	if !reflect.DeepEqual(c.Args[2], want) {
		t.Errorf("Args[2] = %+v, want %+v", c.Args[2], want)
	}
	if c.Args[3].Size != 3 {
		t.Errorf("Args[3].Size = %d, want 3", c.Args[3].Size)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		kind offerrors.Kind
	}{
		{"empty", "", offerrors.KindInvalidData},
		{"unknown field", "args:\n  - kind: in\n    type: i32\n    extent: 3\n", offerrors.KindInvalidData},
		{"bad kind", "args:\n  - kind: sideways\n    type: i32\n", offerrors.KindInvalidArgument},
		{"bad type", "args:\n  - kind: in\n    type: quad\n", offerrors.KindUnknownType},
		{"too many dims", "args:\n  - kind: in\n    type: i32\n    shape: [1, 1, 1, 1, 1]\n", offerrors.KindInvalidArgument},
		{"negative extent", "args:\n  - kind: in\n    type: i32\n    shape: [-1]\n", offerrors.KindInvalidArgument},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.data))
			var e *offerrors.Error
			if !errors.As(err, &e) {
				t.Fatalf("error = %v, want *errors.Error", err)
			}
			if e.Kind != tc.kind {
				t.Errorf("Kind = %s, want %s", e.Kind, tc.kind)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "call.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(c.Args) != 4 {
		t.Errorf("got %d args, want 4", len(c.Args))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of a missing file should fail")
	}
}

func TestValidate_Arity(t *testing.T) {
	c := &Call{Args: make([]Arg, argument.MaxNArgs+1)}
	for i := range c.Args {
		c.Args[i] = Arg{Kind: "in", Type: "i32"}
	}
	if err := c.Validate(); !errors.Is(err, offerrors.ErrInvalidArgument) {
		t.Errorf("Validate() error = %v, want invalid_argument", err)
	}
}

func TestParseArg(t *testing.T) {
	tests := []struct {
		spec string
		want Arg
	}{
		{"i32:in=41", Arg{Kind: "in", Type: "i32", Values: []string{"41"}}},
		{"i32:out", Arg{Kind: "out", Type: "i32"}},
		{"f64[3x4]:inout=1,2", Arg{Kind: "inout", Type: "f64", Shape: []int{3, 4}, Values: []string{"1", "2"}}},
		{"void(3):in=1, 2, 3", Arg{Kind: "in", Type: "void", Size: 3, Values: []string{"1", "2", "3"}}},
		{" u8[5] : io ", Arg{Kind: "io", Type: "u8", Shape: []int{5}}},
	}

	for _, tc := range tests {
		t.Run(tc.spec, func(t *testing.T) {
			got, err := ParseArg(tc.spec)
			if err != nil {
				t.Fatalf("ParseArg() error = %v", err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("ParseArg() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestParseArg_Errors(t *testing.T) {
	for _, spec := range []string{"i32", "f64[3x]:in", "f64 3]:in", "void(x):in", "void 3):in"} {
		t.Run(spec, func(t *testing.T) {
			if _, err := ParseArg(spec); err == nil {
				t.Errorf("ParseArg(%q) should fail", spec)
			}
		})
	}
}

func TestArgString(t *testing.T) {
	for _, spec := range []string{"i32:in=41", "f64[3x4]:inout=1,2", "void(3):in=1,2,3", "u8:out"} {
		a, err := ParseArg(spec)
		if err != nil {
			t.Fatal(err)
		}
		if got := a.String(); got != spec {
			t.Errorf("String() = %q, want %q", got, spec)
		}
	}
}

func TestParseArgs(t *testing.T) {
	c, err := ParseArgs("increment", "i32:in=41; i32:out;")
	if err != nil {
		t.Fatalf("ParseArgs() error = %v", err)
	}
	if c.Kernel != "increment" || len(c.Args) != 2 {
		t.Errorf("ParseArgs() = %+v", c)
	}

	if _, err := ParseArgs("", "i32:nowhere"); !errors.Is(err, offerrors.ErrInvalidArgument) {
		t.Errorf("ParseArgs() error = %v, want invalid_argument", err)
	}
}

func TestBind(t *testing.T) {
	c, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.Bind()
	if err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if b.Len() != 4 || b.Call() != c {
		t.Fatalf("Len() = %d, Call() = %p", b.Len(), b.Call())
	}
	if n, err := b.Signature.Arity(); err != nil || n != 4 {
		t.Fatalf("Arity() = %d, %v; want 4", n, err)
	}

	scalar := &b.Signature[0]
	if scalar.ByRef() || scalar.Type() != types.I32 {
		t.Errorf("arg 0: ByRef = %v, Type = %s", scalar.ByRef(), scalar.Type())
	}

	out := &b.Signature[1]
	if !out.ByRef() || argument.Value(out) == nil {
		t.Error("output scalar should reference a buffer")
	}

	arr := &b.Signature[2]
	if arr.Dims() != 2 || arr.Size() != 4 {
		t.Errorf("arg 2: Dims = %d, Size = %d", arr.Dims(), arr.Size())
	}

	weak := &b.Signature[3]
	if !weak.Weak() || weak.Shape()[0] != 3 {
		t.Errorf("arg 3 should be a 3-byte weak scalar, shape %v", weak.Shape())
	}

	formats := []string{"41", "0", "1,2.5,-3,4", "0x01,0x02,0xff"}
	for i, want := range formats {
		got, err := b.Format(i)
		if err != nil {
			t.Fatalf("Format(%d) error = %v", i, err)
		}
		if got != want {
			t.Errorf("Format(%d) = %q, want %q", i, got, want)
		}
	}

	// Writes through the descriptor's payload are visible to the binding.
	argument.Bytes(out)[0] = 42
	if got, _ := b.Format(1); got != "42" {
		t.Errorf("Format(1) after write = %q, want 42", got)
	}

	if _, err := b.Values(9); err == nil {
		t.Error("Values(9) should fail")
	}
}

func TestBind_Types(t *testing.T) {
	tests := []struct {
		spec string
		want string
	}{
		{"char[3]:in=a,98,Z", "a,b,Z"},
		{"i8:in=-5", "-5"},
		{"u16[2]:in=0x10,65535", "16,65535"},
		{"i64:in=-9000000000", "-9000000000"},
		{"u64[1]:in=18446744073709551615", "18446744073709551615"},
		{"f32:in=0.5", "0.5"},
		{"c32:in=1+2i", "(1+2i)"},
		{"c64[1]:inout=(3-4i)", "(3-4i)"},
		{"i32[4]:in=1,2", "1,2,0,0"},
		{"i32(4):in=7", "7"},
	}

	for _, tc := range tests {
		t.Run(tc.spec, func(t *testing.T) {
			c, err := ParseArgs("", tc.spec)
			if err != nil {
				t.Fatal(err)
			}
			b, err := c.Bind()
			if err != nil {
				t.Fatalf("Bind() error = %v", err)
			}
			got, err := b.Format(0)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("Format(0) = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestBind_Errors(t *testing.T) {
	tests := []struct {
		name string
		spec string
	}{
		{"too many values", "i32[2]:in=1,2,3"},
		{"overflow", "i8:in=300"},
		{"not a number", "f64:in=abc"},
		{"wide inline scalar", "c64:in=1"},
		{"oversized weak scalar", "void(9):in=1"},
		{"values for empty argument", "void:in=1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := ParseArgs("", tc.spec)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := c.Bind(); !errors.Is(err, offerrors.ErrInvalidArgument) {
				t.Errorf("Bind() error = %v, want invalid_argument", err)
			}
		})
	}
}
