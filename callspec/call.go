package callspec

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/offload/argument"
	"github.com/wippyai/offload/errors"
	"github.com/wippyai/offload/types"
)

// Call is a kernel name and its ordered arguments.
type Call struct {
	// Kernel names the device function to run. Optional when the call is
	// only inspected.
	Kernel string `yaml:"kernel,omitempty"`

	Args []Arg `yaml:"args"`
}

// Arg describes one argument.
type Arg struct {
	// Kind is input, output or inout (in, out, io for short).
	Kind string `yaml:"kind"`

	// Type is an element type name such as i32, f64 or void.
	Type string `yaml:"type"`

	// Shape lists the extents of an array argument. Empty for scalars.
	Shape []int `yaml:"shape,omitempty,flow"`

	// Size is the byte size of a weak scalar (void or a one-byte type).
	Size int `yaml:"size,omitempty"`

	// Values initializes the argument's elements in order. Missing
	// elements are zero.
	Values []string `yaml:"values,omitempty,flow"`
}

// Load reads and validates a YAML call description.
func Load(path string) (*Call, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ParseFailed(path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML call description. Unknown fields are
// rejected.
func Parse(data []byte) (*Call, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var c Call
	if err := dec.Decode(&c); err != nil {
		return nil, errors.ParseFailed("call description", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks every argument without binding buffers.
func (c *Call) Validate() error {
	if len(c.Args) > argument.MaxNArgs {
		return errors.New(errors.PhaseParse, errors.KindInvalidArgument).
			Value(len(c.Args)).
			Detail("%d arguments exceed maximum arity %d", len(c.Args), argument.MaxNArgs).
			Build()
	}
	for i := range c.Args {
		if err := c.Args[i].validate(i); err != nil {
			return err
		}
	}
	return nil
}

func (a *Arg) validate(i int) error {
	if _, err := parseKind(a.Kind); err != nil {
		return errors.New(errors.PhaseParse, errors.KindInvalidArgument).Arg(i).Cause(err).Detail("kind").Build()
	}
	typ, err := types.Parse(a.Type)
	if err != nil {
		return errors.New(errors.PhaseParse, errors.KindUnknownType).Arg(i).Type(a.Type).Cause(err).Build()
	}
	if !typ.Valid() {
		return errors.New(errors.PhaseParse, errors.KindInvalidArgument).Arg(i).Type(a.Type).Detail("type must name data").Build()
	}
	if len(a.Shape) > argument.MaxNDims {
		return errors.New(errors.PhaseParse, errors.KindInvalidArgument).
			Arg(i).
			Detail("%d dimensions exceed %d", len(a.Shape), argument.MaxNDims).
			Build()
	}
	for d, extent := range a.Shape {
		if extent < 0 {
			return errors.New(errors.PhaseParse, errors.KindInvalidArgument).
				Arg(i).
				Detail("negative extent in dimension %d", d).
				Build()
		}
	}
	if a.Size < 0 {
		return errors.InvalidArgument(errors.PhaseParse, i, "negative size")
	}
	return nil
}

// String renders a in compact form.
func (a Arg) String() string {
	var b strings.Builder
	b.WriteString(a.Type)
	switch {
	case len(a.Shape) > 0:
		b.WriteByte('[')
		for i, extent := range a.Shape {
			if i > 0 {
				b.WriteByte('x')
			}
			fmt.Fprintf(&b, "%d", extent)
		}
		b.WriteByte(']')
	case a.Size > 0:
		fmt.Fprintf(&b, "(%d)", a.Size)
	}
	b.WriteByte(':')
	b.WriteString(a.Kind)
	if len(a.Values) > 0 {
		b.WriteByte('=')
		b.WriteString(strings.Join(a.Values, ","))
	}
	return b.String()
}

func parseKind(s string) (argument.Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "in", "input":
		return argument.KindInput, nil
	case "out", "output":
		return argument.KindOutput, nil
	case "io", "inout":
		return argument.KindInout, nil
	}
	return argument.KindInvalid, fmt.Errorf("unknown argument kind %q", s)
}
