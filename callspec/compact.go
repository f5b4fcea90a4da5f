package callspec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wippyai/offload/errors"
)

// ParseArg parses one compact argument spec:
//
//	<type>[<extent>x<extent>...]:<kind>[=<v>,<v>...]
//	<type>(<bytes>):<kind>[=<v>,<v>...]
func ParseArg(spec string) (Arg, error) {
	head, tail, ok := strings.Cut(strings.TrimSpace(spec), ":")
	if !ok {
		return Arg{}, errors.ParseFailed(fmt.Sprintf("argument %q", spec), fmt.Errorf("missing ':' before kind"))
	}

	head = strings.TrimSpace(head)

	var a Arg
	kind, values, hasValues := strings.Cut(tail, "=")
	a.Kind = strings.TrimSpace(kind)
	if hasValues {
		for _, v := range strings.Split(values, ",") {
			if v = strings.TrimSpace(v); v != "" {
				a.Values = append(a.Values, v)
			}
		}
	}

	switch {
	case strings.HasSuffix(head, "]"):
		name, dims, ok := strings.Cut(strings.TrimSuffix(head, "]"), "[")
		if !ok {
			return Arg{}, errors.ParseFailed(fmt.Sprintf("argument %q", spec), fmt.Errorf("unbalanced '['"))
		}
		a.Type = name
		for _, part := range strings.Split(dims, "x") {
			extent, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return Arg{}, errors.ParseFailed(fmt.Sprintf("argument %q", spec), err)
			}
			a.Shape = append(a.Shape, extent)
		}
	case strings.HasSuffix(head, ")"):
		name, size, ok := strings.Cut(strings.TrimSuffix(head, ")"), "(")
		if !ok {
			return Arg{}, errors.ParseFailed(fmt.Sprintf("argument %q", spec), fmt.Errorf("unbalanced '('"))
		}
		n, err := strconv.Atoi(strings.TrimSpace(size))
		if err != nil {
			return Arg{}, errors.ParseFailed(fmt.Sprintf("argument %q", spec), err)
		}
		a.Type, a.Size = name, n
	default:
		a.Type = head
	}
	a.Type = strings.TrimSpace(a.Type)

	return a, nil
}

// ParseArgs parses specs separated by ';' and validates the result.
func ParseArgs(kernel, specs string) (*Call, error) {
	c := &Call{Kernel: kernel}
	for _, spec := range strings.Split(specs, ";") {
		if strings.TrimSpace(spec) == "" {
			continue
		}
		a, err := ParseArg(spec)
		if err != nil {
			return nil, err
		}
		c.Args = append(c.Args, a)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
