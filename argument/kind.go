package argument

// Kind is the direction of an argument. The output bit marks arguments
// the callee writes.
type Kind uint8

const (
	KindInvalid Kind = 0
	KindInput   Kind = 1
	KindOutput  Kind = 2
	KindInout   Kind = KindInput | KindOutput
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindInput:   "input",
	KindOutput:  "output",
	KindInout:   "inout",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsInput reports whether the callee reads the argument.
func (k Kind) IsInput() bool {
	return k&KindInput != 0
}

// IsOutput reports whether the callee writes the argument.
func (k Kind) IsOutput() bool {
	return k&KindOutput != 0
}
