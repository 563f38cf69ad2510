package trace

import (
	"fmt"
	"strconv"
	"strings"
)

// OpKind is the opcode of a trace line.
type OpKind byte

// The opcodes that a valgrind lackey trace contains.
const (
	OpInstruction OpKind = 'I'
	OpLoad        OpKind = 'L'
	OpStore       OpKind = 'S'
	OpModify      OpKind = 'M'
)

// NumAccesses returns how many cache accesses the operation turns into.
func (k OpKind) NumAccesses() int {
	switch k {
	case OpLoad, OpStore:
		return 1
	case OpModify:
		return 2
	default:
		return 0
	}
}

func (k OpKind) String() string {
	return string(k)
}

// Op is a decoded trace line.
type Op struct {
	Kind    OpKind
	Address uint64
	Size    uint32
}

// String formats the op as it appears in a trace, without the leading space.
func (o Op) String() string {
	return fmt.Sprintf("%c %x,%d", o.Kind, o.Address, o.Size)
}

// MalformedLineError reports a trace line that cannot be parsed. Replaying
// skips such lines.
type MalformedLineError struct {
	LineNo int
	Text   string
	Reason string
}

func (e *MalformedLineError) Error() string {
	if e.LineNo > 0 {
		return fmt.Sprintf("trace line %d %q: %s", e.LineNo, e.Text, e.Reason)
	}

	return fmt.Sprintf("trace line %q: %s", e.Text, e.Reason)
}

// ParseLine parses one line of the form " L 7ff000,8". Leading whitespace is
// ignored.
func ParseLine(line string) (Op, error) {
	text := strings.TrimSpace(line)
	malformed := func(reason string) (Op, error) {
		return Op{}, &MalformedLineError{Text: line, Reason: reason}
	}

	if text == "" {
		return malformed("empty line")
	}

	kind := OpKind(text[0])
	switch kind {
	case OpInstruction, OpLoad, OpStore, OpModify:
	default:
		return malformed(fmt.Sprintf("unknown opcode %q", text[0]))
	}

	rest := text[1:]
	if rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
		return malformed("opcode must be followed by a space")
	}

	addrText, sizeText, found := strings.Cut(strings.TrimSpace(rest), ",")
	if !found {
		return malformed("missing size")
	}

	addrText = strings.TrimPrefix(strings.TrimPrefix(addrText, "0x"), "0X")

	addr, err := strconv.ParseUint(addrText, 16, 64)
	if err != nil {
		return malformed(fmt.Sprintf("bad address: %v", err))
	}

	size, err := strconv.ParseUint(strings.TrimSpace(sizeText), 10, 32)
	if err != nil {
		return malformed(fmt.Sprintf("bad size: %v", err))
	}

	return Op{Kind: kind, Address: addr, Size: uint32(size)}, nil
}
