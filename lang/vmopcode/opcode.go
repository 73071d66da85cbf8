// Package vmopcode implements the lexer/parser stage (C1) of the VM
// translator: it turns stack-VM source text into a normalized list of
// Opcode records for lang/vmcodegen to consume.
package vmopcode

import (
	"fmt"

	"github.com/shmuga/nand2tetris/lang/token"
)

// Kind identifies the shape of an Opcode.
type Kind uint8

//nolint:revive
const (
	Push Kind = iota
	Pop
	Add
	Sub
	Neg
	Eq
	Gt
	Lt
	And
	Or
	Not
	Label
	Goto
	IfGoto
	Function
	Call
	Return
)

var kindNames = [...]string{
	Push:     "push",
	Pop:      "pop",
	Add:      "add",
	Sub:      "sub",
	Neg:      "neg",
	Eq:       "eq",
	Gt:       "gt",
	Lt:       "lt",
	And:      "and",
	Or:       "or",
	Not:      "not",
	Label:    "label",
	Goto:     "goto",
	IfGoto:   "if-goto",
	Function: "function",
	Call:     "call",
	Return:   "return",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("<invalid Kind %d>", k)
}

// niladicKinds maps the bare opcode words that take no operands to their
// Kind, i.e. everything except push/pop/label/goto/if-goto/function/call.
var niladicKinds = map[string]Kind{
	"add":    Add,
	"sub":    Sub,
	"neg":    Neg,
	"eq":     Eq,
	"gt":     Gt,
	"lt":     Lt,
	"and":    And,
	"or":     Or,
	"not":    Not,
	"return": Return,
}

// Segment is a named region of the VM stack machine's memory.
type Segment uint8

//nolint:revive
const (
	SegConstant Segment = iota
	SegLocal
	SegArgument
	SegThis
	SegThat
	SegTemp
	SegPointer
	SegStatic
)

var segmentNames = [...]string{
	SegConstant: "constant",
	SegLocal:    "local",
	SegArgument: "argument",
	SegThis:     "this",
	SegThat:     "that",
	SegTemp:     "temp",
	SegPointer:  "pointer",
	SegStatic:   "static",
}

func (s Segment) String() string {
	if int(s) < len(segmentNames) {
		return segmentNames[s]
	}
	return fmt.Sprintf("<invalid Segment %d>", s)
}

var segmentsByName = func() map[string]Segment {
	m := make(map[string]Segment, len(segmentNames))
	for s, name := range segmentNames {
		m[name] = Segment(s)
	}
	return m
}()

// Opcode is a single normalized instruction of VM source. Which fields
// are meaningful depends on Kind:
//
//	Push, Pop            Segment, Index
//	Label, Goto, IfGoto  Name
//	Function, Call       Name, Index (nlocals / nargs respectively)
//	everything else      (no extra fields)
type Opcode struct {
	Kind    Kind
	Pos     token.Pos
	Segment Segment
	Index   int
	Name    string
}
