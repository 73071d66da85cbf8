// Package asmlex implements the assembler's lexer (C3): it splits Hack
// assembly source into a flat instruction list, registering label
// addresses into a lang/symtab.Table as it goes (pass 1 of the
// two-pass assembler). Pass 2's variable allocation happens later, in
// lang/asmenc, the first time a variable reference is encoded.
package asmlex

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shmuga/nand2tetris/lang/symtab"
	"github.com/shmuga/nand2tetris/lang/token"
)

const maxErrors = 10

// ErrLex collects the fatal lex errors found while scanning one
// assembly source file. Lexing stops early once it reaches maxErrors.
type ErrLex []struct {
	Pos token.Position
	Msg string
}

func (e ErrLex) Error() string {
	l := make([]string, 0, len(e))
	for _, err := range e {
		l = append(l, fmt.Sprintf("%s: %s", err.Pos, err.Msg))
	}
	return strings.Join(l, "\n")
}

// InstructionKind distinguishes an Instruction's shape.
type InstructionKind uint8

//nolint:revive
const (
	AAddress InstructionKind = iota // @123
	AVariable                       // @foo
	CInstr                          // dest=comp;jump
	LabelDef                        // (foo) — not emitted to bytecode
)

// Instruction is one line of assembly, normalized for lang/asmenc.
// Label definitions are kept in the stream (with Name set) purely so
// callers can report them if desired; lang/asmenc skips them.
type Instruction struct {
	Kind    InstructionKind
	Pos     token.Pos
	Address uint16 // AAddress
	Name    string // AVariable, LabelDef
	Dest    string // CInstr, may be ""
	Comp    string // CInstr
	Jump    string // CInstr, may be ""
}

type lexer struct {
	filename string
	line     int
	counter  uint16
	table    *symtab.Table
	errs     ErrLex
}

func (l *lexer) errorf(format string, args ...any) {
	l.errs = append(l.errs, struct {
		Pos token.Position
		Msg string
	}{
		Pos: token.Position{Filename: l.filename, Pos: token.MakePos(l.line, 1)},
		Msg: fmt.Sprintf(format, args...),
	})
}

func (l *lexer) abort() bool { return len(l.errs) >= maxErrors }

// Tokenize lexes src, registering any label definitions into table at
// their ROM address. The ROM counter only advances for A- and
// C-instructions; a label definition binds to the address of the
// instruction that follows it.
func Tokenize(filename string, src []byte, table *symtab.Table) ([]Instruction, error) {
	l := &lexer{filename: filename, table: table}
	var out []Instruction

	for _, raw := range strings.Split(string(src), "\n") {
		l.line++
		if l.abort() {
			break
		}
		line := cleanLine(raw)
		if line == "" {
			continue
		}

		pos := token.MakePos(l.line, 1)
		switch line[0] {
		case '@':
			instr, ok := l.lexA(line)
			if !ok {
				continue
			}
			instr.Pos = pos
			out = append(out, instr)
			l.counter++
		case '(':
			name, ok := l.lexLabel(line)
			if !ok {
				continue
			}
			l.table.Insert(name, l.counter)
			out = append(out, Instruction{Kind: LabelDef, Pos: pos, Name: name})
		default:
			instr, ok := l.lexC(line)
			if !ok {
				continue
			}
			instr.Pos = pos
			out = append(out, instr)
			l.counter++
		}
	}

	if len(l.errs) > 0 {
		return nil, l.errs
	}
	return out, nil
}

// cleanLine strips "// comment" suffixes and surrounding whitespace.
func cleanLine(line string) string {
	if i := strings.Index(line, "//"); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

func (l *lexer) lexA(line string) (Instruction, bool) {
	body := strings.TrimPrefix(line, "@")
	if body == "" {
		l.errorf("empty address instruction %q", line)
		return Instruction{}, false
	}
	if n, err := strconv.ParseUint(body, 10, 16); err == nil {
		return Instruction{Kind: AAddress, Address: uint16(n)}, true
	}
	return Instruction{Kind: AVariable, Name: body}, true
}

func (l *lexer) lexLabel(line string) (string, bool) {
	if !strings.HasSuffix(line, ")") {
		l.errorf("unterminated label %q", line)
		return "", false
	}
	name := strings.TrimSuffix(strings.TrimPrefix(line, "("), ")")
	if name == "" {
		l.errorf("empty label %q", line)
		return "", false
	}
	return name, true
}

// lexC splits dest=comp;jump. The '=' is checked first: a C-instruction
// with a destination always has the form "dest=comp" or
// "dest=comp;jump"; without '=' the whole line is "comp" or
// "comp;jump".
func (l *lexer) lexC(line string) (Instruction, bool) {
	rest := line
	dest := ""
	if i := strings.IndexByte(rest, '='); i >= 0 {
		dest = rest[:i]
		rest = rest[i+1:]
	}

	comp := rest
	jump := ""
	if i := strings.IndexByte(rest, ';'); i >= 0 {
		comp = rest[:i]
		jump = rest[i+1:]
	}

	if comp == "" {
		l.errorf("empty computation in %q", line)
		return Instruction{}, false
	}

	return Instruction{Kind: CInstr, Dest: dest, Comp: comp, Jump: jump}, true
}
