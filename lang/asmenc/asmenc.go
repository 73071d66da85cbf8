// Package asmenc implements the binary encoder (C5): it turns the
// instruction list produced by lang/asmlex into 16-bit binary text,
// resolving variable references against the symbol table's RAM
// allocator (pass 2 of the two-pass assembler).
package asmenc

import (
	"fmt"
	"strconv"

	"github.com/shmuga/nand2tetris/lang/asmlex"
	"github.com/shmuga/nand2tetris/lang/symtab"
)

var jumpCodes = map[string]string{
	"":    "000",
	"JGT": "001",
	"JEQ": "010",
	"JGE": "011",
	"JLT": "100",
	"JNE": "101",
	"JLE": "110",
	"JMP": "111",
}

var destCodes = map[string]string{
	"":    "000",
	"M":   "001",
	"D":   "010",
	"MD":  "011",
	"A":   "100",
	"AM":  "101",
	"AD":  "110",
	"AMD": "111",
}

var compCodes = map[string]string{
	"0":   "0101010",
	"1":   "0111111",
	"-1":  "0111010",
	"D":   "0001100",
	"A":   "0110000",
	"!D":  "0001101",
	"!A":  "0110001",
	"-D":  "0001111",
	"-A":  "0110011",
	"D+1": "0011111",
	"A+1": "0110111",
	"D-1": "0001110",
	"A-1": "0110010",
	"D+A": "0000010",
	"D-A": "0010011",
	"A-D": "0000111",
	"D&A": "0000000",
	"D|A": "0010101",
	"M":   "1110000",
	"!M":  "1110001",
	"-M":  "1110011",
	"M+1": "1110111",
	"M-1": "1110010",
	"D+M": "1000010",
	"D-M": "1010011",
	"M-D": "1000111",
	"D&M": "1000000",
	"D|M": "1010101",
}

var compMnemonics = reverse(compCodes)
var destMnemonics = reverse(destCodes)
var jumpMnemonics = reverse(jumpCodes)

func reverse(m map[string]string) map[string]string {
	r := make(map[string]string, len(m))
	for k, v := range m {
		r[v] = k
	}
	return r
}

// Encode produces the 16-character binary text for instr, resolving
// any variable reference against table (allocating it if unseen).
// Label definitions produce no output.
func Encode(instr asmlex.Instruction, table *symtab.Table) (string, bool, error) {
	switch instr.Kind {
	case asmlex.LabelDef:
		return "", false, nil
	case asmlex.AAddress:
		return format16(instr.Address), true, nil
	case asmlex.AVariable:
		addr, ok := table.Get(instr.Name)
		if !ok {
			addr = table.Append(instr.Name)
		}
		return format16(addr), true, nil
	case asmlex.CInstr:
		comp, ok := compCodes[instr.Comp]
		if !ok {
			return "", false, fmt.Errorf("unknown computation %q", instr.Comp)
		}
		dest, ok := destCodes[instr.Dest]
		if !ok {
			return "", false, fmt.Errorf("unknown destination %q", instr.Dest)
		}
		jump, ok := jumpCodes[instr.Jump]
		if !ok {
			return "", false, fmt.Errorf("unknown jump %q", instr.Jump)
		}
		return "111" + comp + dest + jump, true, nil
	default:
		return "", false, fmt.Errorf("unhandled instruction kind %d", instr.Kind)
	}
}

func format16(n uint16) string {
	s := strconv.FormatUint(uint64(n), 2)
	for len(s) < 16 {
		s = "0" + s
	}
	return s
}

// EncodeAll encodes every non-label instruction of instrs in order,
// returning one binary line per instruction.
func EncodeAll(instrs []asmlex.Instruction, table *symtab.Table) ([]string, error) {
	lines := make([]string, 0, len(instrs))
	for _, instr := range instrs {
		line, emit, err := Encode(instr, table)
		if err != nil {
			return nil, err
		}
		if emit {
			lines = append(lines, line)
		}
	}
	return lines, nil
}
