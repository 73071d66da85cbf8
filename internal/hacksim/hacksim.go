// Package hacksim implements a small Hack CPU simulator: just enough
// of the fetch-decode-execute loop to mechanically check that the VM
// translator and assembler together produce programs with the effects
// the Hack platform promises (stack discipline, calling convention).
// It is exercised only by tests; it plays no role in the translator or
// assembler pipelines themselves.
package hacksim

import (
	"fmt"
	"strconv"
)

const (
	ramSize = 1 << 15 // covers RAM through SCREEN/KBD
	maxStep = 1 << 20
)

// CPU is a Hack computer: the A and D registers, the program counter,
// RAM, and the loaded ROM.
type CPU struct {
	A, D, PC uint16
	RAM      [ramSize]int16
	ROM      []uint16

	steps int
}

// Load decodes 16-character binary text lines (as produced by
// lang/asmenc) into ROM words.
func Load(lines []string) (*CPU, error) {
	cpu := &CPU{ROM: make([]uint16, len(lines))}
	for i, line := range lines {
		n, err := strconv.ParseUint(line, 2, 16)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		cpu.ROM[i] = uint16(n)
	}
	return cpu, nil
}

// Run executes instructions starting at PC=0 until the program
// counter runs off the end of ROM or maxStep instructions have
// executed (a runaway-program guard, not a platform limit).
func (c *CPU) Run() error {
	for int(c.PC) < len(c.ROM) {
		if c.steps >= maxStep {
			return fmt.Errorf("exceeded %d steps without halting", maxStep)
		}
		c.steps++
		c.step()
	}
	return nil
}

func (c *CPU) mem(addr uint16) *int16 { return &c.RAM[addr] }

func (c *CPU) step() {
	instr := c.ROM[c.PC]
	if instr&0x8000 == 0 {
		// A-instruction: @value
		c.A = instr
		c.PC++
		return
	}

	a := instr&0x1000 != 0
	compBits := (instr >> 6) & 0x3f
	destBits := (instr >> 3) & 0x7
	jumpBits := instr & 0x7

	var y int16
	if a {
		y = *c.mem(c.A)
	} else {
		y = int16(c.A)
	}
	result := alu(int16(c.D), y, compBits)

	if destBits&0x4 != 0 {
		c.A = uint16(result)
	}
	if destBits&0x2 != 0 {
		c.D = result
	}
	if destBits&0x1 != 0 {
		*c.mem(c.A) = result
	}

	if jump(result, jumpBits) {
		c.PC = c.A
	} else {
		c.PC++
	}
}

// alu implements the 6 Hack ALU control bits (zx, nx, zy, ny, f, no) as
// zx<<5 | nx<<4 | zy<<3 | ny<<2 | f<<1 | no.
func alu(x, y int16, ctrl uint16) int16 {
	if ctrl&0x20 != 0 {
		x = 0
	}
	if ctrl&0x10 != 0 {
		x = ^x
	}
	if ctrl&0x08 != 0 {
		y = 0
	}
	if ctrl&0x04 != 0 {
		y = ^y
	}
	var out int16
	if ctrl&0x02 != 0 {
		out = x + y
	} else {
		out = x & y
	}
	if ctrl&0x01 != 0 {
		out = ^out
	}
	return out
}

func jump(result int16, jumpBits uint16) bool {
	switch jumpBits {
	case 0:
		return false
	case 1: // JGT
		return result > 0
	case 2: // JEQ
		return result == 0
	case 3: // JGE
		return result >= 0
	case 4: // JLT
		return result < 0
	case 5: // JNE
		return result != 0
	case 6: // JLE
		return result <= 0
	case 7: // JMP
		return true
	default:
		return false
	}
}
