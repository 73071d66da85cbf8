// Package symtab implements the assembler's symbol table (C4): the
// predefined register/IO symbols, labels registered during the
// lexer's first pass, and variables lazily allocated during the
// second pass starting at RAM address 16.
package symtab

import "github.com/dolthub/swiss"

const firstVariableAddress = 16

// Table maps assembly symbols (labels, variables, and the predefined
// names) to RAM or ROM addresses.
type Table struct {
	m        *swiss.Map[string, uint16]
	lastUsed uint16
}

// New returns a Table preloaded with the Hack platform's predefined
// symbols.
func New() *Table {
	t := &Table{
		m:        swiss.NewMap[string, uint16](32),
		lastUsed: firstVariableAddress - 1,
	}
	t.init()
	return t
}

func (t *Table) init() {
	t.Insert("SP", 0)
	t.Insert("LCL", 1)
	t.Insert("ARG", 2)
	t.Insert("THIS", 3)
	t.Insert("THAT", 4)
	t.Insert("SCREEN", 16384)
	t.Insert("KBD", 24576)
	for i := uint16(0); i <= 15; i++ {
		t.Insert(registerName(i), i)
	}
}

func registerName(i uint16) string {
	const digits = "0123456789"
	if i < 10 {
		return "R" + string(digits[i])
	}
	return "R1" + string(digits[i-10])
}

// Insert records symbol unconditionally, overwriting any prior value.
// Used by the lexer's first pass to register label addresses.
func (t *Table) Insert(symbol string, address uint16) {
	t.m.Put(symbol, address)
}

// Get looks up symbol, reporting whether it is known.
func (t *Table) Get(symbol string) (uint16, bool) {
	return t.m.Get(symbol)
}

// Append returns the address bound to symbol, allocating the next free
// RAM address starting at 16 if symbol is not yet known. It is
// idempotent: repeated calls for the same unknown symbol return the
// same address.
func (t *Table) Append(symbol string) uint16 {
	if addr, ok := t.m.Get(symbol); ok {
		return addr
	}
	t.lastUsed++
	t.m.Put(symbol, t.lastUsed)
	return t.lastUsed
}
