// Package vmcodegen implements the VM codegen stage (C2): it walks the
// opcode list produced by lang/vmopcode and emits symbolic Hack assembly
// text, one translation unit at a time.
package vmcodegen

import (
	"path/filepath"
	"strings"
)

// globalFunction is the sentinel current-function name in effect before
// the first "function" opcode of a translation unit is seen.
const globalFunction = "Global"

// Context carries the per-file state the codegen needs to thread across
// opcodes: the static-segment mangling name, the function whose labels
// are currently in scope, and the file-scoped counter used to keep
// compare/call labels unique.
type Context struct {
	Filename        string
	CurrentFunction string

	labelCounter int
}

// NewContext derives a Context for translating the named source file.
// The static segment mangles to "<basename-without-extension>.<i>", so
// only the base name without its extension is retained here.
func NewContext(path string) *Context {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return &Context{Filename: base, CurrentFunction: globalFunction}
}

func (c *Context) nextLabel() int {
	n := c.labelCounter
	c.labelCounter++
	return n
}
