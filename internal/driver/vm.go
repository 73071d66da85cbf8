// Package driver wires the VM translator (C1+C2) and the assembler
// (C3+C4+C5) stages into whole-file and whole-directory operations
// (C6): enumerating a directory's .vm units, deciding whether to emit
// the bootstrap prologue, and composing stage output in order.
package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shmuga/nand2tetris/lang/asmenc"
	"github.com/shmuga/nand2tetris/lang/asmlex"
	"github.com/shmuga/nand2tetris/lang/symtab"
	"github.com/shmuga/nand2tetris/lang/vmcodegen"
	"github.com/shmuga/nand2tetris/lang/vmopcode"
)

// BootstrapMode controls whether the translator prepends the
// SP=256/call Sys.init prologue to a unit's output.
type BootstrapMode int

const (
	// BootstrapAuto emits the prologue only when translating more than
	// one source file, matching the convention the Hack toolchain uses
	// for a single Main.vm versus a full OS+program directory.
	BootstrapAuto BootstrapMode = iota
	BootstrapAlways
	BootstrapNever
)

// Options configures a translation run.
type Options struct {
	Bootstrap BootstrapMode
}

func (o Options) shouldBootstrap(nfiles int) bool {
	switch o.Bootstrap {
	case BootstrapAlways:
		return true
	case BootstrapNever:
		return false
	default:
		return nfiles > 1
	}
}

// TranslateSource translates a single unit's VM source text into Hack
// assembly, without any bootstrap prologue. name is used both for
// diagnostics and to derive the static-segment mangling.
func TranslateSource(name string, src []byte) (string, error) {
	ops, err := vmopcode.Parse(name, src)
	if err != nil {
		return "", err
	}
	return vmcodegen.Generate(name, ops)
}

// TranslateFile reads and translates the single file at path.
func TranslateFile(path string, opts Options) (string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	body, err := TranslateSource(path, src)
	if err != nil {
		return "", err
	}
	if opts.shouldBootstrap(1) {
		return vmcodegen.Bootstrap() + body, nil
	}
	return body, nil
}

// TranslateDir translates every .vm file directly inside dir, in
// lexical filename order, concatenating their output. When more than
// one file is found (or opts.Bootstrap forces it), the bootstrap
// prologue is emitted first.
func TranslateDir(dir string, opts Options) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".vm") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	if len(names) == 0 {
		return "", fmt.Errorf("%s: no .vm files found", dir)
	}

	var b strings.Builder
	if opts.shouldBootstrap(len(names)) {
		b.WriteString(vmcodegen.Bootstrap())
	}
	for _, name := range names {
		path := filepath.Join(dir, name)
		src, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		body, err := TranslateSource(path, src)
		if err != nil {
			return "", err
		}
		b.WriteString(body)
	}
	return b.String(), nil
}

// Assemble lexes and encodes Hack assembly text into 16-bit binary
// lines joined by newlines, each terminated with a trailing newline.
func Assemble(name string, src []byte) (string, error) {
	table := symtab.New()
	instrs, err := asmlex.Tokenize(name, src, table)
	if err != nil {
		return "", err
	}
	lines, err := asmenc.EncodeAll(instrs, table)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// AssembleFile reads and assembles the file at path.
func AssembleFile(path string) (string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return Assemble(path, src)
}
