package vmcodegen

import (
	"fmt"
	"strings"

	"github.com/shmuga/nand2tetris/lang/vmopcode"
)

// generator accumulates the assembly text for one translation unit. Its
// stack-helper methods mirror the small vocabulary of macros the spec
// calls out: s_inc/s_dec (SP +-1), s_pop (decrement then address the
// popped slot), s_to_d/d_to_s (move *SP to/from D), num_to_d (load an
// immediate into D).
type generator struct {
	ctx *Context
	buf strings.Builder
}

// Generate translates opcodes into Hack assembly text for the
// translation unit named by path (used only to derive the static
// segment's mangled name).
func Generate(path string, opcodes []vmopcode.Opcode) (string, error) {
	g := &generator{ctx: NewContext(path)}
	for _, op := range opcodes {
		if err := g.emit(op); err != nil {
			return "", fmt.Errorf("%s: %w", path, err)
		}
	}
	return g.buf.String(), nil
}

// Bootstrap returns the prologue emitted ahead of a multi-file
// translation: it sets SP to 256 and calls Sys.init with no arguments.
func Bootstrap() string {
	g := &generator{ctx: NewContext("Entry")}
	g.writeAll("@256", "D=A", "@SP", "M=D")
	g.call(vmopcode.Opcode{Kind: vmopcode.Call, Name: "Sys.init", Index: 0})
	return g.buf.String()
}

func (g *generator) emit(op vmopcode.Opcode) error {
	switch op.Kind {
	case vmopcode.Push:
		return g.push(op)
	case vmopcode.Pop:
		return g.pop(op)
	case vmopcode.Add:
		g.comment("add")
		g.binary("+")
	case vmopcode.Sub:
		g.comment("sub")
		g.binary("-")
	case vmopcode.And:
		g.comment("and")
		g.binary("&")
	case vmopcode.Or:
		g.comment("or")
		g.binary("|")
	case vmopcode.Neg:
		g.comment("neg")
		g.unary("-")
	case vmopcode.Not:
		g.comment("not")
		g.unary("!")
	case vmopcode.Eq:
		g.comment("eq")
		g.logical("JEQ")
	case vmopcode.Gt:
		g.comment("gt")
		g.logical("JGT")
	case vmopcode.Lt:
		g.comment("lt")
		g.logical("JLT")
	case vmopcode.Label:
		g.label(op)
	case vmopcode.Goto:
		g.goTo(op)
	case vmopcode.IfGoto:
		g.ifGoto(op)
	case vmopcode.Function:
		g.function(op)
	case vmopcode.Call:
		g.call(op)
	case vmopcode.Return:
		g.ret()
	default:
		return fmt.Errorf("unhandled opcode kind %s", op.Kind)
	}
	return nil
}

// --- stack helpers ---------------------------------------------------

func (g *generator) write(line string) {
	g.buf.WriteString(line)
	g.buf.WriteByte('\n')
}

func (g *generator) writeAll(lines ...string) {
	for _, l := range lines {
		g.write(l)
	}
}

func (g *generator) comment(s string) { g.write("// " + s) }

func (g *generator) sInc() { g.writeAll("@SP", "M=M+1") }
func (g *generator) sDec() { g.writeAll("@SP", "M=M-1") }

// sPop decrements SP then addresses the popped slot (A = SP after the
// decrement). Callers still need to move *SP to D themselves.
func (g *generator) sPop() { g.writeAll("@SP", "M=M-1", "A=M") }

func (g *generator) sToD() { g.writeAll("@SP", "A=M", "D=M") }
func (g *generator) dToS() { g.writeAll("@SP", "A=M", "M=D") }

func (g *generator) numToD(n int) { g.writeAll(fmt.Sprintf("@%d", n), "D=A") }

func (g *generator) addrValToD(addr string) { g.writeAll(fmt.Sprintf("@%s", addr), "D=M") }

// pushD pushes the current value of D and advances SP; used throughout
// the calling convention to push saved segments and the return address.
func (g *generator) pushD() {
	g.dToS()
	g.sInc()
}

// --- arithmetic / logic ----------------------------------------------

func (g *generator) binary(op string) {
	g.sPop()
	g.write("D=M")
	g.sPop()
	g.write(fmt.Sprintf("M=M%sD", op))
	g.sInc()
}

func (g *generator) unary(op string) {
	g.sPop()
	g.write(fmt.Sprintf("M=%sM", op))
	g.sInc()
}

// logical implements eq/gt/lt: subtract, test D against the jump
// mnemonic, and write 0 or -1 into the result slot. Both the TRUE and
// FINISH label definitions are always emitted so the branches stay
// balanced.
func (g *generator) logical(jump string) {
	k := g.ctx.nextLabel()
	trueLabel := fmt.Sprintf("%s$TRUE_%d", g.ctx.CurrentFunction, k)
	finishLabel := fmt.Sprintf("%s$FINISH_%d", g.ctx.CurrentFunction, k)

	g.binary("-")
	g.sPop()
	g.writeAll(
		"D=M",
		"@"+trueLabel,
		"D;"+jump,
		"@SP", "A=M", "M=0",
		"@"+finishLabel,
		"0;JMP",
		"("+trueLabel+")",
		"@SP", "A=M", "M=-1",
		"("+finishLabel+")",
	)
	g.sInc()
}

// --- memory segments ---------------------------------------------------

var segmentBase = map[vmopcode.Segment]string{
	vmopcode.SegLocal:    "LCL",
	vmopcode.SegArgument: "ARG",
	vmopcode.SegThis:     "THIS",
	vmopcode.SegThat:     "THAT",
}

func pointerRegister(i int) string {
	if i == 1 {
		return "THAT"
	}
	return "THIS"
}

func (g *generator) push(op vmopcode.Opcode) error {
	g.comment(fmt.Sprintf("push %s %d", op.Segment, op.Index))
	switch op.Segment {
	case vmopcode.SegConstant:
		g.numToD(op.Index)
		g.pushD()
	case vmopcode.SegLocal, vmopcode.SegArgument, vmopcode.SegThis, vmopcode.SegThat:
		g.numToD(op.Index)
		g.writeAll("@"+segmentBase[op.Segment], "A=M+D", "D=M")
		g.pushD()
	case vmopcode.SegTemp:
		g.write(fmt.Sprintf("@%d", 5+op.Index))
		g.write("D=M")
		g.pushD()
	case vmopcode.SegPointer:
		g.write("@" + pointerRegister(op.Index))
		g.write("D=M")
		g.pushD()
	case vmopcode.SegStatic:
		g.write(fmt.Sprintf("@%s.%d", g.ctx.Filename, op.Index))
		g.write("D=M")
		g.pushD()
	default:
		return fmt.Errorf("unknown segment %s", op.Segment)
	}
	return nil
}

func (g *generator) pop(op vmopcode.Opcode) error {
	g.comment(fmt.Sprintf("pop %s %d", op.Segment, op.Index))
	switch op.Segment {
	case vmopcode.SegConstant:
		return fmt.Errorf("cannot pop into the constant segment")
	case vmopcode.SegLocal, vmopcode.SegArgument, vmopcode.SegThis, vmopcode.SegThat:
		// Compute the destination address by value first, stash it in the
		// symbolic scratch variable TEMP (resolved by the assembler's
		// variable allocator), then pop the stack top into it.
		g.numToD(op.Index)
		g.writeAll("@"+segmentBase[op.Segment], "A=M+D", "D=A", "@TEMP", "M=D")
		g.sDec()
		g.sToD()
		g.writeAll("@TEMP", "A=M", "M=D")
	case vmopcode.SegTemp:
		g.sDec()
		g.sToD()
		g.write(fmt.Sprintf("@%d", 5+op.Index))
		g.write("M=D")
	case vmopcode.SegPointer:
		g.sDec()
		g.sToD()
		g.write("@" + pointerRegister(op.Index))
		g.write("M=D")
	case vmopcode.SegStatic:
		g.sDec()
		g.sToD()
		g.write(fmt.Sprintf("@%s.%d", g.ctx.Filename, op.Index))
		g.write("M=D")
	default:
		return fmt.Errorf("unknown segment %s", op.Segment)
	}
	return nil
}

// --- control flow ------------------------------------------------------

func (g *generator) label(op vmopcode.Opcode) {
	g.comment("label " + op.Name)
	g.write(fmt.Sprintf("(%s$%s)", g.ctx.CurrentFunction, op.Name))
}

func (g *generator) goTo(op vmopcode.Opcode) {
	g.comment("goto " + op.Name)
	g.writeAll(fmt.Sprintf("@%s$%s", g.ctx.CurrentFunction, op.Name), "0;JMP")
}

func (g *generator) ifGoto(op vmopcode.Opcode) {
	g.comment("if-goto " + op.Name)
	g.sDec()
	g.sToD()
	g.writeAll(fmt.Sprintf("@%s$%s", g.ctx.CurrentFunction, op.Name), "D;JNE")
}

// --- calling convention -------------------------------------------------

func (g *generator) function(op vmopcode.Opcode) {
	g.comment(fmt.Sprintf("function %s %d", op.Name, op.Index))
	g.ctx.CurrentFunction = op.Name
	g.write(fmt.Sprintf("(%s)", op.Name))
	for i := 0; i < op.Index; i++ {
		g.writeAll("@SP", "A=M", "M=0")
		g.sInc()
	}
}

func (g *generator) call(op vmopcode.Opcode) {
	g.comment(fmt.Sprintf("call %s %d from %s", op.Name, op.Index, g.ctx.CurrentFunction))
	returnLabel := fmt.Sprintf("%s$ret.%d", g.ctx.CurrentFunction, g.ctx.nextLabel())

	g.writeAll("@"+returnLabel, "D=A")
	g.pushD()
	g.addrValToD("LCL")
	g.pushD()
	g.addrValToD("ARG")
	g.pushD()
	g.addrValToD("THIS")
	g.pushD()
	g.addrValToD("THAT")
	g.pushD()

	// ARG = SP - 5 - nargs
	g.writeAll("@SP", "D=M", "@5", "D=D-A", fmt.Sprintf("@%d", op.Index), "D=D-A", "@ARG", "M=D")
	// LCL = SP
	g.writeAll("@SP", "D=M", "@LCL", "M=D")

	g.writeAll("@"+op.Name, "0;JMP")
	g.write(fmt.Sprintf("(%s)", returnLabel))
}

func (g *generator) ret() {
	g.comment("return " + g.ctx.CurrentFunction)

	// R13 = frame = LCL
	g.addrValToD("LCL")
	g.writeAll("@R13", "M=D")

	// R14 = *(frame - 5), the caller's return address
	g.writeAll("@5", "A=D-A", "D=M", "@R14", "M=D")

	// *ARG = pop(); SP = ARG + 1
	g.sPop()
	g.writeAll("D=M", "@ARG", "A=M", "M=D")
	g.writeAll("@ARG", "D=M+1", "@SP", "M=D")

	// restore THAT, THIS, ARG, LCL from frame-1..frame-4
	for i, reg := range []string{"THAT", "THIS", "ARG", "LCL"} {
		g.addrValToD("R13")
		g.writeAll(fmt.Sprintf("@%d", i+1), "A=D-A", "D=M", "@"+reg, "M=D")
	}

	// jump to the caller's return address
	g.addrValToD("R14")
	g.writeAll("A=D", "0;JMP")
}
