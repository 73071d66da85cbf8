package vmopcode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseBasicOpcodes(t *testing.T) {
	src := `
// push 7 and add it to 8
push constant 7
push constant 8
add
`
	ops, err := Parse("Foo.vm", []byte(src))
	require.NoError(t, err)
	require.Equal(t, []Opcode{
		{Kind: Push, Segment: SegConstant, Index: 7, Pos: ops[0].Pos},
		{Kind: Push, Segment: SegConstant, Index: 8, Pos: ops[1].Pos},
		{Kind: Add, Pos: ops[2].Pos},
	}, ops)
}

func TestParseCommentVariants(t *testing.T) {
	src := "push constant 1 / a stray slash, not a real comment marker\nadd //real comment\n"
	ops, err := Parse("Foo.vm", []byte(src))
	require.NoError(t, err)
	require.Len(t, ops, 2)
	require.Equal(t, Push, ops[0].Kind)
	require.Equal(t, Add, ops[1].Kind)
}

func TestParseControlFlowAndCalls(t *testing.T) {
	src := `
label LOOP
goto LOOP
if-goto LOOP
function Main.f 2
call Main.f 2
return
`
	ops, err := Parse("Foo.vm", []byte(src))
	require.NoError(t, err)
	require.Equal(t, Label, ops[0].Kind)
	require.Equal(t, "LOOP", ops[0].Name)
	require.Equal(t, Goto, ops[1].Kind)
	require.Equal(t, IfGoto, ops[2].Kind)
	require.Equal(t, Function, ops[3].Kind)
	require.Equal(t, "Main.f", ops[3].Name)
	require.Equal(t, 2, ops[3].Index)
	require.Equal(t, Call, ops[4].Kind)
	require.Equal(t, Return, ops[5].Kind)
}

func TestParseUnknownOpcodeIsFatal(t *testing.T) {
	_, err := Parse("Foo.vm", []byte("frobnicate"))
	require.Error(t, err)
	var perr ErrParse
	require.ErrorAs(t, err, &perr)
	require.Len(t, perr, 1)
}

func TestParseUnknownSegmentIsFatal(t *testing.T) {
	_, err := Parse("Foo.vm", []byte("push bogus 0"))
	require.Error(t, err)
}

func TestParseBadIndexIsFatal(t *testing.T) {
	_, err := Parse("Foo.vm", []byte("push constant abc"))
	require.Error(t, err)
}

func TestParseStopsAfterMaxErrors(t *testing.T) {
	src := ""
	for i := 0; i < maxErrors+5; i++ {
		src += "bogus\n"
	}
	_, err := Parse("Foo.vm", []byte(src))
	require.Error(t, err)
	var perr ErrParse
	require.ErrorAs(t, err, &perr)
	require.LessOrEqual(t, len(perr), maxErrors)
}
