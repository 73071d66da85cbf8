package hacksim

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shmuga/nand2tetris/internal/driver"
)

func assembleAndRun(t *testing.T, vmSrc string) *CPU {
	t.Helper()
	asm, err := driver.TranslateSource("Foo.vm", []byte(vmSrc))
	require.NoError(t, err)
	bin, err := driver.Assemble("Foo.asm", []byte(asm))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(bin, "\n"), "\n")
	cpu, err := Load(lines)
	require.NoError(t, err)
	cpu.RAM[0] = 256 // conventional Hack reset state: SP starts at the stack base
	require.NoError(t, cpu.Run())
	return cpu
}

func TestPushPushAddLeavesSumOnStack(t *testing.T) {
	cpu := assembleAndRun(t, "push constant 7\npush constant 8\nadd\n")
	require.Equal(t, int16(257), cpu.RAM[0], "SP should have advanced to 257")
	require.Equal(t, int16(15), cpu.RAM[256])
}

func TestEqPushesTrueOrFalse(t *testing.T) {
	cpu := assembleAndRun(t, "push constant 5\npush constant 5\neq\n")
	require.Equal(t, int16(257), cpu.RAM[0])
	require.Equal(t, int16(-1), cpu.RAM[256])
}

func TestNeqComparisonPushesZero(t *testing.T) {
	cpu := assembleAndRun(t, "push constant 5\npush constant 6\neq\n")
	require.Equal(t, int16(0), cpu.RAM[256])
}

func TestCallReturnLeavesDoubledValueOnStack(t *testing.T) {
	// Main.double is placed ahead of Main.main in ROM so that Main.main,
	// the last thing in the file, can end exactly at the call's return
	// label: falling through it then runs off the end of ROM instead of
	// re-entering already-executed code. A leading jump skips over
	// Main.double's body so execution still starts in Main.main.
	asm := "@MAIN_START\n0;JMP\n"
	asm += mustTranslate(t, "Main.double", `
function Main.double 0
push argument 0
push argument 0
add
return
`)
	asm += "(MAIN_START)\n"
	asm += mustTranslate(t, "Main.main", `
function Main.main 0
push constant 21
call Main.double 1
`)
	bin, err := driver.Assemble("Foo.asm", []byte(asm))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(bin, "\n"), "\n")
	cpu, err := Load(lines)
	require.NoError(t, err)
	cpu.RAM[0] = 256
	require.NoError(t, cpu.Run())

	require.Equal(t, int16(257), cpu.RAM[0], "the call's pushed frame and argument must be fully unwound")
	require.Equal(t, int16(42), cpu.RAM[256])
}

func mustTranslate(t *testing.T, name, src string) string {
	t.Helper()
	out, err := driver.TranslateSource(name+".vm", []byte(src))
	require.NoError(t, err)
	return out
}
