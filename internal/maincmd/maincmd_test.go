package maincmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/mna/mainer"
	"github.com/stretchr/testify/require"
)

func stdio() (mainer.Stdio, *bytes.Buffer, *bytes.Buffer) {
	var out, errBuf bytes.Buffer
	return mainer.Stdio{Stdout: &out, Stderr: &errBuf, Stdin: bytes.NewReader(nil)}, &out, &errBuf
}

func TestTranslatorCmdHelp(t *testing.T) {
	c := &TranslatorCmd{}
	sio, out, _ := stdio()
	code := c.Main([]string{translatorBin, "-h"}, sio)
	require.Equal(t, mainer.Success, code)
	require.Contains(t, out.String(), "usage:")
}

func TestTranslatorCmdRequiresOnePath(t *testing.T) {
	c := &TranslatorCmd{args: []string{}}
	require.Error(t, c.Validate())
}

func TestTranslatorCmdRejectsBadBootstrapMode(t *testing.T) {
	c := &TranslatorCmd{args: []string{"x.vm"}, Bootstrap: "sometimes"}
	require.Error(t, c.Validate())
}

func TestTranslatorCmdTranslatesFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "Foo.vm")
	require.NoError(t, os.WriteFile(src, []byte("push constant 1\n"), 0o644))

	c := &TranslatorCmd{}
	sio, out, errBuf := stdio()
	code := c.Main([]string{translatorBin, src}, sio)
	require.Equal(t, mainer.Success, code, errBuf.String())
	require.Contains(t, out.String(), "@1")
}

func TestAssemblerCmdHelp(t *testing.T) {
	c := &AssemblerCmd{}
	sio, out, _ := stdio()
	code := c.Main([]string{assemblerBin, "-h"}, sio)
	require.Equal(t, mainer.Success, code)
	require.Contains(t, out.String(), "usage:")
}

func TestAssemblerCmdAssemblesFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "Foo.asm")
	require.NoError(t, os.WriteFile(src, []byte("@2\nD=A\n"), 0o644))

	c := &AssemblerCmd{}
	sio, out, errBuf := stdio()
	code := c.Main([]string{assemblerBin, src}, sio)
	require.Equal(t, mainer.Success, code, errBuf.String())
	require.Len(t, out.String(), 16*2+2)
}

func TestAssemblerCmdRequiresOneFile(t *testing.T) {
	c := &AssemblerCmd{args: []string{}}
	require.Error(t, c.Validate())
}
