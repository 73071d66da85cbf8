// Package maincmd implements the command-line front ends shared by
// cmd/translator and cmd/assembler: flag parsing and stdio plumbing
// via github.com/mna/mainer, with the actual work delegated to
// internal/driver.
package maincmd

import (
	"fmt"
	"os"

	"github.com/mna/mainer"

	"github.com/shmuga/nand2tetris/internal/driver"
)

// TranslatorCmd is the CLI front end for the VM translator: stack-VM
// source (one file or a directory of .vm files) in, Hack assembly
// text out.
type TranslatorCmd struct {
	BuildVersion string
	BuildDate    string

	Help      bool   `flag:"h,help"`
	Version   bool   `flag:"v,version"`
	Bootstrap string `flag:"bootstrap"`
	Output    string `flag:"o,output"`

	args []string
}

const translatorBin = "translator"

var translatorUsage = fmt.Sprintf(`usage: %s [<option>...] <path>
       %[1]s -h|--help
       %[1]s -v|--version

Translates Hack VM source into Hack assembly. <path> may name a
single .vm file or a directory containing one or more .vm files.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       -o --output <file>        Write assembly to <file> instead of
                                 stdout.
       --bootstrap <mode>        One of "auto" (default), "always",
                                 "never": whether to emit the SP=256
                                 / call Sys.init prologue.
`, translatorBin)

func (c *TranslatorCmd) SetArgs(args []string)    { c.args = args }
func (c *TranslatorCmd) SetFlags(map[string]bool) {}

func (c *TranslatorCmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}
	if len(c.args) != 1 {
		return fmt.Errorf("expected exactly one <path> argument, got %d", len(c.args))
	}
	switch c.Bootstrap {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("invalid --bootstrap mode %q", c.Bootstrap)
	}
	return nil
}

func (c *TranslatorCmd) bootstrapMode() driver.BootstrapMode {
	switch c.Bootstrap {
	case "always":
		return driver.BootstrapAlways
	case "never":
		return driver.BootstrapNever
	default:
		return driver.BootstrapAuto
	}
}

func (c *TranslatorCmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{EnvVars: false, EnvPrefix: translatorBin + "_"}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, translatorUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, translatorUsage)
		return mainer.Success
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", translatorBin, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	path := c.args[0]
	opts := driver.Options{Bootstrap: c.bootstrapMode()}

	info, err := os.Stat(path)
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return mainer.Failure
	}

	var out string
	if info.IsDir() {
		out, err = driver.TranslateDir(path, opts)
	} else {
		out, err = driver.TranslateFile(path, opts)
	}
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return mainer.Failure
	}

	if err := c.writeOutput(stdio, out); err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return mainer.Failure
	}
	return mainer.Success
}

func (c *TranslatorCmd) writeOutput(stdio mainer.Stdio, out string) error {
	if c.Output == "" {
		_, err := fmt.Fprint(stdio.Stdout, out)
		return err
	}
	return os.WriteFile(c.Output, []byte(out), 0o644)
}

// AssemblerCmd is the CLI front end for the assembler: Hack assembly
// text in, 16-bit binary text out.
type AssemblerCmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool   `flag:"h,help"`
	Version bool   `flag:"v,version"`
	Output  string `flag:"o,output"`

	args []string
}

const assemblerBin = "assembler"

var assemblerUsage = fmt.Sprintf(`usage: %s [<option>...] <file.asm>
       %[1]s -h|--help
       %[1]s -v|--version

Assembles Hack assembly text into 16-bit binary text.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       -o --output <file>        Write binary text to <file> instead
                                 of stdout.
`, assemblerBin)

func (c *AssemblerCmd) SetArgs(args []string)    { c.args = args }
func (c *AssemblerCmd) SetFlags(map[string]bool) {}

func (c *AssemblerCmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}
	if len(c.args) != 1 {
		return fmt.Errorf("expected exactly one <file.asm> argument, got %d", len(c.args))
	}
	return nil
}

func (c *AssemblerCmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{EnvVars: false, EnvPrefix: assemblerBin + "_"}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, assemblerUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, assemblerUsage)
		return mainer.Success
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", assemblerBin, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	out, err := driver.AssembleFile(c.args[0])
	if err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return mainer.Failure
	}

	if c.Output == "" {
		fmt.Fprint(stdio.Stdout, out)
	} else if err := os.WriteFile(c.Output, []byte(out), 0o644); err != nil {
		fmt.Fprintln(stdio.Stderr, err)
		return mainer.Failure
	}
	return mainer.Success
}
