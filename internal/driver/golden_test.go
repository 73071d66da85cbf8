package driver

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/shmuga/nand2tetris/internal/filetest"
)

var testUpdateAssembleTests = flag.Bool("test.update-assemble-tests", false, "If set, replace expected assembler test results with actual results.")

// TestAssembleGolden assembles every testdata/in/*.asm fixture and
// diffs the binary output (and any error) against testdata/out.
func TestAssembleGolden(t *testing.T) {
	srcDir, resultDir := filepath.Join("testdata", "in"), filepath.Join("testdata", "out")

	for _, fi := range filetest.SourceFiles(t, srcDir, ".asm") {
		t.Run(fi.Name(), func(t *testing.T) {
			src, err := os.ReadFile(filepath.Join(srcDir, fi.Name()))
			if err != nil {
				t.Fatal(err)
			}

			var errOut string
			out, aerr := Assemble(fi.Name(), src)
			if aerr != nil {
				errOut = fmt.Sprintf("%s\n", aerr)
			}

			filetest.DiffOutput(t, fi, out, resultDir, testUpdateAssembleTests)
			filetest.DiffErrors(t, fi, errOut, resultDir, testUpdateAssembleTests)
		})
	}
}
