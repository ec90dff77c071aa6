// Command spvlowerc runs the stage-lowering pipeline over a textual
// module and prints the emitted target operations.
//
// Usage:
//
//	spvlowerc [options] <input.sir>
//
// Examples:
//
//	spvlowerc shader.sir             # Lower and print target ops
//	spvlowerc -dump shader.sir       # Also print the lowered module
//	spvlowerc -o ops.txt shader.sir  # Write target ops to a file
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/tliron/commonlog"

	"github.com/gogpu/spvlower"
	"github.com/gogpu/spvlower/asm"
	"github.com/gogpu/spvlower/builder"
	"github.com/gogpu/spvlower/lower"
)

var (
	output    = flag.String("o", "", "output file (default: stdout)")
	dump      = flag.Bool("dump", false, "print the lowered module as well")
	validate  = flag.Bool("validate", true, "validate the module between passes")
	verbosity = flag.Int("v", 0, "log verbosity (0 = quiet)")
	version   = flag.Bool("version", false, "print version")
)

const spvlowerVersion = "0.1.0-dev"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Printf("spvlowerc version %s\n", spvlowerVersion)
		return
	}

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Error: no input file specified")
		usage()
		os.Exit(1)
	}

	commonlog.Configure(*verbosity, nil)

	startTime := time.Now()
	inputPath := args[0]

	source, err := os.ReadFile(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	module, err := asm.Parse(inputPath, string(source))
	if err != nil {
		asm.ReportParseError(string(source), err)
		color.Red("Compilation failed after %s", time.Since(startTime).Round(time.Microsecond))
		os.Exit(1)
	}

	rec := builder.NewRecorder()
	opts := lower.Options{Validate: *validate}
	if err := spvlower.LowerWithOptions(module, rec, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Lowering error: %v\n", err)
		color.Red("Compilation failed after %s", time.Since(startTime).Round(time.Microsecond))
		os.Exit(1)
	}

	out := rec.String()
	if *dump {
		out += "\n" + asm.Print(module)
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(out), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			os.Exit(1)
		}
	} else {
		fmt.Print(out)
	}

	color.Green("Lowered %s (%d ops) in %s", inputPath, rec.Count(), time.Since(startTime).Round(time.Microsecond))
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: spvlowerc [options] <input.sir>\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  spvlowerc shader.sir            Lower and print target ops\n")
	fmt.Fprintf(os.Stderr, "  spvlowerc -dump shader.sir      Also print the lowered module\n")
	fmt.Fprintf(os.Stderr, "  spvlowerc -o ops.txt shader.sir Write target ops to a file\n")
}
