package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lookbusy1344/arm-toolchain/encoder"
	"github.com/lookbusy1344/arm-toolchain/objfile"
	"github.com/lookbusy1344/arm-toolchain/parser"
)

func main() {
	var (
		outputFile  = flag.String("o", "output.bin", "Output binary file")
		objectFile  = flag.String("obj", "", "Also write a linkable object file")
		dumpSymbols = flag.Bool("dump-symbols", false, "Dump symbol table and exit")
	)

	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}
	inputFile := flag.Arg(0)

	src, err := os.ReadFile(inputFile) // #nosec G304 -- user-provided source path
	if err != nil {
		fmt.Fprintf(os.Stderr, "input not readable: %v\n", err)
		os.Exit(1)
	}

	prog := parser.Parse(string(src), inputFile)

	if *dumpSymbols {
		fmt.Print(encoder.SymbolDump(prog))
		if prog.Errors.HasErrors() {
			fmt.Print(prog.Errors.Error())
			os.Exit(1)
		}
		os.Exit(0)
	}

	enc := encoder.NewEncoder(prog.SymbolTable)
	words, encErrs := enc.EncodeProgram(prog)

	// Report everything; failed lines already produced zero words so the
	// output keeps its addresses.
	fmt.Print(prog.Errors.PrintWarnings())
	fmt.Print(encErrs.PrintWarnings())
	failed := prog.Errors.HasErrors() || encErrs.HasErrors()
	if failed {
		fmt.Println("Assembly errors:")
		fmt.Print(prog.Errors.Error())
		fmt.Print(encErrs.Error())
	}

	out, err := os.Create(*outputFile) // #nosec G304 -- user-provided output path
	if err != nil {
		fmt.Fprintf(os.Stderr, "output not writable: %v\n", err)
		os.Exit(1)
	}
	if err := encoder.WriteImage(out, words); err != nil {
		fmt.Fprintf(os.Stderr, "output not writable: %v\n", err)
		out.Close()
		os.Exit(1)
	}
	out.Close()

	if *objectFile != "" {
		obj := encoder.BuildObject(prog, words)
		f, err := os.Create(*objectFile) // #nosec G304 -- user-provided output path
		if err != nil {
			fmt.Fprintf(os.Stderr, "output not writable: %v\n", err)
			os.Exit(1)
		}
		if err := (objfile.TextWriter{}).WriteObject(f, obj); err != nil {
			fmt.Fprintf(os.Stderr, "output not writable: %v\n", err)
			f.Close()
			os.Exit(1)
		}
		f.Close()
	}

	if failed {
		os.Exit(1)
	}

	fmt.Printf("Assembly successful: %d instructions\n", len(words))
	fmt.Printf("Output written to: %s\n", *outputFile)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: assembler [options] <input.s>")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Options:")
	flag.PrintDefaults()
}
