package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/lookbusy1344/arm-toolchain/config"
	"github.com/lookbusy1344/arm-toolchain/disasm"
	"github.com/lookbusy1344/arm-toolchain/tui"
)

func main() {
	var (
		baseAddr   = flag.String("b", "0", "Base address of the image")
		symbolFile = flag.String("s", "", "Symbol file (hex address and name per line)")
		tuiMode    = flag.Bool("tui", false, "Browse the image interactively")
	)

	flag.Usage = printUsage
	flag.Parse()

	if flag.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}
	inputFile := flag.Arg(0)

	base64, err := strconv.ParseUint(*baseAddr, 0, 32)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bad -b value %q\n", *baseAddr)
		os.Exit(1)
	}
	base := uint32(base64)

	data, err := os.ReadFile(inputFile) // #nosec G304 -- user-provided image path
	if err != nil {
		fmt.Fprintf(os.Stderr, "input not readable: %v\n", err)
		os.Exit(1)
	}

	symbols := map[uint32]string{}
	if *symbolFile != "" {
		f, err := os.Open(*symbolFile) // #nosec G304 -- user-provided symbol path
		if err != nil {
			fmt.Fprintf(os.Stderr, "input not readable: %v\n", err)
			os.Exit(1)
		}
		symbols, err = disasm.LoadSymbolFile(f)
		f.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}

	if *tuiMode {
		cfg, err := config.Load(config.ConfigPath())
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		viewer := tui.NewViewer(data, base, symbols, cfg)
		if err := viewer.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("; Disassembly of %s\n", inputFile)
	fmt.Printf("; Base address: 0x%08X\n\n", base)

	d := disasm.New(symbols)
	if err := d.Dump(os.Stdout, data, base); err != nil {
		fmt.Fprintf(os.Stderr, "output not writable: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: disasm [options] <input.bin>")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Options:")
	flag.PrintDefaults()
}
