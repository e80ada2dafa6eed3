package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/lookbusy1344/arm-toolchain/config"
	"github.com/lookbusy1344/arm-toolchain/linker"
	"github.com/lookbusy1344/arm-toolchain/objfile"
)

func main() {
	var outputFile, format, textAddr, dataAddr, configFile string
	var showMap bool

	flag.StringVar(&outputFile, "o", "", "Output file (required)")
	flag.StringVar(&outputFile, "output", "", "Output file (required)")
	flag.StringVar(&format, "f", "", "Output format: bin or hex")
	flag.StringVar(&format, "format", "", "Output format: bin or hex")
	flag.StringVar(&textAddr, "text-addr", "", "Text section base address")
	flag.StringVar(&dataAddr, "data-addr", "", "Data section base address")
	flag.StringVar(&configFile, "config", "", "Layout config file (default: platform config path)")
	flag.BoolVar(&showMap, "map", false, "Print a link map to stdout")

	flag.Usage = printUsage
	flag.Parse()

	if outputFile == "" || flag.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}

	if configFile == "" {
		configFile = config.ConfigPath()
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	layout := linker.Layout{
		Text: uint32(cfg.Layout.TextAddr),
		Data: uint32(cfg.Layout.DataAddr),
		BSS:  uint32(cfg.BSS()),
	}
	if textAddr != "" {
		layout.Text = parseAddr(textAddr, "text-addr")
	}
	if dataAddr != "" {
		layout.Data = parseAddr(dataAddr, "data-addr")
		layout.BSS = layout.Data + 0x10000
	}
	if format == "" {
		format = cfg.Output.Format
	}
	if format != "bin" && format != "hex" {
		fmt.Fprintf(os.Stderr, "unknown format %q (want bin or hex)\n", format)
		os.Exit(1)
	}

	fmt.Printf("Linking %d object files...\n", flag.NArg())

	l := linker.New(layout)
	reader := objfile.TextReader{}
	for _, path := range flag.Args() {
		f, err := os.Open(path) // #nosec G304 -- user-provided object path
		if err != nil {
			fmt.Fprintf(os.Stderr, "input not readable: %v\n", err)
			os.Exit(1)
		}
		obj, err := reader.ReadObject(f, path)
		f.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		l.AddObject(obj)
	}

	l.Link()

	out, err := os.Create(outputFile) // #nosec G304 -- user-provided output path
	if err != nil {
		fmt.Fprintf(os.Stderr, "output not writable: %v\n", err)
		os.Exit(1)
	}
	if format == "hex" {
		err = l.WriteHex(out)
	} else {
		err = l.WriteBin(out)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "output not writable: %v\n", err)
		out.Close()
		os.Exit(1)
	}
	out.Close()

	// Link diagnostics go to stdout and never change the exit status.
	for _, d := range l.Diags {
		fmt.Println(d)
	}

	if showMap {
		if err := l.MapListing(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
	}

	fmt.Printf("Generated %s\n", outputFile)
}

// parseAddr accepts the 0-prefixed base convention: hex, octal, binary or
// decimal.
func parseAddr(s, name string) uint32 {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bad -%s value %q\n", name, s)
		os.Exit(1)
	}
	return uint32(v)
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: linker [options] <object>...")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Options:")
	flag.PrintDefaults()
}
