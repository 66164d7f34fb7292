package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config defines program configuration, resolved from an optional
// asm.toml file overlaid with command-line flags. Flags always win.
type Config struct {
	Inputs      []string // Source files, one unit each, extension included.
	Base        int      // Load address.
	OutDir      string   // Directory for .am/.ob/.ent/.ext; source's own directory when empty.
	DumpAST     bool     // Print a human-readable dump of each unit's parsed lines and exit.
	DumpSymbols bool     // Print a human-readable dump of each unit's symbol table and exit.
}

// fileConfig is the shape of an optional asm.toml, consulted only for
// values a flag did not explicitly set.
type fileConfig struct {
	Base   int    `toml:"base"`
	OutDir string `toml:"out_dir"`
}

// parseArgs parses command line arguments, overlaying them onto any
// asm.toml found in the working directory.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the program ends cleanly.
func parseArgs() *Config {
	var c Config

	flag.Usage = func() {
		fmt.Printf("%s [options] <source file> [<source file> ...]\n", os.Args[0])
		flag.PrintDefaults()
	}

	base := flag.Int("base", 0, "Machine load address. Overrides asm.toml; defaults to 100 if set nowhere.")
	outDir := flag.String("out-dir", "", "Directory to write .am/.ob/.ent/.ext into. Overrides asm.toml; defaults to each source's own directory.")
	config := flag.String("config", "asm.toml", "Path to an optional configuration file.")
	flag.BoolVar(&c.DumpAST, "dump-ast", c.DumpAST, "Print a human-readable dump of each unit's parsed lines and exit.")
	flag.BoolVar(&c.DumpSymbols, "dump-symbols", c.DumpSymbols, "Print a human-readable dump of each unit's symbol table and exit.")
	version := flag.Bool("version", false, "Display version information.")
	flag.Parse()

	if *version {
		fmt.Println(Version())
		os.Exit(0)
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(1)
	}

	var fc fileConfig
	if _, err := toml.DecodeFile(*config, &fc); err != nil && !os.IsNotExist(err) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	c.Base = fc.Base
	if *base != 0 {
		c.Base = *base
	}

	c.OutDir = fc.OutDir
	if *outDir != "" {
		c.OutDir = *outDir
	}

	c.Inputs = flag.Args()
	return &c
}
