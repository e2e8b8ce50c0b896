package main

import (
	"flag"
	"fmt"
	"os"
)

func usage() {
	fmt.Println(`svelte-go - component lowering compiler
Usage: svelte-go <command> [flags] [paths]

Commands:
  compile [paths]  Compile component ASTs (*.json) to JavaScript modules
  watch [paths]    Compile, then recompile whenever an input changes
  help             Show help

Flags:
  -config <file>   YAML project file (include, outDir, dev, runes, runtimeModule, runtimeVersion)
  -out <dir>       Output directory (default: next to each input)
  -dev             Development build
  -v               Print every compiled file`)
}

type cliOptions struct {
	configPath string
	outDir     string
	dev        bool
	verbose    bool
	paths      []string
}

func parseFlags(args []string) (*cliOptions, error) {
	fs := flag.NewFlagSet("svelte-go", flag.ContinueOnError)
	fs.Usage = usage
	opts := &cliOptions{}
	fs.StringVar(&opts.configPath, "config", "", "")
	fs.StringVar(&opts.outDir, "out", "", "")
	fs.BoolVar(&opts.dev, "dev", false, "")
	fs.BoolVar(&opts.verbose, "v", false, "")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	opts.paths = fs.Args()
	if len(opts.paths) == 0 && opts.configPath == "" {
		opts.paths = []string{"."}
	}
	return opts, nil
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	cmd := os.Args[1]
	switch cmd {
	case "help", "-h", "--help":
		usage()
	case "compile", "watch":
		opts, err := parseFlags(os.Args[2:])
		if err != nil {
			os.Exit(2)
		}
		b, err := newBuild(opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s error: %v\n", cmd, err)
			os.Exit(1)
		}
		if cmd == "compile" {
			err = b.run()
		} else {
			err = b.watch()
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s error: %v\n", cmd, err)
			os.Exit(1)
		}
	default:
		usage()
		os.Exit(1)
	}
}
