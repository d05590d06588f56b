package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
)

func runToolchain(_ context.Context, args []string) int {
	fs := flag.NewFlagSet("toolchain", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML config file (default: $"+configEnvVar+")")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: ltoscan toolchain [options]

Show the gcc installation and the tool names a check would use.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 1
	}

	config, toolchain, err := loadToolchain(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	timeout := "none"
	if toolchain.ToolTimeout > 0 {
		timeout = toolchain.ToolTimeout.String()
	}

	fmt.Printf("  %-14s %s\n", "gcc:", toolchain.GCCPath)
	fmt.Printf("  %-14s %s\n", "version:", toolchain.GCCVersion)
	fmt.Printf("  %-14s %s\n", "archiver:", toolchain.Archiver)
	fmt.Printf("  %-14s %s %s\n", "lto-dump:", toolchain.LTODump, strings.Join(toolchain.DumpArgs, " "))
	fmt.Printf("  %-14s %s --distro %s\n", "puller:", toolchain.Puller, toolchain.Distro)
	fmt.Printf("  %-14s %s\n", "series:", toolchain.Series)
	fmt.Printf("  %-14s %s\n", "deb extractor:", config.DebExtractor)
	fmt.Printf("  %-14s %s\n", "workdir:", config.WorkDir)
	fmt.Printf("  %-14s %s\n", "tool timeout:", timeout)
	return 0
}
