// Package main provides the ltoscan CLI for finding LTO bytecode version
// mismatches in distribution packages.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:]))
}

func run(ctx context.Context, args []string) int {
	if len(args) < 1 {
		printUsage()
		return 1
	}

	// Dispatch to subcommand; anything else is "check" so that
	// "ltoscan --log build.log libfoo-dev" works directly.
	switch args[0] {
	case "check":
		return runCheck(ctx, args[1:])
	case "toolchain":
		return runToolchain(ctx, args[1:])
	case "verify-report":
		return runVerifyReport(ctx, args[1:])
	case "help", "-h", "--help":
		printUsage()
		return 0
	default:
		return runCheck(ctx, args)
	}
}

func printUsage() {
	fmt.Println(`ltoscan - Detect LTO bytecode version mismatches in distribution packages

Usage:
  ltoscan [check] [--log <file>] [options] <package>...
  ltoscan <command> [options]

Commands:
  check           Download packages and dump the LTO bytecode of their static archives
  toolchain       Show the resolved compiler toolchain
  verify-report   Verify the signature of a JSON scan report

Use "ltoscan <command> --help" for more information about a command.`)
}
