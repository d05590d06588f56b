package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ochairo/ltoscan/internal/external-adapters/gpg"
)

func runVerifyReport(_ context.Context, args []string) int {
	fs := flag.NewFlagSet("verify-report", flag.ContinueOnError)
	var (
		reportPath = fs.String("report", "", "JSON report to verify")
		sigPath    = fs.String("signature", "", "Detached signature (default: <report>.asc)")
		keyPath    = fs.String("key", "", "Public key of the signer")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: ltoscan verify-report --report <file> --key <file> [options]

Verify the detached OpenPGP signature of a JSON scan report.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  ltoscan verify-report --report report.json --key signer.asc
`)
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 1
	}

	if *reportPath == "" || *keyPath == "" {
		fmt.Fprintf(os.Stderr, "Error: --report and --key are required\n\n")
		fs.Usage()
		return 1
	}
	if *sigPath == "" {
		*sigPath = *reportPath + ".asc"
	}

	verifier := gpg.NewVerifier()
	if err := verifier.ImportKeyFromFile(*keyPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if err := verifier.VerifySignatureFromFile(*reportPath, *sigPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Printf("✅ Signature valid: %s\n", *reportPath)
	return 0
}
