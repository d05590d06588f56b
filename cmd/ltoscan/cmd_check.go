package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/ochairo/ltoscan/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/ltoscan/internal/domain-orchestrators"
	"github.com/ochairo/ltoscan/internal/domain/entities"
	"github.com/ochairo/ltoscan/internal/domain/interfaces"
	ports "github.com/ochairo/ltoscan/internal/domain/interfaces/gateways"
	"github.com/ochairo/ltoscan/internal/domain/services"
	"github.com/ochairo/ltoscan/internal/external-adapters/gpg"
	"github.com/ochairo/ltoscan/internal/external-adapters/logrus"
	"github.com/ochairo/ltoscan/internal/external-adapters/yaml"
)

// passphraseEnvVar holds the passphrase of an encrypted --sign-key
const passphraseEnvVar = "LTOSCAN_SIGN_PASSPHRASE"

// checkOptions collects the flags of the check command
type checkOptions struct {
	logPath    string
	configPath string
	jsonOutput string
	signKey    string
	verbose    bool
	packages   []string
}

func runCheck(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	var (
		logPath    = fs.String("log", "", "File of '<package>: <path>' lines naming packages to check")
		configPath = fs.String("config", "", "YAML config file (default: $"+configEnvVar+")")
		jsonOutput = fs.String("json-output", "", "Optional JSON file for the detailed report")
		signKey    = fs.String("sign-key", "", "Armored private key used to sign the JSON report")
		verbose    = fs.Bool("verbose", false, "Log every archive and dump invocation")
	)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: ltoscan [check] [options] <package>...

Download each package's .deb files, extract their static archives and run
lto-dump over the member objects. Results are printed as YAML when all
packages have been checked.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  ltoscan libfoo-dev libbar-dev
  ltoscan --log build-failures.log
  ltoscan check --log build-failures.log --json-output report.json --sign-key key.asc
`)
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 1
	}

	if *signKey != "" && *jsonOutput == "" {
		fmt.Fprintf(os.Stderr, "Error: --sign-key requires --json-output\n\n")
		fs.Usage()
		return 1
	}

	opts := checkOptions{
		logPath:    *logPath,
		configPath: *configPath,
		jsonOutput: *jsonOutput,
		signKey:    *signKey,
		verbose:    *verbose,
		packages:   fs.Args(),
	}

	if err := executeCheck(ctx, opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func executeCheck(ctx context.Context, opts checkOptions, out io.Writer) error {
	names, err := services.ResolvePackages(opts.logPath, opts.packages)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("no packages given (pass package names or --log)")
	}

	// Load the signing key up front so a bad key fails before a long scan
	var signer *gpg.Signer
	if opts.signKey != "" {
		signer, err = gpg.NewSignerFromFile(opts.signKey, []byte(os.Getenv(passphraseEnvVar)))
		if err != nil {
			return fmt.Errorf("failed to load signing key: %w", err)
		}
	}

	config, toolchain, err := loadToolchain(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to resolve toolchain: %w", err)
	}

	runID := uuid.NewString()
	logger := logrus.NewLogger(out, opts.verbose)
	logger.Info("Starting scan",
		interfaces.F("run_id", runID),
		interfaces.F("gcc", toolchain.GCCPath),
		interfaces.F("archiver", toolchain.Archiver),
		interfaces.F("lto_dump", toolchain.LTODump),
		interfaces.F("series", toolchain.Series))

	orch := newAnalysisOrchestrator(config, toolchain, logger)
	results := orch.AnalyzeAll(ctx, names)

	if err := yaml.NewReportWriter(out).WriteResults(results); err != nil {
		return err
	}
	fmt.Fprintln(out, services.SummaryLine(results))

	if opts.jsonOutput != "" {
		if err := writeJSONReport(opts.jsonOutput, runID, results, orch, toolchain); err != nil {
			return err
		}
		logger.Info("Wrote JSON report", interfaces.F("file", opts.jsonOutput))

		if signer != nil {
			sigPath := opts.jsonOutput + ".asc"
			if err := signer.SignFile(opts.jsonOutput, sigPath); err != nil {
				return err
			}
			logger.Info("Signed JSON report", interfaces.F("signature", sigPath))
		}
	}

	return ctx.Err()
}

// newAnalysisOrchestrator wires the gateways selected by config
func newAnalysisOrchestrator(
	config entities.ScanConfig,
	toolchain entities.Toolchain,
	logger interfaces.Logger,
) *orchestrators.AnalysisOrchestrator {
	runner := gateways.NewCommandRunner(toolchain.ToolTimeout)

	var debExtractor ports.DebExtractor
	if config.DebExtractor == entities.DebExtractorNative {
		debExtractor = gateways.NewNativeDebExtractor()
	} else {
		debExtractor = gateways.NewDpkgDebExtractor(runner, toolchain.DpkgDeb)
	}

	return orchestrators.NewAnalysisOrchestrator(
		gateways.NewPullPkgGateway(runner, toolchain.Puller, toolchain.Distro),
		debExtractor,
		gateways.NewArArchiveExtractor(runner, toolchain.Archiver),
		gateways.NewLTODumpGateway(runner, toolchain.LTODump, toolchain.DumpArgs),
		gateways.NewFileFinder(),
		logger,
		orchestrators.AnalysisOrchestratorConfig{
			WorkDir: config.WorkDir,
			Series:  toolchain.Series,
		},
	)
}

func writeJSONReport(
	path string,
	runID string,
	results map[string]entities.Result,
	orch *orchestrators.AnalysisOrchestrator,
	toolchain entities.Toolchain,
) error {
	calculator := gateways.NewChecksumCalculator()
	checksums := make(map[string][]entities.DebChecksum, len(results))
	for name, result := range results {
		sums, err := calculator.ChecksumDebs(orch.PackageDir(name), result.Debs)
		if err != nil {
			return fmt.Errorf("failed to checksum %s: %w", name, err)
		}
		checksums[name] = sums
	}

	report := services.BuildScanReport(results, checksums, toolchain, time.Now())
	report.RunID = runID
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0600); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
