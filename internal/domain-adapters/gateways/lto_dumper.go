package gateways

import (
	"context"

	"github.com/ochairo/ltoscan/internal/domain/interfaces/gateways"
)

// LTODumpGateway runs lto-dump over a set of object files
type LTODumpGateway struct {
	runner *CommandRunner
	binary string
	args   []string
}

// NewLTODumpGateway creates a dumper calling binary (e.g. "lto-dump-13") with
// args placed before the object files
func NewLTODumpGateway(runner *CommandRunner, binary string, args []string) *LTODumpGateway {
	return &LTODumpGateway{runner: runner, binary: binary, args: args}
}

// Dump runs the tool once over all objects, relative to dir
func (g *LTODumpGateway) Dump(ctx context.Context, dir string, objects []string) *gateways.DumpResult {
	args := make([]string, 0, len(g.args)+len(objects))
	args = append(args, g.args...)
	args = append(args, objects...)

	result := g.runner.Run(ctx, RunConfig{
		Name: g.binary,
		Args: args,
		Dir:  dir,
	})

	stderr := result.Stderr
	// A tool that never started leaves no stderr; report why instead.
	if !result.Success && stderr == "" && result.Error != nil {
		stderr = result.Error.Error()
	}

	return &gateways.DumpResult{
		Success:  result.Success,
		ExitCode: result.ExitCode,
		Stdout:   result.Stdout,
		Stderr:   stderr,
	}
}
