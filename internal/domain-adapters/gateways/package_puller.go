package gateways

import (
	"context"
	"fmt"

	"github.com/ochairo/ltoscan/internal/domain/services"
)

// PullPkgGateway fetches binary packages with ubuntu-dev-tools' pull-pkg
type PullPkgGateway struct {
	runner *CommandRunner
	binary string
	distro string
}

// NewPullPkgGateway creates a puller using binary (e.g. "pull-pkg") for distro
func NewPullPkgGateway(runner *CommandRunner, binary, distro string) *PullPkgGateway {
	return &PullPkgGateway{runner: runner, binary: binary, distro: distro}
}

// Pull downloads the .deb files of packageName for series into dir
func (g *PullPkgGateway) Pull(ctx context.Context, dir, packageName, series string) error {
	if err := services.ValidatePackageName(packageName); err != nil {
		return err
	}

	result := g.runner.Run(ctx, RunConfig{
		Name: g.binary,
		Args: []string{"--distro", g.distro, "--pull", "debs", packageName, series},
		Dir:  dir,
	})
	return result.Err(fmt.Sprintf("pulling %s for %s", packageName, series))
}
