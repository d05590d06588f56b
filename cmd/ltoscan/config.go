package main

import (
	"os"

	"github.com/ochairo/ltoscan/internal/domain-adapters/gateways"
	"github.com/ochairo/ltoscan/internal/domain/entities"
	"github.com/ochairo/ltoscan/internal/external-adapters/yaml"
)

// configEnvVar names the config file when --config is not given
const configEnvVar = "LTOSCAN_CONFIG"

// loadToolchain reads the optional config file and resolves the toolchain once
func loadToolchain(configPath string) (entities.ScanConfig, entities.Toolchain, error) {
	if configPath == "" {
		configPath = os.Getenv(configEnvVar)
	}

	config, err := yaml.NewConfigParser().ParseFile(configPath)
	if err != nil {
		return entities.ScanConfig{}, entities.Toolchain{}, err
	}

	toolchain, err := gateways.NewToolchainResolver().Resolve(config)
	if err != nil {
		return config, entities.Toolchain{}, err
	}

	return config, toolchain, nil
}
