package main

import (
	"fmt"
	"os"

	"shiftpay/internal/api"
	"shiftpay/internal/cli"
	"shiftpay/internal/config"
)

func main() {
	// Defaults, then SHIFTPAY_* environment variables; flags are applied by the root command
	cfg, err := config.NewLoader().Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// The repository is created from the final configuration, after flag overrides
	env := config.GetEnvironment()
	factory := func(cfg *config.Config) (api.BusinessAPI, func() error, error) {
		repo, err := config.NewRepositoryFactory(env, cfg).CreateRepository()
		if err != nil {
			return nil, nil, fmt.Errorf("error creating repository: %w", err)
		}
		return api.NewBusinessAPI(repo, cfg), repo.Close, nil
	}

	root := cli.NewRootCommandWithFactory(factory, cfg)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
