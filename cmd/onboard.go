package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/contextkeeper/contextkeeper/internal/config"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Create a default configuration",
	RunE:  runOnboard,
}

func runOnboard(_ *cobra.Command, _ []string) error {
	path := configPath
	if path == "" {
		path = config.ConfigPath()
	}

	if _, err := os.Stat(path); err == nil {
		fmt.Printf("%s Config already exists at %s\n", logo, path)
		return nil
	}

	cfg := config.DefaultConfig()
	if err := config.Save(&cfg, path); err != nil {
		return err
	}

	fmt.Printf("%s Wrote default config to %s\n", logo, path)
	fmt.Printf("Store directory: %s\n", cfg.Storage.Dir)
	return nil
}
