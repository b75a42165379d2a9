package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/contextkeeper/contextkeeper/internal/config"
	"github.com/contextkeeper/contextkeeper/internal/dependency"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current context memory",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, _ []string) error {
	path := configPath
	if path == "" {
		path = config.ConfigPath()
	}

	fmt.Printf("%s contextkeeper Status\n\n", logo)

	_, statErr := os.Stat(path)
	cfgMark := "✗"
	if statErr == nil {
		cfgMark = "✓"
	}
	fmt.Printf("Config:  %s %s\n", path, cfgMark)

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	fmt.Printf("Storage: %s\n\n", cfg.Storage.Backend)

	c, err := dependency.New(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("wire services: %w", err)
	}

	fmt.Println(c.Memory().Summary())
	return nil
}
