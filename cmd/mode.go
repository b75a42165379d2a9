package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/contextkeeper/contextkeeper/internal/config"
	"github.com/contextkeeper/contextkeeper/internal/dependency"
)

var modeCmd = &cobra.Command{
	Use:   "mode [name]",
	Short: "Show or switch the active operating mode",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runMode,
}

func runMode(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	c, err := dependency.New(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("wire services: %w", err)
	}
	mem := c.Memory()

	if len(args) == 0 {
		s := mem.Settings()
		fmt.Printf("Active mode: %s\n\nAvailable modes:\n", s.Mode)
		names := make([]string, 0, len(s.ModeSettings))
		for name := range s.ModeSettings {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			b := s.ModeSettings[name]
			fmt.Printf("  %-8s history=%d patterns=%d mistakes=%d\n",
				name, b.MaxHistoryItems, b.MaxPatterns, b.MaxMistakes)
		}
		return nil
	}

	if err := mem.SetMode(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("switch mode: %w", err)
	}
	fmt.Printf("%s Switched to mode %q\n", logo, args[0])
	return nil
}
