// Package cmd implements the contextkeeper CLI using cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"
const logo = "🧭"

var configPath string

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "contextkeeper",
	Short: logo + " contextkeeper — bounded conversational context memory",
	Long: logo + ` contextkeeper — inspect and manage the bounded context memory
kept across conversation turns: task state, technical context, and the
learned command/pattern/mistake histories.`,
}

// Execute runs the root command and exits on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default ~/.contextkeeper/config.json)")

	rootCmd.AddCommand(onboardCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(modeCmd)
}
