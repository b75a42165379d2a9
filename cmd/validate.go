package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/contextkeeper/contextkeeper/internal/config"
	"github.com/contextkeeper/contextkeeper/internal/dependency"
	"github.com/contextkeeper/contextkeeper/internal/schema"
	"github.com/contextkeeper/contextkeeper/internal/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Run the context validators against the stored memory",
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	c, err := dependency.New(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("wire services: %w", err)
	}
	mem := c.Memory().Context()

	printResult("tool use", validate.ForToolUse(mem))
	printResult("completion", validate.ForCompletion(mem))
	printResult("completeness", validate.Completeness(mem))
	return nil
}

func printResult(name string, res schema.ValidationResult) {
	mark := "✓"
	if !res.IsValid {
		mark = "✗"
	}
	fmt.Printf("%s %s\n", mark, name)
	for _, f := range res.MissingFields {
		fmt.Printf("    missing: %s\n", f)
	}
	for _, w := range res.Warnings {
		fmt.Printf("    warning: %s\n", w)
	}
}
