package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rules.evalgo.org/internal/rules/compiler"
)

var validateCmd = &cobra.Command{
	Use:   "validate <rules.yaml>",
	Short: "check a rule document for compile errors without producing a ruleset",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("rulesctl validate: %w", err)
	}

	cfg := resolvedConfig()
	logger := buildLogger(cfg)

	if err := compiler.Validate(content, compiler.CompileOptions{
		RegexCacheCapacity: cfg.RegexCacheCap,
		Logger:             logger,
	}); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "document is valid")
	return nil
}
