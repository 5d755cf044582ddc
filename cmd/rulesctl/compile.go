package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rules.evalgo.org/internal/rules/compiler"
	"rules.evalgo.org/internal/rules/ir"
)

var compileCmd = &cobra.Command{
	Use:   "compile <rules.yaml>",
	Short: "compile a rule document and print its checksum and plan summary",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompile,
}

type planSummary struct {
	Checksum      string          `json:"checksum"`
	SchemaVersion string          `json:"schema_version"`
	Marketplace   string          `json:"marketplace"`
	Stats         ir.CompileStats `json:"stats"`
	Phases        []ir.Phase      `json:"phases"`
}

func runCompile(cmd *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("rulesctl compile: %w", err)
	}

	cfg := resolvedConfig()
	logger := buildLogger(cfg)

	rs, err := compiler.Compile(content, compiler.CompileOptions{
		RegexCacheCapacity: cfg.RegexCacheCap,
		Logger:             logger,
	})
	if err != nil {
		if cerr, ok := err.(*ir.CompilationError); ok {
			fmt.Fprintln(cmd.ErrOrStderr(), cerr.Error())
			return cerr
		}
		return err
	}

	summary := planSummary{
		Checksum:      rs.Checksum,
		SchemaVersion: rs.SchemaVersion,
		Marketplace:   rs.Marketplace,
		Stats:         rs.Stats,
		Phases:        rs.ExecutionPlan.Phases,
	}
	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("rulesctl compile: marshal summary: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
