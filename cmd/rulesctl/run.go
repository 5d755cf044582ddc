package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"rules.evalgo.org/internal/rules/compiler"
	"rules.evalgo.org/internal/rules/ir"
	"rules.evalgo.org/internal/rules/runtime"
	"rules.evalgo.org/internal/rules/table"
)

var verbose bool

var runCmd = &cobra.Command{
	Use:   "run <rules.yaml> <table.csv>",
	Short: "compile a rule document and execute it against a CSV table",
	Args:  cobra.ExactArgs(2),
	RunE:  runRun,
}

func init() {
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print every violation, warning, suggestion, and transformation")
}

func runRun(cmd *cobra.Command, args []string) error {
	ruleContent, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("rulesctl run: %w", err)
	}

	cfg := resolvedConfig()
	logger := buildLogger(cfg)

	rs, err := compiler.Compile(ruleContent, compiler.CompileOptions{
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

	tbl, err := loadCSVTable(args[1])
	if err != nil {
		return fmt.Errorf("rulesctl run: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(cfg.SoftDeadlineMs)*time.Millisecond*4)
	defer cancel()

	result, err := runtime.Execute(ctx, rs, tbl, runtime.Options{
		Workers:                cfg.Workers,
		ConditionCacheCapacity: cfg.ConditionCacheCap,
		SoftDeadline:           time.Duration(cfg.SoftDeadlineMs) * time.Millisecond,
		Logger:                 logger,
	})
	if err != nil {
		return fmt.Errorf("rulesctl run: %w", err)
	}

	printStats(cmd, result.Stats)
	if verbose {
		printDetails(cmd, result)
	}
	return nil
}

func loadCSVTable(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	b := table.NewBuilder()
	for {
		record, err := r.Read()
		if err != nil {
			break
		}
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		b.AddRow(row)
	}
	return b.Build()
}

func printStats(cmd *cobra.Command, stats ir.ExecutionStats) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "rows: %s/%s processed\n",
		humanize.Comma(int64(stats.ProcessedRows)), humanize.Comma(int64(stats.TotalRows)))
	fmt.Fprintf(out, "errors: %s  warnings: %s  suggestions: %s  transformations: %s\n",
		humanize.Comma(int64(stats.Errors)), humanize.Comma(int64(stats.Warnings)),
		humanize.Comma(int64(stats.Suggestions)), humanize.Comma(int64(stats.Transformations)))
	fmt.Fprintf(out, "rules executed: %s  vectorized ops: %s  cache hits/misses: %s/%s\n",
		humanize.Comma(int64(stats.RulesExecuted)), humanize.Comma(int64(stats.VectorizedOperations)),
		humanize.Comma(int64(stats.CacheHits)), humanize.Comma(int64(stats.CacheMisses)))
	fmt.Fprintf(out, "elapsed: %.2fms\n", stats.ExecutionTimeMs)
}

func printDetails(cmd *cobra.Command, result *ir.ExecutionResult) {
	out := cmd.OutOrStdout()
	for _, v := range result.Errors {
		fmt.Fprintf(out, "[error] rule=%s field=%s %s\n", v.RuleID, v.Field, v.Message)
	}
	for _, v := range result.Warnings {
		fmt.Fprintf(out, "[warn] rule=%s field=%s %s\n", v.RuleID, v.Field, v.Message)
	}
	for _, s := range result.Suggestions {
		fmt.Fprintf(out, "[suggest] rule=%s field=%s row=%d -> %v (confidence %.2f)\n",
			s.RuleID, s.Field, s.RowIndex, s.SuggestedValues, s.Confidence)
	}
	for _, t := range result.Transformations {
		fmt.Fprintf(out, "[transform] rule=%s field=%s row=%d %q -> %q\n",
			t.RuleID, t.Field, t.RowIndex, t.OriginalValue, t.TransformedValue)
	}
}
