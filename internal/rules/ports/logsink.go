package ports

import (
	"github.com/sirupsen/logrus"

	"rules.evalgo.org/internal/rules/ir"
)

// LogSink is the one concrete ObservabilitySink this module ships: it
// writes execution stats as a single structured logrus entry at info
// level, or warn when the run produced errors.
type LogSink struct {
	logger *logrus.Logger
}

// NewLogSink builds a LogSink writing through logger. A nil logger is
// replaced with a disabled one rather than panicking.
func NewLogSink(logger *logrus.Logger) *LogSink {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.PanicLevel)
	}
	return &LogSink{logger: logger}
}

// RecordExecution implements ObservabilitySink.
func (s *LogSink) RecordExecution(stats ir.ExecutionStats) {
	entry := s.logger.WithFields(logrus.Fields{
		"total_rows":             stats.TotalRows,
		"processed_rows":         stats.ProcessedRows,
		"errors":                 stats.Errors,
		"warnings":               stats.Warnings,
		"suggestions":            stats.Suggestions,
		"transformations":        stats.Transformations,
		"rules_executed":         stats.RulesExecuted,
		"vectorized_operations":  stats.VectorizedOperations,
		"cache_hits":             stats.CacheHits,
		"cache_misses":           stats.CacheMisses,
		"execution_time_ms":      stats.ExecutionTimeMs,
		"rule_evaluation_errors": stats.RuleEvaluationErrors,
	})

	if stats.Errors > 0 || stats.RuleEvaluationErrors > 0 {
		entry.Warn("rule execution completed with errors")
		return
	}
	entry.Info("rule execution completed")
}
