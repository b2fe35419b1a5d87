// Package summary reports end-of-run statistics.
package summary

import "github.com/llmctx/llmctx/internal/flatten"

// Logger is the minimal logging surface needed here.
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
}

// DisplayFlattenResults prints what a flatten run processed and skipped.
func DisplayFlattenResults(log Logger, result *flatten.Result) {
	log.Info("Flattened %d file(s).", result.Processed)
	if result.BinarySkipped > 0 {
		log.Warn("Skipped %d binary/non-UTF-8 file(s).", result.BinarySkipped)
	}
	if other := len(result.Entries) - result.Processed - result.BinarySkipped; other > 0 {
		log.Warn("Skipped %d unreadable file(s).", other)
	}
}
