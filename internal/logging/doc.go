// Package logging provides structured logging for the folio CLI using slog.
//
// Loggers write colorized text to terminals and plain text elsewhere, or JSON
// when requested. Verbosity flags map onto levels through
// [LevelFromVerbosity], including the extra [LevelTrace] below Debug.
//
// # Basic Usage
//
//	logger := logging.New(logging.Config{
//		Level:  slog.LevelInfo,
//		Format: logging.FormatText,
//		Output: os.Stderr,
//	})
//	logger.Info("loading posts", "dir", dir)
//
// # Context
//
// Commands store their logger in the context with [NewContext]; library code
// retrieves it with [FromContext], which falls back to slog.Default.
//
// # Testing
//
// For tests, use [ForTest] to capture log output via the testing framework:
//
//	func TestSomething(t *testing.T) {
//		logger := logging.ForTest(t)
//		// logs appear in test output on failure
//	}
package logging
