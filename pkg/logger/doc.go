// Package logger provides a small factory around log/slog with functional
// options, environment presets, and domain attribute helpers shared by the
// notification client packages.
//
//	log := logger.New(
//	    logger.WithDevelopment("notifykit"),
//	)
//	log.Info("socket connected", logger.Attempt(0))
//
// The returned logger is decorated so registered ContextExtractor functions
// can inject request-scoped attributes (session IDs, user IDs) at log time.
package logger
