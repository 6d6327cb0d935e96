// Package logger provides a context-aware wrapper around log/slog with
// functional options, helper attribute constructors, and transparent
// injection of values stored in context.Context.
//
// The single factory New creates a *slog.Logger configured by Option
// functions: output format (text or json), minimum level, static
// attributes, and ContextExtractor callbacks that copy request-scoped
// values such as a request id into every record.
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "authcore"),
//	    logger.WithContextValue("request_id", ctxKeyRequestID),
//	)
//	logger.SetAsDefault(log)
//
// Attribute helpers (Error, AccountID, Component, ...) keep key naming
// consistent across the codebase.
package logger
