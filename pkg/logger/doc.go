// Package logger builds log/slog loggers for tempo components and the tempo
// command.
//
// Registries, the timezone database and the engine accept a *slog.Logger and
// default to [NewNope]. Applications that want output construct one here:
//
//	log := logger.New(
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithExtractors(logger.CommandExtractor, logger.LocaleExtractor),
//	)
//
//	ctx := logger.WithCommand(context.Background(), "format")
//	log.InfoContext(ctx, "rendered", slog.String("pattern", "LLLL"))
//	// {"level":"INFO","msg":"rendered","pattern":"LLLL","command":"format"}
//
// # Sentry Integration
//
// [NewWithSentry] fans records out to the local handler and to Sentry.
// Errors create Sentry issues; warnings are stored as logs. An empty DSN
// falls back to local logging only:
//
//	log := logger.NewWithSentry(logger.SentryConfig{
//		DSN:         os.Getenv("SENTRY_DSN"),
//		Environment: "production",
//		MinLevel:    slog.LevelWarn,
//	})
//
// # Context Extractors
//
// A [ContextExtractor] turns request-scoped context values into attributes.
// [LogHandlerDecorator] applies extractors on every log call so the values
// are always current.
package logger
