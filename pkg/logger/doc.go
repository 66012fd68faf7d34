// Package logger builds the application *slog.Logger and keeps attribute
// names consistent across packages.
//
// New assembles a text or JSON slog handler from functional options. When
// context extractors are registered, every record also gets the attributes
// they pull from the logging context, such as the request id. Library
// packages never use a global logger: they accept a *slog.Logger option and
// fall back to Discard.
//
// # Usage
//
//	log := logger.New(
//		logger.WithEnvironment(os.Getenv("APP_ENV"), "sociallogin"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//
//	log.DebugContext(ctx, "token exchange response received",
//		logger.Component("google_oauth"),
//		logger.StatusCode(resp.StatusCode),
//		logger.URL(req.RedactedURL()),
//	)
//
// Error returns an empty attribute for a nil error so it can be
// passed unconditionally.
package logger
