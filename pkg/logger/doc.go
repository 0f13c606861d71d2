// Package logger builds *slog.Logger instances from functional options and
// ships attribute helpers that keep key names consistent across packages.
//
// Production and staging log JSON; development uses a colored handler from
// github.com/charmbracelet/log. Registered ContextExtractor callbacks add
// request-scoped values, such as the request id, to every record.
//
//	log := logger.New(
//		logger.WithEnvironment(environment.Production, "intake"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.ErrorContext(ctx, "channel failed", logger.Channel("smtp"), logger.Error(err))
//
// Error and Errors return an empty Attr for nil errors, so they can be passed
// unconditionally.
package logger
