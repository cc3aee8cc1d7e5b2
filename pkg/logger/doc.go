// Package logger provides a context-aware wrapper around Go's slog package
// adding functional options for configuration, helper attribute constructors,
// and transparent injection of values stored in context.Context.
//
// The single factory New creates a *slog.Logger configured by Option
// functions: output format (text or json), minimum level, static attributes
// applied to every record, and ContextExtractor callbacks that pull
// request-scoped values out of the context on every Handle call.
//
// # Usage
//
//	import "github.com/dmitrymomot/blogkit/pkg/logger"
//
//	func main() {
//	    log := logger.New(
//	        logger.WithDevelopment("blogkit"),
//	        logger.WithContextValue("request_id", ctxKeyRequestID),
//	    )
//	    logger.SetAsDefault(log)
//
//	    log.InfoContext(ctx, "payment verified",
//	        logger.Reference("pi_123"),
//	        logger.PlanID("plan_pro"),
//	    )
//	}
//
// Helper constructors such as Error, UserID, and PlanID keep attribute
// naming consistent across the packages of this module. Error produces an
// attribute only when the supplied error is non-nil, so it can be passed
// unconditionally.
package logger
