package errors

import (
	"os"

	"github.com/charmbracelet/log"
)

// LogHandler is an ErrorHandler that writes to a leveled logger.
type LogHandler struct {
	// Logger receives the records. Nil means a stderr logger.
	Logger *log.Logger
	// Verbose adds stack traces to panic records.
	Verbose bool
}

// NewLogHandler returns a LogHandler writing to logger, or to stderr when
// logger is nil.
func NewLogHandler(logger *log.Logger) *LogHandler {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "apppermission"})
	}
	return &LogHandler{Logger: logger}
}

func (h *LogHandler) logger() *log.Logger {
	if h.Logger == nil {
		return log.Default()
	}
	return h.Logger
}

// HandleError logs an Error.
func (h *LogHandler) HandleError(err *Error) {
	if err == nil {
		return
	}
	keyvals := []any{"op", err.Op, "kind", err.Kind.String()}
	if err.Channel != "" {
		keyvals = append(keyvals, "channel", err.Channel)
	}
	keyvals = append(keyvals, "err", err.Err)
	h.logger().Error("reported error", keyvals...)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	keyvals := []any{"value", err.Value}
	if err.Op != "" {
		keyvals = append([]any{"op", err.Op}, keyvals...)
	}
	if h.Verbose && err.StackTrace != "" {
		keyvals = append(keyvals, "stack", err.StackTrace)
	}
	h.logger().Error("recovered panic", keyvals...)
}
