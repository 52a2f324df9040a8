package inventory

import "github.com/rs/zerolog"

// Notifier receives the transient user-facing notifications the container
// emits after every mutation, success or failure. The presentation layer
// decides how to surface them; the container never exposes raw store errors
// directly to users.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// LogNotifier writes notifications to the application log.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{
		logger: logger.With().Str("component", "notifier").Logger(),
	}
}

func (n *LogNotifier) Success(msg string) {
	n.logger.Info().Str("notification", msg).Msg("user notification")
}

func (n *LogNotifier) Error(msg string) {
	n.logger.Warn().Str("notification", msg).Msg("user notification")
}
