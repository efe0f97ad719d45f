package view

import "log/slog"

// LogNotifier delivers toasts to the structured log. The CLI uses it;
// a richer host can swap in its own Notifier.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Success(msg string) {
	if n.Logger != nil {
		n.Logger.Info(msg, "toast", "success")
	}
}

func (n LogNotifier) Error(msg string) {
	if n.Logger != nil {
		n.Logger.Error(msg, "toast", "error")
	}
}

var _ Notifier = LogNotifier{}
