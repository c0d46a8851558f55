package sl

import (
	"log/slog"
)

// Err creates a slog.Attr with the given error. A nil error renders as an empty value.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}

	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Op derives a logger tagged with the operation and the division emitting it.
func Op(log *slog.Logger, opn, division string) *slog.Logger {
	return log.With(
		slog.String("op", opn),
		slog.String("division", division),
	)
}
