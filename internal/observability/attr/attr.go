// Package attr provides slog attribute helpers shared by every service so
// log fields stay consistently named across modules.
package attr

import (
	"context"
	"log/slog"
	"time"

	sharedtypes "github.com/aegis-league/aegis-fantasy/app/shared/types"
)

type correlationIDKey struct{}

// WithCorrelationID stores a correlation ID on the context. Message handlers
// set it from the incoming message's metadata; HTTP handlers mint one per
// request.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// CorrelationID returns the correlation ID on the context, empty if unset.
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationIDKey{}).(string)
	return id
}

// ExtractCorrelationID renders the context's correlation ID as a log attr.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	return slog.String("correlation_id", CorrelationID(ctx))
}

func String(key, value string) slog.Attr      { return slog.String(key, value) }
func Int(key string, value int) slog.Attr     { return slog.Int(key, value) }
func Int64(key string, value int64) slog.Attr { return slog.Int64(key, value) }
func Bool(key string, value bool) slog.Attr   { return slog.Bool(key, value) }
func Float64(key string, v float64) slog.Attr { return slog.Float64(key, v) }
func Any(key string, value any) slog.Attr     { return slog.Any(key, value) }

func Duration(key string, d time.Duration) slog.Attr {
	return slog.Duration(key, d)
}

func Error(err error) slog.Attr {
	return slog.Any("error", err)
}

func UserID(key string, id sharedtypes.UserID) slog.Attr {
	return slog.String(key, string(id))
}

func MatchID(key string, id sharedtypes.MatchID) slog.Attr {
	return slog.String(key, string(id))
}

func PlayerID(key string, id sharedtypes.PlayerID) slog.Attr {
	return slog.String(key, string(id))
}

func Role(key string, role sharedtypes.Role) slog.Attr {
	return slog.Int(key, int(role))
}
