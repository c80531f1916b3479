package logger

import (
	"context"
	"log/slog"
)

type ctxKey struct{ name string }

var (
	commandKey = ctxKey{"command"}
	localeKey  = ctxKey{"locale"}
)

// WithCommand stores the name of the running command in ctx.
func WithCommand(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, commandKey, name)
}

// WithLocale stores the active locale tag in ctx.
func WithLocale(ctx context.Context, tag string) context.Context {
	return context.WithValue(ctx, localeKey, tag)
}

// CommandExtractor adds a "command" attribute when ctx carries one.
func CommandExtractor(ctx context.Context) (slog.Attr, bool) {
	return stringAttr(ctx, commandKey, "command")
}

// LocaleExtractor adds a "locale" attribute when ctx carries one.
func LocaleExtractor(ctx context.Context) (slog.Attr, bool) {
	return stringAttr(ctx, localeKey, "locale")
}

func stringAttr(ctx context.Context, key ctxKey, name string) (slog.Attr, bool) {
	if v, ok := ctx.Value(key).(string); ok && v != "" {
		return slog.String(name, v), true
	}
	return slog.Attr{}, false
}
