package logging

import (
	"context"

	"go.uber.org/zap"
)

// Key is the context key type used for tracked log fields
type Key string
type marker struct{}

const trackedKeys = Key("tracked-keys")

// AddValues derives a new context carrying the given fields in addition to any
// fields already present
func AddValues(ctx context.Context, values ...zap.Field) context.Context {
	keys := copyKeys(getKeys(ctx))
	for _, val := range values {
		key := Key(val.Key)
		keys[key] = marker{}

		ctx = context.WithValue(ctx, trackedKeys, keys)
		ctx = context.WithValue(ctx, key, val)
	}

	return ctx
}

// FieldsSlice returns every tracked field stored on the context
func FieldsSlice(ctx context.Context) []zap.Field {
	values := []zap.Field{}
	keys := getKeys(ctx)

	for k := range keys {
		if v, ok := ctx.Value(k).(zap.Field); ok {
			values = append(values, v)
		}
	}

	return values
}

// copyKeys makes a defensive copy to protect against concurrent writes
func copyKeys(from map[Key]marker) map[Key]marker {
	to := make(map[Key]marker)

	for k := range from {
		to[k] = marker{}
	}

	return to
}

func getKeys(ctx context.Context) map[Key]marker {
	keys := make(map[Key]marker)

	if k, ok := ctx.Value(trackedKeys).(map[Key]marker); ok {
		keys = k
	}

	return keys
}
