package auth

import (
	"context"

	"google.golang.org/grpc/metadata"
)

type contextKey string

const actorKey contextKey = "actor"

// ActorHeader carries the operator name shown in stock adjustment history.
const ActorHeader = "x-user-id"

func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActor returns the operator set by the context interceptor, falling back
// to incoming metadata. Empty when the caller did not identify itself.
func GetActor(ctx context.Context) string {
	if val, ok := ctx.Value(actorKey).(string); ok {
		return val
	}

	md, ok := metadata.FromIncomingContext(ctx)
	if ok {
		if val := md.Get(ActorHeader); len(val) > 0 {
			return val[0]
		}
	}
	return ""
}
