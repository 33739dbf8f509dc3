// Package actorcontext carries the authenticated user through request
// contexts so services can authorize without touching HTTP types.
package actorcontext

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type contextKey struct{}

type Actor struct {
	UserID snowflake.ID
	Role   string
}

func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, contextKey{}, actor)
}

func FromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(contextKey{}).(Actor)
	return actor, ok && actor.UserID != 0
}
