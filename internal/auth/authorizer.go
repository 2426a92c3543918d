// Package auth issues and verifies session tokens and hashes passwords.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// ActorInfo identifies the authenticated caller of a request.
type ActorInfo struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
}

// Authorizer validates a bearer token and returns the actor it belongs to.
type Authorizer interface {
	Authorize(ctx context.Context, token string) (*ActorInfo, error)
}

// ExtractBearer extracts the token from the Authorization header.
// Returns the token or an error if missing or malformed.
func ExtractBearer(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("missing Authorization header")
	}

	// Expect "Bearer <token>" format
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", errors.New("invalid Authorization header format, expected 'Bearer <token>'")
	}

	return parts[1], nil
}

type actorKey struct{}

// WithActor returns a copy of ctx carrying the actor.
func WithActor(ctx context.Context, a *ActorInfo) context.Context {
	return context.WithValue(ctx, actorKey{}, a)
}

// ActorFrom returns the actor stored by Middleware, if any.
func ActorFrom(ctx context.Context) (*ActorInfo, bool) {
	a, ok := ctx.Value(actorKey{}).(*ActorInfo)
	return a, ok && a != nil
}
