package auth

import (
	"context"
	"fmt"

	"github.com/DavideLicci/MindGarden/internal/model"
)

// StaticAuthorizer maps fixed tokens to actors. Used in tests.
type StaticAuthorizer map[string]*ActorInfo

func (s StaticAuthorizer) Authorize(_ context.Context, token string) (*ActorInfo, error) {
	if a, ok := s[token]; ok {
		return a, nil
	}
	return nil, fmt.Errorf("%w: unknown token", model.ErrUnauthorized)
}
