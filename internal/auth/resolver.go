package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/maxolivera/gophis-posts/internal/models"
	"github.com/maxolivera/gophis-posts/internal/storage"
)

var ErrUnauthorized = errors.New("could not validate credentials")

type CredentialParser interface {
	Parse(token string) (*Claims, error)
}

type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// Resolver turns a raw bearer token into the Identity of an existing user.
type Resolver struct {
	parser CredentialParser
}

func NewResolver(parser CredentialParser) *Resolver {
	return &Resolver{parser: parser}
}

// Resolve fails with ErrUnauthorized when the token does not verify or its
// subject no longer exists. The reason is kept in the wrapped error for logs
// only. Lookup failures other than a missing user are returned as they are.
func (r *Resolver) Resolve(ctx context.Context, token string, lookup UserLookup) (models.Identity, error) {
	claims, err := r.parser.Parse(token)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	user, err := lookup.GetByID(ctx, claims.SubjectID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Identity{}, fmt.Errorf("%w: user %d not found", ErrUnauthorized, claims.SubjectID)
		}
		return models.Identity{}, fmt.Errorf("error retrieving user %d: %w", claims.SubjectID, err)
	}

	return models.Identity{
		UserID: user.ID,
		Email:  user.Email,
	}, nil
}
