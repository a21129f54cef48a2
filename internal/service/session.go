package service

import (
	"context"
	"errors"
	"fmt"

	"calc-ledger/internal/domain"
	"calc-ledger/internal/repository"
)

// SessionGateway is the authentication and authorization boundary. Every
// protected call resolves its caller here before touching the ledger.
type SessionGateway interface {
	// Login verifies credentials and returns a fresh access token.
	Login(ctx context.Context, username, password string) (string, error)
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	Authorize(caller *domain.User, ownerID int64) error
}

type sessionGateway struct {
	tokens TokenService
	users  UserService
}

func NewSessionGateway(tokens TokenService, users UserService) SessionGateway {
	return &sessionGateway{
		tokens: tokens,
		users:  users,
	}
}

func (g *sessionGateway) Login(ctx context.Context, username, password string) (string, error) {
	user, err := g.users.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}
	return g.tokens.Issue(user.Username)
}

func (g *sessionGateway) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: missing bearer token", ErrUnauthorized)
	}

	subject, err := g.tokens.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	user, err := g.users.GetByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown subject", ErrUnauthorized)
		}
		return nil, err
	}
	return user, nil
}

func (g *sessionGateway) Authorize(caller *domain.User, ownerID int64) error {
	if caller == nil {
		return ErrUnauthorized
	}
	if caller.ID != ownerID {
		return ErrForbidden
	}
	return nil
}
