package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"calc-ledger/internal/domain"
	"calc-ledger/internal/repository/memory"
)

const testSecret = "test-secret"

type fixture struct {
	users    *memory.UserRepository
	ledger   *memory.OperationRepository
	userSvc  UserService
	tokens   TokenService
	sessions SessionGateway
	ops      OperationService
}

func newFixture(t *testing.T, opts ...TokenOption) *fixture {
	t.Helper()

	f := &fixture{
		users:  memory.NewUserRepository(),
		ledger: memory.NewOperationRepository(),
	}
	f.userSvc = NewUserService(f.users, bcrypt.MinCost)
	f.tokens = NewTokenService(testSecret, DefaultTokenTTL, opts...)
	f.sessions = NewSessionGateway(f.tokens, f.userSvc)
	f.ops = NewOperationService(f.ledger, f.sessions)
	return f
}

func (f *fixture) register(t *testing.T, username string) *domain.User {
	t.Helper()
	user, err := f.userSvc.Register(context.Background(), username, username+"-password")
	require.NoError(t, err)
	return user
}
