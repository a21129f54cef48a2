package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Register(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.userSvc.Register(ctx, "  alice ", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Positive(t, user.ID)
	assert.Empty(t, user.PasswordHash)

	stored, err := f.users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)

	_, err = f.userSvc.Register(ctx, "alice", "another")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = f.userSvc.Register(ctx, " ", "x")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.userSvc.Register(ctx, "bob", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUserService_ConcurrentRegistration(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const attempts = 8
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.userSvc.Register(ctx, "carol", "password")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok int
	for err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, ErrUsernameTaken)
	}
	assert.Equal(t, 1, ok)
}

func TestUserService_Authenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	registered := f.register(t, "alice")

	user, err := f.userSvc.Authenticate(ctx, "alice", "alice-password")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Empty(t, user.PasswordHash)

	_, err = f.userSvc.Authenticate(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.userSvc.Authenticate(ctx, "nobody", "alice-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.userSvc.Authenticate(ctx, "alice", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
