package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calc-ledger/internal/domain"
	"calc-ledger/internal/repository"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	user := &domain.User{Username: "alice", PasswordHash: "hash"}
	id, err := repo.Create(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.False(t, user.CreatedAt.IsZero())

	got, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)

	got, err = repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	_, err = repo.GetByID(ctx, 42)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repo.GetByUsername(ctx, "bob")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_ConcurrentDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	const attempts = 32
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		created   int
		duplicate int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, &domain.User{Username: "same", PasswordHash: "h"})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case assert.ErrorIs(t, err, repository.ErrDuplicateUsername):
				duplicate++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, attempts-1, duplicate)
}

func TestOperationRepository_RecordListGet(t *testing.T) {
	ctx := context.Background()
	repo := NewOperationRepository()

	n2 := 3.0
	for i := 0; i < 3; i++ {
		op := &domain.Operation{OwnerID: 1, Type: domain.OperationSum, Operand1: float64(i), Operand2: &n2, Result: float64(i) + n2}
		require.NoError(t, repo.Record(ctx, op))
		assert.Equal(t, int64(i+1), op.ID)
	}
	require.NoError(t, repo.Record(ctx, &domain.Operation{OwnerID: 2, Type: domain.OperationSqrt, Operand1: 4, Result: 2}))

	ops, err := repo.ListByOwner(ctx, 1)
	require.NoError(t, err)
	require.Len(t, ops, 3)
	for i, op := range ops {
		assert.Equal(t, float64(i), op.Operand1)
	}

	empty, err := repo.ListByOwner(ctx, 99)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	got, err := repo.GetByOwnerAndID(ctx, 2, 4)
	require.NoError(t, err)
	assert.Nil(t, got.Operand2)

	_, err = repo.GetByOwnerAndID(ctx, 1, 4)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repo.GetByOwnerAndID(ctx, 1, 100)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestOperationRepository_ConcurrentRecordsGetUniqueIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewOperationRepository()

	const writers = 50
	ids := make(chan int64, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(owner int64) {
			defer wg.Done()
			op := &domain.Operation{OwnerID: owner, Type: domain.OperationSqrt, Operand1: 1, Result: 1}
			if assert.NoError(t, repo.Record(ctx, op)) {
				ids <- op.ID
			}
		}(int64(i % 3))
	}
	wg.Wait()
	close(ids)

	seen := map[int64]bool{}
	for id := range ids {
		assert.False(t, seen[id], fmt.Sprintf("duplicate id %d", id))
		seen[id] = true
	}
	assert.Len(t, seen, writers)
}
