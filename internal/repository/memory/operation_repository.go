package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"calc-ledger/internal/domain"
	"calc-ledger/internal/repository"
)

type OperationRepository struct {
	mu      sync.RWMutex
	nextID  int64
	ops     map[int64]domain.Operation
	byOwner map[int64][]int64
}

func NewOperationRepository() *OperationRepository {
	return &OperationRepository{
		ops:     make(map[int64]domain.Operation),
		byOwner: make(map[int64][]int64),
	}
}

func (r *OperationRepository) Init(context.Context) error { return nil }

func (r *OperationRepository) Record(_ context.Context, op *domain.Operation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	op.ID = r.nextID
	op.CreatedAt = time.Now().UTC()

	r.ops[op.ID] = cloneOperation(*op)
	r.byOwner[op.OwnerID] = append(r.byOwner[op.OwnerID], op.ID)
	return nil
}

func (r *OperationRepository) ListByOwner(_ context.Context, ownerID int64) ([]domain.Operation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byOwner[ownerID]
	ops := make([]domain.Operation, 0, len(ids))
	for _, id := range ids {
		ops = append(ops, cloneOperation(r.ops[id]))
	}
	return ops, nil
}

func (r *OperationRepository) GetByOwnerAndID(_ context.Context, ownerID, id int64) (*domain.Operation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	op, ok := r.ops[id]
	if !ok || op.OwnerID != ownerID {
		return nil, fmt.Errorf("operation: %w", repository.ErrNotFound)
	}
	op = cloneOperation(op)
	return &op, nil
}

// records are immutable, so callers never share the Operand2 pointer with the store
func cloneOperation(op domain.Operation) domain.Operation {
	if op.Operand2 != nil {
		v := *op.Operand2
		op.Operand2 = &v
	}
	return op
}

var _ repository.OperationRepository = (*OperationRepository)(nil)
