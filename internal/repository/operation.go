package repository

import (
	"context"

	"calc-ledger/internal/domain"
)

// OperationRepository is the append-only ledger of executed operations.
type OperationRepository interface {
	Init(ctx context.Context) error
	// Record assigns ID and CreatedAt on op.
	Record(ctx context.Context, op *domain.Operation) error
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Operation, error)
	GetByOwnerAndID(ctx context.Context, ownerID, id int64) (*domain.Operation, error)
}
