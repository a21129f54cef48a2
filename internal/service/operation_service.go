package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"calc-ledger/internal/calculator"
	"calc-ledger/internal/domain"
	"calc-ledger/internal/metrics"
	"calc-ledger/internal/repository"
)

// OperationService runs arithmetic calls for authenticated callers and
// serves their history.
type OperationService interface {
	Execute(ctx context.Context, caller *domain.User, op domain.OperationType, n1 float64, n2 *float64) (*domain.Operation, error)
	History(ctx context.Context, caller *domain.User, ownerID int64) ([]domain.Operation, error)
	HistoryItem(ctx context.Context, caller *domain.User, ownerID, operationID int64) (*domain.Operation, error)
}

type operationService struct {
	ledger   repository.OperationRepository
	sessions SessionGateway
}

func NewOperationService(ledger repository.OperationRepository, sessions SessionGateway) OperationService {
	return &operationService{
		ledger:   ledger,
		sessions: sessions,
	}
}

func (s *operationService) Execute(ctx context.Context, caller *domain.User, op domain.OperationType, n1 float64, n2 *float64) (*domain.Operation, error) {
	if caller == nil {
		return nil, ErrUnauthorized
	}

	result, err := calculator.Apply(op, n1, n2)
	if err != nil {
		metrics.RecordOperation(string(op), metrics.OutcomeRejected)
		if errors.Is(err, calculator.ErrMissingOperand) || errors.Is(err, calculator.ErrUnknownOperation) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return nil, err
	}
	if math.IsNaN(result) || math.IsInf(result, 0) {
		metrics.RecordOperation(string(op), metrics.OutcomeRejected)
		return nil, ErrNonFiniteResult
	}

	record := &domain.Operation{
		OwnerID:  caller.ID,
		Type:     op,
		Operand1: n1,
		Result:   result,
	}
	if op.IsBinary() {
		v := *n2
		record.Operand2 = &v
	}

	if err := s.ledger.Record(ctx, record); err != nil {
		metrics.RecordOperation(string(op), metrics.OutcomeFailed)
		return nil, err
	}

	metrics.RecordOperation(string(op), metrics.OutcomeSuccess)
	return record, nil
}

func (s *operationService) History(ctx context.Context, caller *domain.User, ownerID int64) ([]domain.Operation, error) {
	if err := s.sessions.Authorize(caller, ownerID); err != nil {
		return nil, err
	}
	return s.ledger.ListByOwner(ctx, ownerID)
}

func (s *operationService) HistoryItem(ctx context.Context, caller *domain.User, ownerID, operationID int64) (*domain.Operation, error) {
	if err := s.sessions.Authorize(caller, ownerID); err != nil {
		return nil, err
	}
	return s.ledger.GetByOwnerAndID(ctx, ownerID, operationID)
}
