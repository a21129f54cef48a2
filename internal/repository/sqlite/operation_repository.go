package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"calc-ledger/internal/domain"
	"calc-ledger/internal/repository"
)

const createOperationsTable = `
CREATE TABLE IF NOT EXISTS operations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	owner_id INTEGER NOT NULL,
	operation_type TEXT NOT NULL,
	operand1 REAL NOT NULL,
	operand2 REAL NULL,
	result REAL NOT NULL,
	created_at DATETIME NOT NULL,
	FOREIGN KEY(owner_id) REFERENCES users(id)
);
CREATE INDEX IF NOT EXISTS idx_operations_owner_id ON operations(owner_id);
`

type OperationRepository struct {
	db *sql.DB
}

func NewOperationRepository(db *sql.DB) repository.OperationRepository {
	return &OperationRepository{db: db}
}

func (r *OperationRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createOperationsTable); err != nil {
		return fmt.Errorf("create operations table: %w", err)
	}
	return nil
}

func (r *OperationRepository) Record(ctx context.Context, op *domain.Operation) error {
	op.CreatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
INSERT INTO operations (owner_id, operation_type, operand1, operand2, result, created_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		op.OwnerID,
		string(op.Type),
		op.Operand1,
		nullFloat(op.Operand2),
		op.Result,
		op.CreatedAt,
	)
	if err != nil {
		return unavailable("insert operation", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return unavailable("operation last insert id", err)
	}
	op.ID = id
	return nil
}

func (r *OperationRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Operation, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, owner_id, operation_type, operand1, operand2, result, created_at
FROM operations
WHERE owner_id=?
ORDER BY id ASC`, ownerID)
	if err != nil {
		return nil, unavailable("query operations", err)
	}
	defer rows.Close()

	ops := []domain.Operation{}
	for rows.Next() {
		op, err := scanOperation(rows)
		if err != nil {
			return nil, err
		}
		ops = append(ops, *op)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate operations", err)
	}

	return ops, nil
}

func (r *OperationRepository) GetByOwnerAndID(ctx context.Context, ownerID, id int64) (*domain.Operation, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, owner_id, operation_type, operand1, operand2, result, created_at
FROM operations
WHERE id=? AND owner_id=?`,
		id,
		ownerID,
	)
	return scanOperation(row)
}

func scanOperation(scanner interface {
	Scan(dest ...any) error
}) (*domain.Operation, error) {
	var (
		op        domain.Operation
		opType    string
		operand2  sql.NullFloat64
		createdAt time.Time
	)

	if err := scanner.Scan(
		&op.ID,
		&op.OwnerID,
		&opType,
		&op.Operand1,
		&operand2,
		&op.Result,
		&createdAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("operation: %w", repository.ErrNotFound)
		}
		return nil, unavailable("scan operation", err)
	}

	op.Type = domain.OperationType(opType)
	op.CreatedAt = createdAt.UTC()
	if operand2.Valid {
		v := operand2.Float64
		op.Operand2 = &v
	}

	return &op, nil
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
