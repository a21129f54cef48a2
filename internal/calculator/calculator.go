// Package calculator implements the arithmetic operations exposed by the API.
package calculator

import (
	"errors"
	"fmt"
	"math"

	"calc-ledger/internal/domain"
)

var (
	ErrDivisionByZero   = errors.New("division by zero")
	ErrNegativeOperand  = errors.New("square root of negative number")
	ErrMissingOperand   = errors.New("second operand is required")
	ErrUnknownOperation = errors.New("unknown operation")
)

func Sum(a, b float64) float64 { return a + b }

func Sub(a, b float64) float64 { return a - b }

func Mul(a, b float64) float64 { return a * b }

// Pow follows math.Pow, including its handling of fractional and negative exponents.
func Pow(a, b float64) float64 { return math.Pow(a, b) }

func Div(a, b float64) (float64, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	return a / b, nil
}

func Sqrt(a float64) (float64, error) {
	if a < 0 {
		return 0, ErrNegativeOperand
	}
	return math.Sqrt(a), nil
}

// Apply runs op over the operands. b is ignored for unary operations and
// must be non-nil for binary ones.
func Apply(op domain.OperationType, a float64, b *float64) (float64, error) {
	if !op.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrUnknownOperation, op)
	}
	if op == domain.OperationSqrt {
		return Sqrt(a)
	}
	if b == nil {
		return 0, ErrMissingOperand
	}

	switch op {
	case domain.OperationSum:
		return Sum(a, *b), nil
	case domain.OperationSub:
		return Sub(a, *b), nil
	case domain.OperationMul:
		return Mul(a, *b), nil
	case domain.OperationPow:
		return Pow(a, *b), nil
	default:
		return Div(a, *b)
	}
}
