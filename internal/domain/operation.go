package domain

import "time"

type OperationType string

const (
	OperationSum  OperationType = "sum"
	OperationSub  OperationType = "sub"
	OperationMul  OperationType = "mul"
	OperationPow  OperationType = "pow"
	OperationSqrt OperationType = "sqrt"
	OperationDiv  OperationType = "div"
)

// OperationTypes lists every supported operation in route order.
var OperationTypes = []OperationType{
	OperationSum,
	OperationSub,
	OperationMul,
	OperationPow,
	OperationSqrt,
	OperationDiv,
}

// Valid reports whether t names a supported operation.
func (t OperationType) Valid() bool {
	for _, known := range OperationTypes {
		if t == known {
			return true
		}
	}
	return false
}

// IsBinary reports whether the operation takes a second operand.
func (t OperationType) IsBinary() bool {
	return t != OperationSqrt
}

// Operation is a single executed arithmetic call recorded in a user's history.
type Operation struct {
	ID        int64
	OwnerID   int64
	Type      OperationType
	Operand1  float64
	Operand2  *float64
	Result    float64
	CreatedAt time.Time
}
