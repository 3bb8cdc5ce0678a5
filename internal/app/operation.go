package app

import (
	"fmt"
	"strings"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Operation tracks a CLI command that may mutate the catalog.
// Operations are created in memory with ID=0. Only mutating commands
// persist them (giving them an auto-increment ID from the database).
type Operation struct {
	ID         int64
	Operation  string
	Parameters string
	Status     string // "success" or "error"
}

// NewOperation creates an in-memory operation. args are joined into the
// recorded parameters.
func NewOperation(operation string, args ...string) *Operation {
	return &Operation{
		Operation:  operation,
		Parameters: strings.Join(args, " "),
		Status:     statusSuccess,
	}
}

// Persisted returns true if this operation has been saved to the database.
func (op *Operation) Persisted() bool {
	return op.ID != 0
}

// Fail marks the operation as failed.
func (op *Operation) Fail() {
	op.Status = statusError
}

func (op *Operation) String() string {
	if op.Parameters == "" {
		return op.Operation
	}
	return fmt.Sprintf("%s(%s)", op.Operation, op.Parameters)
}
