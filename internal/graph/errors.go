package graph

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes graph errors.
type ErrorCode string

const (
	// ErrCodeContractViolation indicates an argument that does not satisfy the
	// Observer contract.
	ErrCodeContractViolation ErrorCode = "CONTRACT_VIOLATION"
)

// ContractError is returned when a caller breaks a validated precondition.
type ContractError struct {
	Code    ErrorCode
	Message string
}

// Error implements the error interface.
func (e *ContractError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsContractError reports whether err is, or wraps, a contract violation.
func IsContractError(err error) bool {
	var ce *ContractError
	if errors.As(err, &ce) {
		return ce.Code == ErrCodeContractViolation
	}
	return false
}

func newContractError(format string, args ...any) *ContractError {
	return &ContractError{
		Code:    ErrCodeContractViolation,
		Message: fmt.Sprintf(format, args...),
	}
}
