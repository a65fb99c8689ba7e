package domain

import (
	"errors"
	"fmt"
)

var (
	// Common domain errors
	ErrNotFound            = errors.New("entity not found")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrInvalidAmount       = errors.New("amount must be a positive integer")
	ErrCodeNotFound        = errors.New("redeem code not found")
	ErrCodeAlreadyUsed     = errors.New("redeem code already used")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrNoResults           = errors.New("lookup returned no records")
	ErrInvalidExecContext  = errors.New("invalid database execution context")
)

// InsufficientCreditsError carries the caller's balance at the moment the
// metered operation was refused, so front ends can show it.
// errors.Is(err, ErrInsufficientCredits) matches.
type InsufficientCreditsError struct {
	Balance int64
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("insufficient credits (balance %d)", e.Balance)
}

func (e *InsufficientCreditsError) Is(target error) bool {
	return target == ErrInsufficientCredits
}
