// Package domain provides definitions of all entities.
package domain

import (
	"errors"
	"time"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidAmount indicates an amount that cannot be parsed as a decimal.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNegativeAmount indicates a non-positive amount.
	ErrNegativeAmount = errors.New("negative amount")
	// ErrInsufficientBalance indicates that the account does not have sufficient balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// Account holds balance data for a single account holder.
type Account struct {
	ID         int64     `json:"id"`
	HolderName string    `json:"holder_name"`
	Balance    string    `json:"balance"`
	CreatedAt  time.Time `json:"created_at"`
}
