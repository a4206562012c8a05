package core

import (
	"errors"
	"strconv"
)

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unknown
	ErrUnknown ErrorCode = 100000
	// ErrOperationForbidden operation forbidden
	ErrOperationForbidden ErrorCode = 100001

	// ErrVaultNotFound no vault
	ErrVaultNotFound ErrorCode = 100100
	// ErrInvalidAmount zero or disallowed amount
	ErrInvalidAmount ErrorCode = 100101
	// ErrInsufficientShares position holds fewer shares than requested
	ErrInsufficientShares ErrorCode = 100102
	// ErrInsufficientLiquidity not enough liquid assets in custody
	ErrInsufficientLiquidity ErrorCode = 100103
	// ErrInsufficientReserves not enough reserves
	ErrInsufficientReserves ErrorCode = 100104
	// ErrInsufficientCollateral borrow exceeds collateral allowance
	ErrInsufficientCollateral ErrorCode = 100105
	// ErrNoDebtToRepay nothing borrowed
	ErrNoDebtToRepay ErrorCode = 100106
	// ErrReserveFactorTooHigh reserve factor above the maximum
	ErrReserveFactorTooHigh ErrorCode = 100107
	// ErrInvalidLockTier tier code out of range
	ErrInvalidLockTier ErrorCode = 100108
	// ErrTierMismatch top-up with a different tier
	ErrTierMismatch ErrorCode = 100109
	// ErrStillLocked position is locked
	ErrStillLocked ErrorCode = 100110
	// ErrNotLockedForEarlyWithdrawal lock already expired, use withdraw
	ErrNotLockedForEarlyWithdrawal ErrorCode = 100111
	// ErrMathOverflow arithmetic out of range
	ErrMathOverflow ErrorCode = 100112
	// ErrVaultPaused vault paused
	ErrVaultPaused ErrorCode = 100113
	// ErrUnauthorizedPool pool is not the vault's pool
	ErrUnauthorizedPool ErrorCode = 100114
	// ErrInvalidOwnership holder does not own the identity
	ErrInvalidOwnership ErrorCode = 100115
	// ErrVaultExists vault already initialized
	ErrVaultExists ErrorCode = 100116
	// ErrPaymentNotFound inbound transfer not received
	ErrPaymentNotFound ErrorCode = 100117
)

// ErrClockRegression current time is before the vault's last update. It is an
// internal invariant violation and aborts the operation.
var ErrClockRegression = errors.New("clock regression")

var errorMessages = map[ErrorCode]string{
	ErrUnknown:                     "unknown error",
	ErrOperationForbidden:          "operation forbidden",
	ErrVaultNotFound:               "vault not found",
	ErrInvalidAmount:               "invalid amount",
	ErrInsufficientShares:          "insufficient shares",
	ErrInsufficientLiquidity:       "insufficient liquidity",
	ErrInsufficientReserves:        "insufficient reserves",
	ErrInsufficientCollateral:      "insufficient collateral",
	ErrNoDebtToRepay:               "no debt to repay",
	ErrReserveFactorTooHigh:        "reserve factor too high",
	ErrInvalidLockTier:             "invalid lock tier",
	ErrTierMismatch:                "lock tier mismatch",
	ErrStillLocked:                 "position still locked",
	ErrNotLockedForEarlyWithdrawal: "position not locked, use withdraw",
	ErrMathOverflow:                "math overflow",
	ErrVaultPaused:                 "vault paused",
	ErrUnauthorizedPool:            "unauthorized pool",
	ErrInvalidOwnership:            "invalid ownership",
	ErrVaultExists:                 "vault already exists",
	ErrPaymentNotFound:             "payment not found",
}

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

// Message human readable description
func (e ErrorCode) Message() string {
	if msg, ok := errorMessages[e]; ok {
		return msg
	}

	return errorMessages[ErrUnknown]
}

func (e ErrorCode) Error() string {
	return e.Message()
}
