package codes

import (
	"errors"
	"strconv"

	"lendvault/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/twitchtv/twirp"
)

const (
	// CustomCodeKey code key
	CustomCodeKey = "custom_code"

	// InvalidArguments invalid arguments
	InvalidArguments = 100001
)

// With with specified error
func With(err error, code int) error {
	twerr, ok := err.(twirp.Error)
	if !ok {
		twerr = twirp.InternalErrorWith(err)
	}

	return twerr.WithMeta(CustomCodeKey, strconv.Itoa(code))
}

// Get get error code
func Get(code twirp.ErrorCode) int {
	switch code {
	case twirp.InvalidArgument:
		return InvalidArguments
	default:
		return twirp.ServerHTTPStatusFromErrorCode(code)
	}
}

// Convert vault errors into twirp errors carrying the vault error code
func Convert(err error) twirp.Error {
	if twerr, ok := err.(twirp.Error); ok {
		return twerr
	}

	var code core.ErrorCode
	if errors.As(err, &code) {
		return With(twirp.NewError(twirpCode(code), code.Message()), int(code)).(twirp.Error)
	}

	if errors.Is(err, db.ErrOptimisticLock) {
		return twirp.NewError(twirp.Aborted, "concurrent update, retry")
	}

	return twirp.InternalErrorWith(err)
}

func twirpCode(code core.ErrorCode) twirp.ErrorCode {
	switch code {
	case core.ErrVaultNotFound, core.ErrPaymentNotFound:
		return twirp.NotFound
	case core.ErrInvalidAmount, core.ErrInvalidLockTier, core.ErrReserveFactorTooHigh:
		return twirp.InvalidArgument
	case core.ErrInvalidOwnership, core.ErrUnauthorizedPool, core.ErrOperationForbidden:
		return twirp.PermissionDenied
	case core.ErrVaultExists:
		return twirp.AlreadyExists
	case core.ErrMathOverflow:
		return twirp.OutOfRange
	case core.ErrVaultPaused:
		return twirp.Unavailable
	case core.ErrUnknown:
		return twirp.Internal
	default:
		return twirp.FailedPrecondition
	}
}
