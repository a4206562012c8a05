package core

import (
	"context"
)

// Session resolves access tokens to holders
type Session interface {
	// Login return holder mixin id
	Login(ctx context.Context, accessToken string) (string, error)
}
