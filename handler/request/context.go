package request

import (
	"context"
)

type key int

const (
	holderKey key = iota
)

// ContextX context extension
type ContextX struct {
	context.Context
}

// NewContext context extension
func NewContext(ctx context.Context) ContextX {
	return ContextX{
		Context: ctx,
	}
}

// WithHolder context with the authenticated holder
func (c ContextX) WithHolder(holder string) context.Context {
	return context.WithValue(c, holderKey, holder)
}

// GetHolder get the authenticated holder from context
func (c ContextX) GetHolder() (string, bool) {
	holder, ok := c.Value(holderKey).(string)
	return holder, ok && holder != ""
}
