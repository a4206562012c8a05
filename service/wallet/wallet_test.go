package wallet

import (
	"testing"

	"lendvault/core"

	"github.com/fox-one/mixin-sdk-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaySchemaURL(t *testing.T) {
	s := New(&core.Wallet{Client: &mixin.Client{ClientID: "b5f0bd8b-5ab3-4c9c-9fcd-9fcd0c9b7e3a"}}, 8)

	u, err := s.PaySchemaURL(150_000_000, "965e5c6e-434c-3fa9-b780-c50f43cd955c", "0b4f49dc-8fb2-4539-a83b-95a4d0a6a6f2", "deposit 1")
	require.NoError(t, err)
	assert.Equal(t, "mixin://pay?amount=1.5&asset=965e5c6e-434c-3fa9-b780-c50f43cd955c&recipient=b5f0bd8b-5ab3-4c9c-9fcd-9fcd0c9b7e3a&trace=0b4f49dc-8fb2-4539-a83b-95a4d0a6a6f2&memo=deposit+1", u)

	_, err = s.PaySchemaURL(0, "asset", "trace", "")
	assert.Error(t, err)
}
