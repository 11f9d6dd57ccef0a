package notify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithoutTokenIsNop(t *testing.T) {
	n, err := New("")
	require.NoError(t, err)
	assert.IsType(t, Nop{}, n)
	assert.NoError(t, n.Notify(context.Background(), 42, "привет"))
}

func TestNewTelegramRequiresToken(t *testing.T) {
	_, err := NewTelegram("")
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestNewTelegramRejectsMalformedToken(t *testing.T) {
	_, err := NewTelegram("not-a-token")
	assert.Error(t, err)
}
