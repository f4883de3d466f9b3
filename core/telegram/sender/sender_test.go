package sender

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDoReturnsCallResult(t *testing.T) {
	calls := 0
	err := Do(context.Background(), "send.text", "sendMessage", func() error {
		calls++
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, calls)

	boom := errors.New("boom")
	calls = 0
	//nolint:staticcheck // nil context falls back to Background
	err = Do(nil, "edit.text", "", func() error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls, "failed calls are not retried")
}
