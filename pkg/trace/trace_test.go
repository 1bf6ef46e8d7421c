package trace

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, FromContext(ctx))

	ctx = WithContext(ctx, "t-1")
	assert.Equal(t, "t-1", FromContext(ctx))
}

func TestFromHeaders(t *testing.T) {
	assert.Equal(t, "trace", FromHeaders("trace", "req"))
	assert.Equal(t, "req", FromHeaders("", "req"))

	generated := FromHeaders("", "")
	_, err := uuid.Parse(generated)
	require.NoError(t, err)
}
