package mvc

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithValueValueOf_roundTrip(t *testing.T) {
	t.Parallel()

	r, err := http.NewRequestWithContext(context.Background(), http.MethodGet, "/test", nil)
	require.NoError(t, err)

	r = withValue(r, requestID("req-1"))

	val, ok := valueOf[requestID](r.Context())
	assert.True(t, ok)
	assert.Equal(t, requestID("req-1"), val)
}

func TestValueOf_missing_returns_false(t *testing.T) {
	t.Parallel()

	val, ok := valueOf[*accessEntry](context.Background())
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestWithValue_different_types_no_collision(t *testing.T) {
	t.Parallel()

	r, err := http.NewRequestWithContext(context.Background(), http.MethodGet, "/test", nil)
	require.NoError(t, err)

	entry := &accessEntry{route: "/x"}
	r = withValue(r, requestID("abc"))
	r = withValue(r, entry)

	id, ok := valueOf[requestID](r.Context())
	assert.True(t, ok)
	assert.Equal(t, requestID("abc"), id)

	got, ok := valueOf[*accessEntry](r.Context())
	assert.True(t, ok)
	assert.Same(t, entry, got)
}
