package sink

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySinkPutGetRoundTrips(t *testing.T) {
	s := NewMemorySink()
	err := s.Put(context.Background(), "job1", "canvas", "application/json", []byte(`{"ok":true}`))
	require.NoError(t, err)

	body, ok := s.Get("job1", "canvas")
	require.True(t, ok)
	assert.Equal(t, `{"ok":true}`, string(body))
}

func TestMemorySinkGetMissingArtifact(t *testing.T) {
	s := NewMemorySink()
	_, ok := s.Get("job1", "missing")
	assert.False(t, ok)
}

func TestMemorySinkPutIsIdempotent(t *testing.T) {
	s := NewMemorySink()
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, "job1", "canvas", "application/json", []byte("a")))
	require.NoError(t, s.Put(ctx, "job1", "canvas", "application/json", []byte("a")))

	body, ok := s.Get("job1", "canvas")
	require.True(t, ok)
	assert.Equal(t, "a", string(body))
}
