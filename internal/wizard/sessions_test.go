package wizard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySessionsRoundTrip(t *testing.T) {
	ctx := context.Background()
	sessions := NewMemorySessions()

	st := NewState()
	st.Nickname = "dana"
	require.NoError(t, sessions.Save(ctx, "s1", st))

	// later mutation of the caller's copy must not leak into the store
	st.Nickname = "mallory"

	loaded, err := sessions.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "dana", loaded.Nickname)

	// loads are independent copies
	loaded.Nickname = "eve"
	again, err := sessions.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "dana", again.Nickname)
}

func TestMemorySessionsMissing(t *testing.T) {
	ctx := context.Background()
	sessions := NewMemorySessions()

	_, err := sessions.Load(ctx, "absent")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, sessions.Save(ctx, "s1", NewState()))
	require.NoError(t, sessions.Delete(ctx, "s1"))
	_, err = sessions.Load(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// deleting a missing session is a no-op
	assert.NoError(t, sessions.Delete(ctx, "never-existed"))
}

func TestProgressCapAndFinish(t *testing.T) {
	p := NewProgress()
	p.Start(time.Hour) // ticker interval irrelevant; we drive Tick directly

	for i := 0; i < 1000; i++ {
		p.Tick()
	}
	assert.LessOrEqual(t, p.Value(), 95, "ramp never claims completion")
	assert.Greater(t, p.Value(), 0)

	p.Finish()
	assert.Equal(t, 100, p.Value())

	// ticks after completion are ignored
	p.Tick()
	assert.Equal(t, 100, p.Value())

	// Finish is idempotent
	p.Finish()
	assert.Equal(t, 100, p.Value())
}
