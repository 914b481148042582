package model

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClampBounds(t *testing.T) {
	s := Screen{
		ImageOpacity:     150,
		AudioVolume:      -5,
		VideoAudioVolume: 300,
		ImageScale:       5,
		MediaScale:       999,
		VideoScale:       -20,
	}
	s.Clamp()

	assert.Equal(t, 100, s.ImageOpacity)
	assert.Equal(t, 0, s.AudioVolume)
	assert.Equal(t, 100, s.VideoAudioVolume)
	assert.Equal(t, 10, s.ImageScale)
	assert.Equal(t, 200, s.MediaScale)
	assert.Equal(t, 10, s.VideoScale)
}

func TestClampDefaults(t *testing.T) {
	var s Screen
	s.Clamp()

	assert.Equal(t, 100, s.ImageScale)
	assert.Equal(t, 100, s.MediaScale)
	assert.Equal(t, 100, s.VideoScale)
	assert.Equal(t, "#000000", s.BackgroundColor)
}

func TestClampKeepsInRangeValues(t *testing.T) {
	s := Screen{
		ImageOpacity:     42,
		AudioVolume:      77,
		VideoAudioVolume: 1,
		ImageScale:       10,
		MediaScale:       200,
		VideoScale:       55,
	}
	s.Clamp()

	assert.Equal(t, 42, s.ImageOpacity)
	assert.Equal(t, 77, s.AudioVolume)
	assert.Equal(t, 1, s.VideoAudioVolume)
	assert.Equal(t, 10, s.ImageScale)
	assert.Equal(t, 200, s.MediaScale)
	assert.Equal(t, 55, s.VideoScale)
}

func TestExpiredBoundary(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	never := Screen{}
	assert.False(t, never.Expired(now))
	assert.False(t, never.Expired(now.Add(100*365*24*time.Hour)))

	exact := now
	s := Screen{ExpiresAt: &exact}
	assert.True(t, s.Expired(now), "expiry exactly now counts as expired")

	past := now.Add(-time.Second)
	s.ExpiresAt = &past
	assert.True(t, s.Expired(now))

	future := now.Add(time.Hour)
	s.ExpiresAt = &future
	assert.False(t, s.Expired(now))
}

func TestNewScreenID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewScreenID()
		assert.Len(t, id, 10)
		for _, r := range id {
			assert.True(t, strings.ContainsRune(idAlphabet, r), "unexpected rune %q", r)
		}
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
