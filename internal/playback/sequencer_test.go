package playback_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/w4tchme/w4tchme/internal/model"
	"github.com/w4tchme/w4tchme/internal/playback"
)

type fakePlayer struct {
	mu      sync.Mutex
	plays   map[playback.Element]int
	volumes map[playback.Element]float64
	muted   map[playback.Element]bool
	playErr error
}

func newFakePlayer() *fakePlayer {
	return &fakePlayer{
		plays:   make(map[playback.Element]int),
		volumes: make(map[playback.Element]float64),
		muted:   make(map[playback.Element]bool),
	}
}

func (f *fakePlayer) Play(el playback.Element) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.plays[el]++
	return f.playErr
}

func (f *fakePlayer) SetVolume(el playback.Element, volume float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.volumes[el] = volume
}

func (f *fakePlayer) SetMuted(el playback.Element, muted bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.muted[el] = muted
}

func (f *fakePlayer) playCount(el playback.Element) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.plays[el]
}

func (f *fakePlayer) volume(el playback.Element) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.volumes[el]
}

func (f *fakePlayer) mutedState(el playback.Element) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.muted[el]
}

// immediate runs scheduled callbacks synchronously, in order.
func immediate(_ time.Duration, fn func()) { fn() }

func strPtr(s string) *string { return &s }

func fullScreen() model.Screen {
	return model.Screen{
		ID:                "abc123defg",
		MediaURL:          "https://cdn.example/media/clip.mp4",
		MediaType:         model.MediaVideo,
		AudioURL:          strPtr("https://cdn.example/audio/track.mp3"),
		AudioVolume:       80,
		VideoAudioURL:     strPtr("https://cdn.example/audio/overlay.mp3"),
		VideoAudioVolume:  30,
		MuteOriginalAudio: true,
	}
}

func TestGestureStartsPlaybackOnce(t *testing.T) {
	player := newFakePlayer()
	seq := playback.New(fullScreen(), player, playback.WithScheduler(immediate))

	require.Equal(t, playback.StateAwaitingGesture, seq.State())

	for i := 0; i < 5; i++ {
		seq.Gesture()
	}

	assert.Equal(t, playback.StatePlaying, seq.State())
	assert.Equal(t, 1, player.playCount(playback.ElementVideo))
	assert.Equal(t, 1, player.playCount(playback.ElementAudio))
	assert.Equal(t, 1, player.playCount(playback.ElementVideoAudio))
}

func TestRevealPrecedesPlay(t *testing.T) {
	player := newFakePlayer()

	var scheduled []struct {
		delay time.Duration
		fn    func()
	}
	capture := func(d time.Duration, fn func()) {
		scheduled = append(scheduled, struct {
			delay time.Duration
			fn    func()
		}{d, fn})
	}

	seq := playback.New(fullScreen(), player, playback.WithScheduler(capture))
	seq.Gesture()

	require.Len(t, scheduled, 2)
	assert.Less(t, scheduled[0].delay, scheduled[1].delay)

	scheduled[0].fn()
	assert.Equal(t, playback.StateRevealing, seq.State())
	assert.Zero(t, player.playCount(playback.ElementVideo), "play must wait for the second delay")

	scheduled[1].fn()
	assert.Equal(t, playback.StatePlaying, seq.State())
	assert.Equal(t, 1, player.playCount(playback.ElementVideo))
}

func TestPlayBatchAppliesVolumesAndMute(t *testing.T) {
	player := newFakePlayer()
	seq := playback.New(fullScreen(), player, playback.WithScheduler(immediate))

	seq.Gesture()

	assert.InDelta(t, 0.8, player.volume(playback.ElementAudio), 1e-9)
	assert.InDelta(t, 0.3, player.volume(playback.ElementVideoAudio), 1e-9)
	assert.True(t, player.mutedState(playback.ElementVideo))
}

func TestAbsentElementsAreNotPlayed(t *testing.T) {
	player := newFakePlayer()
	screen := model.Screen{
		MediaURL:  "https://cdn.example/media/loop.gif",
		MediaType: model.MediaGIF,
	}
	seq := playback.New(screen, player, playback.WithScheduler(immediate))

	seq.Gesture()

	assert.Zero(t, player.playCount(playback.ElementVideo))
	assert.Zero(t, player.playCount(playback.ElementAudio))
	assert.Zero(t, player.playCount(playback.ElementVideoAudio))
	assert.Equal(t, playback.StatePlaying, seq.State())
}

func TestPlayRejectionIsSwallowed(t *testing.T) {
	player := newFakePlayer()
	player.playErr = errors.New("NotAllowedError: play() blocked")
	seq := playback.New(fullScreen(), player, playback.WithScheduler(immediate))

	seq.Gesture()

	// state advances despite every play call failing; no retries issued
	assert.Equal(t, playback.StatePlaying, seq.State())
	assert.Equal(t, 1, player.playCount(playback.ElementVideo))
	assert.Equal(t, 1, player.playCount(playback.ElementAudio))
}

func TestVolumeIndependence(t *testing.T) {
	player := newFakePlayer()
	seq := playback.New(fullScreen(), player, playback.WithScheduler(immediate))
	seq.Gesture()

	seq.SetVideoAudioVolume(55)
	assert.InDelta(t, 0.55, player.volume(playback.ElementVideoAudio), 1e-9)
	assert.InDelta(t, 0.8, player.volume(playback.ElementAudio), 1e-9, "background volume untouched")
	assert.True(t, player.mutedState(playback.ElementVideo), "video mute untouched")

	seq.SetAudioVolume(10)
	assert.InDelta(t, 0.1, player.volume(playback.ElementAudio), 1e-9)
	assert.InDelta(t, 0.55, player.volume(playback.ElementVideoAudio), 1e-9)
}

func TestMuteOnlySilencesPrimaryVideo(t *testing.T) {
	player := newFakePlayer()
	screen := fullScreen()
	screen.MuteOriginalAudio = false
	seq := playback.New(screen, player, playback.WithScheduler(immediate))
	seq.Gesture()

	seq.SetMuteOriginalAudio(true)

	assert.True(t, player.mutedState(playback.ElementVideo))
	assert.InDelta(t, 0.3, player.volume(playback.ElementVideoAudio), 1e-9, "overlay track stays at its level")
	assert.InDelta(t, 0.8, player.volume(playback.ElementAudio), 1e-9)
}

func TestElementReadyReappliesConfiguredVolume(t *testing.T) {
	player := newFakePlayer()
	seq := playback.New(fullScreen(), player, playback.WithScheduler(immediate))
	seq.Gesture()

	// simulate the platform resetting volume on a source reload
	player.SetVolume(playback.ElementAudio, 1.0)
	seq.ElementReady(playback.ElementAudio)
	assert.InDelta(t, 0.8, player.volume(playback.ElementAudio), 1e-9)

	player.SetMuted(playback.ElementVideo, false)
	seq.ElementReady(playback.ElementVideo)
	assert.True(t, player.mutedState(playback.ElementVideo))
}

func TestVolumeClampOnLiveChange(t *testing.T) {
	player := newFakePlayer()
	seq := playback.New(fullScreen(), player, playback.WithScheduler(immediate))

	seq.SetAudioVolume(250)
	assert.InDelta(t, 1.0, player.volume(playback.ElementAudio), 1e-9)

	seq.SetAudioVolume(-10)
	assert.InDelta(t, 0.0, player.volume(playback.ElementAudio), 1e-9)
}

func TestOrientationGate(t *testing.T) {
	player := newFakePlayer()

	t.Run("disabled by default", func(t *testing.T) {
		seq := playback.New(fullScreen(), player, playback.WithScheduler(immediate))
		seq.Resize(400, 800)
		assert.False(t, seq.Blocked())
	})

	t.Run("blocks portrait when enabled", func(t *testing.T) {
		seq := playback.New(fullScreen(), player,
			playback.WithScheduler(immediate), playback.WithLandscapeGate())
		seq.Resize(400, 800)
		assert.True(t, seq.Blocked())

		seq.Resize(800, 400)
		assert.False(t, seq.Blocked())

		// square counts as portrait
		seq.Resize(500, 500)
		assert.True(t, seq.Blocked())
	})

	t.Run("touch sessions never block", func(t *testing.T) {
		seq := playback.New(fullScreen(), player,
			playback.WithScheduler(immediate), playback.WithLandscapeGate(), playback.WithTouchSession())
		seq.Resize(400, 800)
		assert.False(t, seq.Blocked())
	})
}

func TestParallaxOffset(t *testing.T) {
	player := newFakePlayer()
	seq := playback.New(fullScreen(), player, playback.WithScheduler(immediate))

	seq.Pointer(0, 0, 1000, 500)
	x, y := seq.Offset()
	assert.InDelta(t, -1, x, 1e-9)
	assert.InDelta(t, -1, y, 1e-9)

	seq.Pointer(500, 250, 1000, 500)
	x, y = seq.Offset()
	assert.InDelta(t, 0, x, 1e-9)
	assert.InDelta(t, 0, y, 1e-9)

	seq.Pointer(1000, 500, 1000, 500)
	x, y = seq.Offset()
	assert.InDelta(t, 1, x, 1e-9)
	assert.InDelta(t, 1, y, 1e-9)

	// pointer movement never affects playback state
	assert.Equal(t, playback.StateAwaitingGesture, seq.State())
}

func TestParallaxIgnoredOnTouch(t *testing.T) {
	player := newFakePlayer()
	seq := playback.New(fullScreen(), player,
		playback.WithScheduler(immediate), playback.WithTouchSession())

	seq.Pointer(1000, 500, 1000, 500)
	x, y := seq.Offset()
	assert.Zero(t, x)
	assert.Zero(t, y)
}
