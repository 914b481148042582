// Package playback drives the gesture-gated view experience: one state
// machine per page life coordinating reveal timing and synchronized
// volume/mute across up to three independent media elements.
package playback

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/w4tchme/w4tchme/internal/model"
)

// State of the sequencer. Forward-only within a page life.
type State int

const (
	StateAwaitingGesture State = iota
	StateRevealing
	StatePlaying
)

// Element identifies one of the up-to-three media elements on a screen.
type Element int

const (
	ElementVideo Element = iota
	ElementAudio
	ElementVideoAudio
)

// Fixed offsets from the start gesture. Wall-clock based: play commands
// are issued at these offsets whether or not media finished buffering.
const (
	revealDelay = 100 * time.Millisecond
	playDelay   = 200 * time.Millisecond
)

// Player issues media commands to the rendered elements. Play is
// best-effort: an error is logged and discarded, matching browser
// autoplay-rejection semantics.
type Player interface {
	Play(el Element) error
	SetVolume(el Element, volume float64)
	SetMuted(el Element, muted bool)
}

// Option configures a Sequencer at construction.
type Option func(*Sequencer)

// WithScheduler replaces the timer used for the staged delays. Tests pass
// a synchronous fake.
func WithScheduler(schedule func(d time.Duration, fn func())) Option {
	return func(s *Sequencer) { s.schedule = schedule }
}

// WithLandscapeGate enables the portrait-blocking overlay.
func WithLandscapeGate() Option {
	return func(s *Sequencer) { s.enforceLandscape = true }
}

// WithTouchSession marks the session as touch-primary, which disables both
// the orientation gate and the pointer parallax.
func WithTouchSession() Option {
	return func(s *Sequencer) { s.touch = true }
}

// Sequencer owns the view page's playback state for one screen.
type Sequencer struct {
	mu     sync.Mutex
	screen model.Screen
	player Player

	state    State
	gestured bool

	enforceLandscape bool
	touch            bool
	blocked          bool

	offsetX float64
	offsetY float64

	schedule func(d time.Duration, fn func())
}

func New(screen model.Screen, player Player, opts ...Option) *Sequencer {
	s := &Sequencer{
		screen: screen,
		player: player,
		state:  StateAwaitingGesture,
		schedule: func(d time.Duration, fn func()) {
			time.AfterFunc(d, fn)
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Sequencer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Gesture handles the start tap/keypress. Only the first call has any
// effect; later gestures never re-run the reveal timing or replay media.
func (s *Sequencer) Gesture() {
	s.mu.Lock()
	if s.gestured {
		s.mu.Unlock()
		return
	}
	s.gestured = true
	s.mu.Unlock()

	s.schedule(revealDelay, s.reveal)
	s.schedule(playDelay, s.startPlayback)
}

func (s *Sequencer) reveal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateAwaitingGesture {
		s.state = StateRevealing
	}
}

// startPlayback issues the single play batch: volumes applied from each
// element's own configured value, mute applied to the primary video only,
// then a fire-and-forget play per present element.
func (s *Sequencer) startPlayback() {
	s.mu.Lock()
	screen := s.screen
	s.state = StatePlaying
	s.mu.Unlock()

	if screen.AudioURL != nil {
		s.player.SetVolume(ElementAudio, volumeOf(screen.AudioVolume))
		s.playElement(ElementAudio)
	}
	if screen.VideoAudioURL != nil {
		s.player.SetVolume(ElementVideoAudio, volumeOf(screen.VideoAudioVolume))
		s.playElement(ElementVideoAudio)
	}
	if screen.MediaType == model.MediaVideo {
		s.player.SetMuted(ElementVideo, screen.MuteOriginalAudio)
		s.playElement(ElementVideo)
	}
}

func (s *Sequencer) playElement(el Element) {
	if err := s.player.Play(el); err != nil {
		// autoplay rejection is an expected platform outcome, not an error
		log.Debug().Err(err).Int("element", int(el)).Msg("play rejected")
	}
}

// ElementReady re-applies the element's configured volume/mute when its
// "can play" readiness fires. Platforms reset volume on source change, so
// readiness always re-syncs from configuration.
func (s *Sequencer) ElementReady(el Element) {
	s.mu.Lock()
	screen := s.screen
	s.mu.Unlock()

	switch el {
	case ElementAudio:
		s.player.SetVolume(ElementAudio, volumeOf(screen.AudioVolume))
	case ElementVideoAudio:
		s.player.SetVolume(ElementVideoAudio, volumeOf(screen.VideoAudioVolume))
	case ElementVideo:
		s.player.SetMuted(ElementVideo, screen.MuteOriginalAudio)
	}
}

// SetAudioVolume updates the background track's configured volume and
// applies it. The other two elements are untouched.
func (s *Sequencer) SetAudioVolume(volume int) {
	s.mu.Lock()
	s.screen.AudioVolume = clamp(volume)
	v := s.screen.AudioVolume
	s.mu.Unlock()
	s.player.SetVolume(ElementAudio, volumeOf(v))
}

// SetVideoAudioVolume updates the video-overlay track's configured volume
// and applies it.
func (s *Sequencer) SetVideoAudioVolume(volume int) {
	s.mu.Lock()
	s.screen.VideoAudioVolume = clamp(volume)
	v := s.screen.VideoAudioVolume
	s.mu.Unlock()
	s.player.SetVolume(ElementVideoAudio, volumeOf(v))
}

// SetMuteOriginalAudio toggles only the primary video's native mute flag.
func (s *Sequencer) SetMuteOriginalAudio(mute bool) {
	s.mu.Lock()
	s.screen.MuteOriginalAudio = mute
	s.mu.Unlock()
	s.player.SetMuted(ElementVideo, mute)
}

// Resize feeds a viewport size into the orientation gate. Portrait blocks
// only when the gate is enabled and the session is not touch-primary.
func (s *Sequencer) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enforceLandscape || s.touch {
		s.blocked = false
		return
	}
	s.blocked = width <= height
}

// Blocked reports whether the rotate-your-device overlay covers the page.
// Orthogonal to State: playback state is preserved underneath.
func (s *Sequencer) Blocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blocked
}

// Pointer updates the cosmetic parallax offset from a pointer position.
// Never affects playback state; ignored on touch sessions.
func (s *Sequencer) Pointer(x, y, viewportWidth, viewportHeight int) {
	if viewportWidth <= 0 || viewportHeight <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.touch {
		return
	}
	s.offsetX = clampUnit(float64(x)/float64(viewportWidth)*2 - 1)
	s.offsetY = clampUnit(float64(y)/float64(viewportHeight)*2 - 1)
}

// Offset returns the normalized parallax offset, each axis in [-1, 1].
func (s *Sequencer) Offset() (x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.offsetX, s.offsetY
}

// volumeOf maps a stored 0-100 volume onto the platform's 0.0-1.0 range.
func volumeOf(volume int) float64 {
	return float64(clamp(volume)) / 100
}

func clamp(volume int) int {
	if volume < model.MinVolume {
		return model.MinVolume
	}
	if volume > model.MaxVolume {
		return model.MaxVolume
	}
	return volume
}

func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
