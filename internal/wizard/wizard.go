// Package wizard implements the linear screen-creation flow: collect
// choices step by step, upload assets eagerly, persist a single screen row
// at the end.
package wizard

import (
	"errors"
	"mime/multipart"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/w4tchme/w4tchme/internal/db"
	"github.com/w4tchme/w4tchme/internal/model"
	"github.com/w4tchme/w4tchme/internal/storage"
)

// Step names the wizard's ordered stages. Transitions are forward-only.
type Step string

const (
	StepNickname   Step = "nickname"
	StepBackground Step = "background"
	StepMedia      Step = "media"
	StepAudio      Step = "audio"
	StepSettings   Step = "settings"
	StepDone       Step = "done"
)

// DefaultMaxUploadBytes caps a single asset upload at 50MB, checked before
// the storage gateway is touched.
const DefaultMaxUploadBytes = 50 << 20

// Upload targets. Each maps to a fixed storage folder.
type UploadKind string

const (
	UploadBackground UploadKind = "background"
	UploadMedia      UploadKind = "media"
	UploadAudio      UploadKind = "audio"
	UploadVideoAudio UploadKind = "video_audio"
)

var (
	ErrStepIncomplete = errors.New("current step has no valid selection")
	ErrWizardDone     = errors.New("wizard already completed")
	ErrFileTooLarge   = errors.New("file exceeds the upload size limit")
	ErrCreating       = errors.New("creation already in progress")
)

// State is the serializable per-session wizard state. Uploads store public
// URLs here; nothing reaches the database until Finalize.
type State struct {
	Step Step `json:"step"`

	Nickname string `json:"nickname"`

	BackgroundType  string `json:"background_type"`
	BackgroundColor string `json:"background_color"`
	BackgroundImage string `json:"background_image"`
	ImageOpacity    int    `json:"image_opacity"`
	ImageScale      int    `json:"image_scale"`

	MediaURL   string `json:"media_url"`
	MediaType  string `json:"media_type"`
	MediaScale int    `json:"media_scale"`
	VideoScale int    `json:"video_scale"`

	AudioURL         string `json:"audio_url"`
	AudioVolume      int    `json:"audio_volume"`
	VideoAudioURL    string `json:"video_audio_url"`
	VideoAudioVolume int    `json:"video_audio_volume"`

	MuteOriginalAudio bool `json:"mute_original_audio"`
	ShowVideoControls bool `json:"show_video_controls"`

	Creating bool   `json:"creating"`
	ScreenID string `json:"screen_id"`
}

// NewState starts a fresh wizard at the nickname step with the same
// defaults the form renders.
func NewState() *State {
	return &State{
		Step:            StepNickname,
		BackgroundType:  model.BackgroundColor,
		BackgroundColor: "#000000",
		ImageOpacity:    100,
		ImageScale:      100,
		MediaType:       model.MediaGIF,
		MediaScale:      100,
		VideoScale:      100,
		AudioVolume:     50,
		VideoAudioVolume: 50,
	}
}

// CanAdvance is the per-step "has required input" predicate gating the
// Next action. The audio step is always satisfiable.
func (st *State) CanAdvance() bool {
	switch st.Step {
	case StepNickname:
		return strings.TrimSpace(st.Nickname) != ""
	case StepBackground:
		if st.BackgroundType == model.BackgroundImage {
			return st.BackgroundImage != ""
		}
		return strings.TrimSpace(st.BackgroundColor) != ""
	case StepMedia:
		return strings.TrimSpace(st.MediaURL) != ""
	case StepAudio:
		return true
	default:
		return false
	}
}

// NextLabel mirrors the form's button text: the audio step shows "Skip"
// until a track is chosen.
func (st *State) NextLabel() string {
	if st.Step == StepAudio && st.AudioURL == "" && st.VideoAudioURL == "" {
		return "Skip"
	}
	return "Next"
}

// Wizard carries the injected collaborators; per-session data lives in
// State so it can round-trip through the session store.
type Wizard struct {
	store          db.Store
	gateway        storage.Gateway
	maxUploadBytes int64
	now            func() time.Time
	newID          func() string
}

// Option configures a Wizard.
type Option func(*Wizard)

func WithMaxUploadBytes(n int64) Option {
	return func(w *Wizard) { w.maxUploadBytes = n }
}

func WithClock(now func() time.Time) Option {
	return func(w *Wizard) { w.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(w *Wizard) { w.newID = newID }
}

func New(store db.Store, gateway storage.Gateway, opts ...Option) *Wizard {
	w := &Wizard{
		store:          store,
		gateway:        gateway,
		maxUploadBytes: DefaultMaxUploadBytes,
		now:            time.Now,
		newID:          model.NewScreenID,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Advance moves to the next step when the current one is satisfied. The
// settings step only leaves via Finalize.
func (w *Wizard) Advance(st *State) error {
	if st.Step == StepDone {
		return ErrWizardDone
	}
	if st.Step == StepSettings {
		return ErrStepIncomplete
	}
	if !st.CanAdvance() {
		return ErrStepIncomplete
	}
	switch st.Step {
	case StepNickname:
		st.Step = StepBackground
	case StepBackground:
		st.Step = StepMedia
	case StepMedia:
		st.Step = StepAudio
	case StepAudio:
		st.Step = StepSettings
	}
	return nil
}

// Upload sends one selected file to its fixed storage folder and records
// the returned public URL in the wizard state. Oversized files are
// rejected before any network call.
func (w *Wizard) Upload(st *State, kind UploadKind, fileHeader *multipart.FileHeader) (string, error) {
	if st.Step == StepDone {
		return "", ErrWizardDone
	}
	if fileHeader.Size > w.maxUploadBytes {
		log.Warn().Int64("size", fileHeader.Size).Str("kind", string(kind)).Msg("upload rejected: too large")
		return "", ErrFileTooLarge
	}

	if kind == UploadMedia && st.MediaType == model.MediaVideo {
		fileHeader = compressVideo(fileHeader)
	}

	var folder string
	switch kind {
	case UploadBackground:
		folder = storage.FolderBackgrounds
	case UploadMedia:
		folder = storage.FolderMedia
	case UploadAudio, UploadVideoAudio:
		folder = storage.FolderAudio
	default:
		return "", errors.New("unknown upload kind: " + string(kind))
	}

	url, err := w.gateway.SaveFile(fileHeader, folder)
	if err != nil {
		log.Error().Err(err).Str("kind", string(kind)).Msg("upload failed")
		return "", err
	}

	switch kind {
	case UploadBackground:
		st.BackgroundImage = url
	case UploadMedia:
		st.MediaURL = url
	case UploadAudio:
		st.AudioURL = url
	case UploadVideoAudio:
		st.VideoAudioURL = url
	}
	return url, nil
}

// compressVideo is a recommendation-only stub: oversized videos pass
// through untouched. TODO: wire an ffmpeg transcode once a worker exists.
func compressVideo(fileHeader *multipart.FileHeader) *multipart.FileHeader {
	return fileHeader
}

// Finalize assembles the screen from accumulated state and performs the
// single insert. expiryHours of 0 means the link never expires. A random
// id collision is retried with a fresh id; already-uploaded assets are
// never cleaned up on failure.
func (w *Wizard) Finalize(st *State, expiryHours int) (*model.Screen, error) {
	if st.Step == StepDone {
		return nil, ErrWizardDone
	}
	if st.Step != StepSettings {
		return nil, ErrStepIncomplete
	}
	if st.Creating {
		return nil, ErrCreating
	}
	st.Creating = true

	screen := st.buildScreen()
	if expiryHours > 0 {
		expiresAt := w.now().Add(time.Duration(expiryHours) * time.Hour)
		screen.ExpiresAt = &expiresAt
	}
	screen.Clamp()

	const maxIDAttempts = 3
	var err error
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		screen.ID = w.newID()
		err = w.store.CreateScreen(screen)
		if err == nil {
			st.Creating = false
			st.Step = StepDone
			st.ScreenID = screen.ID
			return screen, nil
		}
		if !errors.Is(err, db.ErrDuplicateID) {
			break
		}
	}

	// reset so the user can retry from the settings step
	st.Creating = false
	log.Error().Err(err).Msg("screen creation failed")
	return nil, err
}

func (st *State) buildScreen() *model.Screen {
	screen := &model.Screen{
		BackgroundType:    st.BackgroundType,
		BackgroundColor:   st.BackgroundColor,
		ImageOpacity:      st.ImageOpacity,
		ImageScale:        st.ImageScale,
		MediaURL:          st.MediaURL,
		MediaType:         st.MediaType,
		MediaScale:        st.MediaScale,
		VideoScale:        st.VideoScale,
		ShowVideoControls: st.ShowVideoControls,
		AudioVolume:       st.AudioVolume,
		VideoAudioVolume:  st.VideoAudioVolume,
		MuteOriginalAudio: st.MuteOriginalAudio,
	}
	if nickname := strings.TrimSpace(st.Nickname); nickname != "" {
		screen.Nickname = &nickname
	}
	if st.BackgroundType == model.BackgroundImage && st.BackgroundImage != "" {
		img := st.BackgroundImage
		screen.BackgroundImage = &img
	}
	if st.AudioURL != "" {
		u := st.AudioURL
		screen.AudioURL = &u
	}
	if st.VideoAudioURL != "" {
		u := st.VideoAudioURL
		screen.VideoAudioURL = &u
	}
	return screen
}
