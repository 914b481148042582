package model

import "time"

// Background and media type enums stored on a Screen row.
const (
	BackgroundColor = "color"
	BackgroundImage = "image"

	MediaGIF   = "gif"
	MediaVideo = "video"
)

// Percentage bounds shared by the wizard and the API layer.
const (
	MinOpacity = 0
	MaxOpacity = 100
	MinVolume  = 0
	MaxVolume  = 100
	MinScale   = 10
	MaxScale   = 200
)

// Screen is one shareable composed visual/audio experience.
type Screen struct {
	ID                string     `db:"id"                  json:"id"`
	Nickname          *string    `db:"nickname"            json:"nickname"`
	BackgroundType    string     `db:"background_type"     json:"background_type"`
	BackgroundColor   string     `db:"background_color"    json:"background_color"`
	BackgroundImage   *string    `db:"background_image"    json:"background_image"`
	ImageOpacity      int        `db:"image_opacity"       json:"image_opacity"`
	ImageScale        int        `db:"image_scale"         json:"image_scale"`
	MediaURL          string     `db:"media_url"           json:"media_url"`
	MediaType         string     `db:"media_type"          json:"media_type"`
	MediaScale        int        `db:"media_scale"         json:"media_scale"`
	VideoScale        int        `db:"video_scale"         json:"video_scale"`
	ShowVideoControls bool       `db:"show_video_controls" json:"show_video_controls"`
	AudioURL          *string    `db:"audio_url"           json:"audio_url"`
	AudioVolume       int        `db:"audio_volume"        json:"audio_volume"`
	VideoAudioURL     *string    `db:"video_audio_url"     json:"video_audio_url"`
	VideoAudioVolume  int        `db:"video_audio_volume"  json:"video_audio_volume"`
	MuteOriginalAudio bool       `db:"mute_original_audio" json:"mute_original_audio"`
	ExpiresAt         *time.Time `db:"expires_at"          json:"expires_at"`
	CreatedAt         time.Time  `db:"created_at"          json:"created_at"`
}

// Expired reports whether the screen's expiry has passed at the given
// instant. A nil expiry never expires; the boundary counts as expired.
func (s Screen) Expired(now time.Time) bool {
	if s.ExpiresAt == nil {
		return false
	}
	return !s.ExpiresAt.After(now)
}

// Clamp forces every percentage-valued field into its declared range and
// fills zero-valued scales with 100%. Runs once before insert; the read
// path trusts stored values.
func (s *Screen) Clamp() {
	s.ImageOpacity = clampInt(s.ImageOpacity, MinOpacity, MaxOpacity)
	s.AudioVolume = clampInt(s.AudioVolume, MinVolume, MaxVolume)
	s.VideoAudioVolume = clampInt(s.VideoAudioVolume, MinVolume, MaxVolume)

	if s.ImageScale == 0 {
		s.ImageScale = 100
	}
	if s.MediaScale == 0 {
		s.MediaScale = 100
	}
	if s.VideoScale == 0 {
		s.VideoScale = 100
	}
	s.ImageScale = clampInt(s.ImageScale, MinScale, MaxScale)
	s.MediaScale = clampInt(s.MediaScale, MinScale, MaxScale)
	s.VideoScale = clampInt(s.VideoScale, MinScale, MaxScale)

	if s.BackgroundColor == "" {
		s.BackgroundColor = "#000000"
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
