package packets

// CreateScreenRequest is the direct-creation payload; the wizard's
// finalize path funnels into the same insert.
type CreateScreenRequest struct {
	Nickname          *string `json:"nickname"`
	BackgroundType    string  `json:"background_type" binding:"required,oneof=color image"`
	BackgroundColor   string  `json:"background_color"`
	BackgroundImage   *string `json:"background_image" binding:"omitempty,url"`
	ImageOpacity      *int    `json:"image_opacity" binding:"omitempty,min=0,max=100"`
	ImageScale        *int    `json:"image_scale" binding:"omitempty,min=10,max=200"`
	MediaURL          string  `json:"media_url" binding:"required"`
	MediaType         string  `json:"media_type" binding:"required,oneof=gif video"`
	MediaScale        *int    `json:"media_scale" binding:"omitempty,min=10,max=200"`
	VideoScale        *int    `json:"video_scale" binding:"omitempty,min=10,max=200"`
	ShowVideoControls bool    `json:"show_video_controls"`
	AudioURL          *string `json:"audio_url"`
	AudioVolume       *int    `json:"audio_volume" binding:"omitempty,min=0,max=100"`
	VideoAudioURL     *string `json:"video_audio_url"`
	VideoAudioVolume  *int    `json:"video_audio_volume" binding:"omitempty,min=0,max=100"`
	MuteOriginalAudio bool    `json:"mute_original_audio"`
	ExpiryHours       int     `json:"expiry_hours" binding:"omitempty,oneof=0 1 8 24"`
}

type NicknameStepRequest struct {
	Nickname string `json:"nickname" binding:"required"`
}

type BackgroundStepRequest struct {
	BackgroundType  string  `json:"background_type" binding:"required,oneof=color image"`
	BackgroundColor *string `json:"background_color"`
	ImageOpacity    *int    `json:"image_opacity" binding:"omitempty,min=0,max=100"`
	ImageScale      *int    `json:"image_scale" binding:"omitempty,min=10,max=200"`
}

type MediaStepRequest struct {
	MediaType  string `json:"media_type" binding:"required,oneof=gif video"`
	MediaScale *int   `json:"media_scale" binding:"omitempty,min=10,max=200"`
	VideoScale *int   `json:"video_scale" binding:"omitempty,min=10,max=200"`
}

// AudioStepRequest has no required fields: the audio step is always
// satisfiable (Skip).
type AudioStepRequest struct {
	AudioVolume       *int  `json:"audio_volume" binding:"omitempty,min=0,max=100"`
	VideoAudioVolume  *int  `json:"video_audio_volume" binding:"omitempty,min=0,max=100"`
	MuteOriginalAudio *bool `json:"mute_original_audio"`
}

type SettingsStepRequest struct {
	ExpiryHours       int  `json:"expiry_hours" binding:"omitempty,oneof=0 1 8 24"`
	ShowVideoControls bool `json:"show_video_controls"`
}
