package db

import (
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/w4tchme/w4tchme/internal/model"
)

const screenColumns = `
	id, nickname, background_type, background_color, background_image,
	image_opacity, image_scale, media_url, media_type, media_scale,
	video_scale, show_video_controls, audio_url, audio_volume,
	video_audio_url, video_audio_volume, mute_original_audio,
	expires_at, created_at`

func (s *pgStore) CreateScreen(screen *model.Screen) error {
	q := `
	INSERT INTO screens (
		id, nickname, background_type, background_color, background_image,
		image_opacity, image_scale, media_url, media_type, media_scale,
		video_scale, show_video_controls, audio_url, audio_volume,
		video_audio_url, video_audio_volume, mute_original_audio,
		expires_at, created_at
	) VALUES (
		:id, :nickname, :background_type, :background_color, :background_image,
		:image_opacity, :image_scale, :media_url, :media_type, :media_scale,
		:video_scale, :show_video_controls, :audio_url, :audio_volume,
		:video_audio_url, :video_audio_volume, :mute_original_audio,
		:expires_at, now()
	)`
	if _, err := s.db.NamedExec(q, screen); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			log.Warn().Str("id", screen.ID).Msg("screen id collision on insert")
			return ErrDuplicateID
		}
		log.Error().Err(err).Msg("failed to create screen")
		return err
	}
	return nil
}

// GetScreenByID resolves a share id to its screen. An unknown id and a
// screen whose expires_at has passed both yield ErrNotFound.
func (s *pgStore) GetScreenByID(id string) (*model.Screen, error) {
	var screen model.Screen
	err := s.db.Get(&screen, `
		SELECT `+screenColumns+`
		FROM screens
		WHERE id = $1
		`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get screen by id")
		return nil, err
	}
	if screen.Expired(time.Now()) {
		return nil, ErrNotFound
	}
	return &screen, nil
}

func (s *pgStore) ListScreens() ([]model.Screen, error) {
	var screens []model.Screen
	err := s.db.Select(&screens, `
		SELECT `+screenColumns+`
		FROM screens
		ORDER BY created_at
		`)
	if err != nil {
		log.Error().Err(err).Msg("failed to list screens")
	}
	return screens, err
}

// TableNames is the fixed set of tables the purge tool truncates.
func (s *pgStore) TableNames() []string {
	return []string{"screens"}
}

func (s *pgStore) ClearTable(name string) error {
	// table names come from TableNames, never from the request
	switch name {
	case "screens":
		_, err := s.db.Exec(`DELETE FROM screens`)
		if err != nil {
			log.Error().Err(err).Str("table", name).Msg("failed to clear table")
		}
		return err
	default:
		return errors.New("unknown table: " + name)
	}
}
