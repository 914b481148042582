package endpoints

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/w4tchme/w4tchme/internal/db"
	"github.com/w4tchme/w4tchme/internal/http/api"
	"github.com/w4tchme/w4tchme/internal/http/api/screens/packets"
	"github.com/w4tchme/w4tchme/internal/model"
)

type ScreenController struct {
	store   db.Store
	baseURL string
	now     func() time.Time
	newID   func() string
}

func newScreenController(store db.Store, baseURL string) *ScreenController {
	return &ScreenController{
		store:   store,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		now:     time.Now,
		newID:   model.NewScreenID,
	}
}

// ScreenModule mounts the direct screen API.
func ScreenModule(store db.Store, baseURL string) api.Module {
	ctl := newScreenController(store, baseURL)
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/screens", ctl.createScreen)
		c.GET("/screens/:id", ctl.getScreen)
	})
}

func (s *ScreenController) createScreen(ctx *gin.Context) (any, *api.APIError) {
	var req packets.CreateScreenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	screen := screenFromRequest(&req)
	if req.ExpiryHours > 0 {
		expiresAt := s.now().Add(time.Duration(req.ExpiryHours) * time.Hour)
		screen.ExpiresAt = &expiresAt
	}
	screen.Clamp()

	const maxIDAttempts = 3
	var err error
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		screen.ID = s.newID()
		err = s.store.CreateScreen(screen)
		if err == nil {
			return packets.CreateScreenResponse{
				ID:  screen.ID,
				URL: s.baseURL + "/view/" + screen.ID,
			}, nil
		}
		if !errors.Is(err, db.ErrDuplicateID) {
			break
		}
	}

	log.Error().Err(err).Msg("[screens] createScreen: insert failed")
	return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create screen"}
}

func (s *ScreenController) getScreen(ctx *gin.Context) (any, *api.APIError) {
	screen, err := s.store.GetScreenByID(ctx.Param("id"))
	if errors.Is(err, db.ErrNotFound) {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "not found"}
	}
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load screen"}
	}
	return screen, nil
}

func screenFromRequest(req *packets.CreateScreenRequest) *model.Screen {
	screen := &model.Screen{
		Nickname:          req.Nickname,
		BackgroundType:    req.BackgroundType,
		BackgroundColor:   req.BackgroundColor,
		BackgroundImage:   req.BackgroundImage,
		MediaURL:          req.MediaURL,
		MediaType:         req.MediaType,
		ShowVideoControls: req.ShowVideoControls,
		AudioURL:          req.AudioURL,
		VideoAudioURL:     req.VideoAudioURL,
		MuteOriginalAudio: req.MuteOriginalAudio,
		ImageOpacity:      100,
		AudioVolume:       50,
		VideoAudioVolume:  50,
	}
	if req.ImageOpacity != nil {
		screen.ImageOpacity = *req.ImageOpacity
	}
	if req.ImageScale != nil {
		screen.ImageScale = *req.ImageScale
	}
	if req.MediaScale != nil {
		screen.MediaScale = *req.MediaScale
	}
	if req.VideoScale != nil {
		screen.VideoScale = *req.VideoScale
	}
	if req.AudioVolume != nil {
		screen.AudioVolume = *req.AudioVolume
	}
	if req.VideoAudioVolume != nil {
		screen.VideoAudioVolume = *req.VideoAudioVolume
	}
	return screen
}
