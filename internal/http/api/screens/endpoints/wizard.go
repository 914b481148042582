package endpoints

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/w4tchme/w4tchme/internal/http/api"
	"github.com/w4tchme/w4tchme/internal/http/api/screens/packets"
	"github.com/w4tchme/w4tchme/internal/model"
	"github.com/w4tchme/w4tchme/internal/wizard"
)

type WizardController struct {
	wiz      *wizard.Wizard
	sessions wizard.SessionStore
	baseURL  string
}

// WizardModule mounts the session-backed creation wizard API.
func WizardModule(wiz *wizard.Wizard, sessions wizard.SessionStore, baseURL string) api.Module {
	ctl := &WizardController{
		wiz:      wiz,
		sessions: sessions,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/wizard", ctl.startWizard)
		c.GET("/wizard/:sid", ctl.getWizard)
		c.POST("/wizard/:sid/nickname", ctl.submitNickname)
		c.POST("/wizard/:sid/background", ctl.submitBackground)
		c.POST("/wizard/:sid/media", ctl.submitMedia)
		c.POST("/wizard/:sid/audio", ctl.submitAudio)
		c.POST("/wizard/:sid/settings", ctl.submitSettings)
		c.POST("/wizard/:sid/upload/:kind", ctl.uploadAsset)
	})
}

func (w *WizardController) startWizard(ctx *gin.Context) (any, *api.APIError) {
	sessionID := uuid.NewString()
	st := wizard.NewState()
	if err := w.sessions.Save(ctx.Request.Context(), sessionID, st); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not start wizard"}
	}
	return packets.NewWizardStateResponse(sessionID, st), nil
}

func (w *WizardController) getWizard(ctx *gin.Context) (any, *api.APIError) {
	sessionID := ctx.Param("sid")
	st, apiErr := w.loadSession(ctx, sessionID)
	if apiErr != nil {
		return nil, apiErr
	}
	return packets.NewWizardStateResponse(sessionID, st), nil
}

func (w *WizardController) submitNickname(ctx *gin.Context) (any, *api.APIError) {
	var req packets.NicknameStepRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	return w.applyStep(ctx, wizard.StepNickname, func(st *wizard.State) {
		st.Nickname = req.Nickname
	})
}

func (w *WizardController) submitBackground(ctx *gin.Context) (any, *api.APIError) {
	var req packets.BackgroundStepRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	return w.applyStep(ctx, wizard.StepBackground, func(st *wizard.State) {
		st.BackgroundType = req.BackgroundType
		if req.BackgroundColor != nil {
			st.BackgroundColor = *req.BackgroundColor
		}
		if req.ImageOpacity != nil {
			st.ImageOpacity = *req.ImageOpacity
		}
		if req.ImageScale != nil {
			st.ImageScale = *req.ImageScale
		}
	})
}

func (w *WizardController) submitMedia(ctx *gin.Context) (any, *api.APIError) {
	var req packets.MediaStepRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	return w.applyStep(ctx, wizard.StepMedia, func(st *wizard.State) {
		st.MediaType = req.MediaType
		if req.MediaScale != nil {
			st.MediaScale = *req.MediaScale
		}
		if req.VideoScale != nil {
			st.VideoScale = *req.VideoScale
		}
	})
}

func (w *WizardController) submitAudio(ctx *gin.Context) (any, *api.APIError) {
	var req packets.AudioStepRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	return w.applyStep(ctx, wizard.StepAudio, func(st *wizard.State) {
		if req.AudioVolume != nil {
			st.AudioVolume = *req.AudioVolume
		}
		if req.VideoAudioVolume != nil {
			st.VideoAudioVolume = *req.VideoAudioVolume
		}
		if req.MuteOriginalAudio != nil {
			st.MuteOriginalAudio = *req.MuteOriginalAudio
		}
	})
}

// submitSettings runs finalization: the one insert, then the share URL.
func (w *WizardController) submitSettings(ctx *gin.Context) (any, *api.APIError) {
	var req packets.SettingsStepRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	sessionID := ctx.Param("sid")
	st, apiErr := w.loadSession(ctx, sessionID)
	if apiErr != nil {
		return nil, apiErr
	}
	if st.Step != wizard.StepSettings {
		return nil, &api.APIError{Code: http.StatusConflict, Message: "wizard is not on the settings step"}
	}

	st.ShowVideoControls = req.ShowVideoControls
	screen, err := w.wiz.Finalize(st, req.ExpiryHours)
	if saveErr := w.sessions.Save(ctx.Request.Context(), sessionID, st); saveErr != nil {
		log.Error().Err(saveErr).Str("session", sessionID).Msg("[wizard] session save failed")
	}
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create screen"}
	}

	return packets.CreateScreenResponse{
		ID:  screen.ID,
		URL: w.baseURL + "/view/" + screen.ID,
	}, nil
}

func (w *WizardController) uploadAsset(ctx *gin.Context) (any, *api.APIError) {
	kind := wizard.UploadKind(ctx.Param("kind"))
	switch kind {
	case wizard.UploadBackground, wizard.UploadMedia, wizard.UploadAudio, wizard.UploadVideoAudio:
	default:
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "unknown upload kind"}
	}

	sessionID := ctx.Param("sid")
	st, apiErr := w.loadSession(ctx, sessionID)
	if apiErr != nil {
		return nil, apiErr
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "file is required"}
	}

	url, err := w.wiz.Upload(st, kind, fileHeader)
	if errors.Is(err, wizard.ErrFileTooLarge) {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "file exceeds the upload size limit"}
	}
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not save file"}
	}
	if err := w.sessions.Save(ctx.Request.Context(), sessionID, st); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not save wizard session"}
	}

	return packets.UploadResponse{URL: url}, nil
}

// applyStep loads the session, verifies the request targets the current
// step, applies the mutation, advances, and saves.
func (w *WizardController) applyStep(ctx *gin.Context, step wizard.Step, apply func(st *wizard.State)) (any, *api.APIError) {
	sessionID := ctx.Param("sid")
	st, apiErr := w.loadSession(ctx, sessionID)
	if apiErr != nil {
		return nil, apiErr
	}
	if st.Step != step {
		return nil, &api.APIError{Code: http.StatusConflict, Message: "wizard is not on the " + string(step) + " step"}
	}

	apply(st)

	if err := w.wiz.Advance(st); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "current step has no valid selection"}
	}
	if err := w.sessions.Save(ctx.Request.Context(), sessionID, st); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not save wizard session"}
	}
	return packets.NewWizardStateResponse(sessionID, st), nil
}

func (w *WizardController) loadSession(ctx *gin.Context, sessionID string) (*wizard.State, *api.APIError) {
	st, err := w.sessions.Load(ctx.Request.Context(), sessionID)
	if errors.Is(err, wizard.ErrSessionNotFound) {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "wizard session not found"}
	}
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not load wizard session"}
	}
	// older sessions may predate the color default
	if st.BackgroundType == "" {
		st.BackgroundType = model.BackgroundColor
	}
	return st, nil
}
