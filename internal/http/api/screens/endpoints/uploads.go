package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/w4tchme/w4tchme/internal/http/api"
	"github.com/w4tchme/w4tchme/internal/http/api/screens/packets"
	"github.com/w4tchme/w4tchme/internal/storage"
)

type UploadController struct {
	gateway  storage.Gateway
	maxBytes int64
}

// UploadModule mounts the per-asset upload endpoint used outside wizard
// sessions (e.g. API clients building screens directly).
func UploadModule(gateway storage.Gateway, maxBytes int64) api.Module {
	ctl := &UploadController{gateway: gateway, maxBytes: maxBytes}
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/uploads/:folder", ctl.upload)
	})
}

func (u *UploadController) upload(ctx *gin.Context) (any, *api.APIError) {
	folder := ctx.Param("folder")
	if !storage.IsFolder(folder) {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "unknown upload folder"}
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		log.Warn().Err(err).Msg("[uploads] missing file")
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "file is required"}
	}
	if fileHeader.Size > u.maxBytes {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "file exceeds the upload size limit"}
	}

	url, err := u.gateway.SaveFile(fileHeader, folder)
	if err != nil {
		log.Error().Err(err).Str("folder", folder).Msg("[uploads] save failed")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not save file"}
	}

	return packets.UploadResponse{URL: url}, nil
}
