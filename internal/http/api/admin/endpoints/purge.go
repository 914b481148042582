package endpoints

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/w4tchme/w4tchme/internal/db"
	"github.com/w4tchme/w4tchme/internal/http/api"
	"github.com/w4tchme/w4tchme/internal/storage"
)

type PurgeController struct {
	store   db.Store
	gateway storage.Gateway
}

// PurgeModule mounts the authenticated bulk-delete maintenance endpoint.
// The group it mounts onto carries the shared-secret middleware.
func PurgeModule(store db.Store, gateway storage.Gateway) api.Module {
	ctl := &PurgeController{store: store, gateway: gateway}
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/:action", ctl.purge)
	})
}

func (p *PurgeController) purge(ctx *gin.Context) (any, *api.APIError) {
	switch ctx.Param("action") {
	case "clearBuckets":
		return p.clearBuckets()
	case "clearTables":
		return p.clearTables()
	default:
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "Invalid action"}
	}
}

// clearBuckets empties every upload folder. Folders are processed
// independently: one failure is logged and the rest still run.
func (p *PurgeController) clearBuckets() (any, *api.APIError) {
	folders := storage.Folders()
	failed := 0
	for _, folder := range folders {
		log.Info().Str("folder", folder).Msg("[admin] clearing folder")
		if err := p.gateway.EmptyFolder(folder); err != nil {
			log.Error().Err(err).Str("folder", folder).Msg("[admin] failed to clear folder")
			failed++
		}
	}
	if failed == len(folders) {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "Error clearing data"}
	}
	if failed > 0 {
		return gin.H{"message": fmt.Sprintf("Bucket objects cleared; %d folder(s) failed.", failed)}, nil
	}
	return gin.H{"message": "All bucket objects cleared."}, nil
}

func (p *PurgeController) clearTables() (any, *api.APIError) {
	tables := p.store.TableNames()
	failed := 0
	for _, table := range tables {
		log.Info().Str("table", table).Msg("[admin] clearing table")
		if err := p.store.ClearTable(table); err != nil {
			log.Error().Err(err).Str("table", table).Msg("[admin] failed to clear table")
			failed++
		}
	}
	if failed == len(tables) {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "Error clearing data"}
	}
	if failed > 0 {
		return gin.H{"message": fmt.Sprintf("Tables cleared; %d table(s) failed.", failed)}, nil
	}
	return gin.H{"message": "All tables cleared."}, nil
}
