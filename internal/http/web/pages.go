// Package web serves the HTML shell: the wizard page, the shareable view
// page, the 404 page, and the admin panel.
package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/w4tchme/w4tchme/internal/db"
)

type Pages struct {
	store db.Store
}

func NewPages(store db.Store) *Pages {
	return &Pages{store: store}
}

// Register attaches the page routes. The bare /:id route is the short
// share link; /view/:id is the canonical one.
func (p *Pages) Register(r *gin.Engine) {
	r.GET("/", p.index)
	r.GET("/admin", p.adminPanel)
	r.GET("/view/:id", p.viewScreen)
	r.GET("/:id", p.viewScreen)
}

func (p *Pages) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", nil)
}

func (p *Pages) adminPanel(c *gin.Context) {
	c.HTML(http.StatusOK, "admin.html", nil)
}

// viewScreen resolves the share id. Unknown and expired ids render the
// same 404 page; the sequencer never sees a stale record.
func (p *Pages) viewScreen(c *gin.Context) {
	id := c.Param("id")
	screen, err := p.store.GetScreenByID(id)
	if errors.Is(err, db.ErrNotFound) {
		c.HTML(http.StatusNotFound, "notfound.html", nil)
		return
	}
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("[web] failed to load screen")
		c.HTML(http.StatusInternalServerError, "notfound.html", nil)
		return
	}

	// expiry can pass between render and revisit
	c.Header("Cache-Control", "no-store")
	c.HTML(http.StatusOK, "view.html", gin.H{"Screen": screen})
}
