package main

import (
	"html/template"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/w4tchme/w4tchme/internal/db"
	"github.com/w4tchme/w4tchme/internal/http/api"
	adminapi "github.com/w4tchme/w4tchme/internal/http/api/admin/endpoints"
	screensapi "github.com/w4tchme/w4tchme/internal/http/api/screens/endpoints"
	"github.com/w4tchme/w4tchme/internal/http/middleware"
	"github.com/w4tchme/w4tchme/internal/http/web"
	"github.com/w4tchme/w4tchme/internal/storage"
	"github.com/w4tchme/w4tchme/internal/wizard"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, env Environment, store db.Store, gateway storage.Gateway, sessions wizard.SessionStore, tmpl *template.Template) {
	r.SetHTMLTemplate(tmpl)
	r.Use(middleware.RequestID())

	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			middleware.HeaderAdminSecret,
			middleware.HeaderRequestID,
		},
		ExposeHeaders: []string{
			"Content-Length",
			middleware.HeaderRequestID,
		},
		AllowCredentials: false,
	}))

	wiz := wizard.New(store, gateway,
		wizard.WithMaxUploadBytes(env.MaxUploadMB<<20),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api",
	},
		screensapi.ScreenModule(store, env.PublicBaseURL),
		screensapi.UploadModule(gateway, env.MaxUploadMB<<20),
		screensapi.WizardModule(wiz, sessions, env.PublicBaseURL),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:      "/api/admin",
		AdminSecret: env.AdminSecret,
	},
		adminapi.PurgeModule(store, gateway),
	)

	// Static content
	r.Static("/static", "./web/static")
	if env.StorageBackend == "local" {
		r.Static("/uploads", env.UploadDir)
	}

	// HTML pages; the bare /:id share route registers last
	web.NewPages(store).Register(r)
}
