package main

import (
	"html/template"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/Nixie-Tech-LLC/doubleclock/internal/http/api"
	"github.com/Nixie-Tech-LLC/doubleclock/internal/http/api/settings/endpoints"
	"github.com/Nixie-Tech-LLC/doubleclock/internal/http/middleware"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, ctl *endpoints.SettingsController, tmpl *template.Template) {
	r.SetHTMLTemplate(tmpl)
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())

	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
		},
		AllowCredentials: false,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// browser form
	api.MountGroup(r, api.GroupConfig{Prefix: ""},
		endpoints.PageModule(ctl),
	)

	// JSON proxy + display preview
	api.MountGroup(r, api.GroupConfig{
		Prefix:     "/api",
		Middleware: []gin.HandlerFunc{requireJSONForWrites()},
	},
		endpoints.SettingsModule(ctl),
	)
}

// requireJSONForWrites rejects API POSTs that are not JSON encoded.
func requireJSONForWrites() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodPost && c.ContentType() != binding.MIMEJSON {
			c.AbortWithStatusJSON(http.StatusUnsupportedMediaType, gin.H{"error": "expected application/json"})
			return
		}
		c.Next()
	}
}
