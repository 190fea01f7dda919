// Package api exposes the tracker over a JSON HTTP API.
package api

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/GokulM8/taskflow/internal/auth"
	"github.com/GokulM8/taskflow/internal/tracker"
)

// TokenParser verifies session tokens.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

type Options struct {
	CORSOrigins []string
	Logger      *log.Logger
	// TokenTTL sets the session cookie lifetime.
	TokenTTL time.Duration
	// Middleware runs ahead of every route, e.g. gin.Logger().
	Middleware []gin.HandlerFunc
}

type handler struct {
	svc    *tracker.Service
	tokens TokenParser
	logger *log.Logger
	ttl    time.Duration
}

// NewRouter builds the gin engine with every API route registered.
func NewRouter(svc *tracker.Service, tokens TokenParser, opts Options) *gin.Engine {
	h := &handler{svc: svc, tokens: tokens, logger: opts.Logger, ttl: opts.TokenTTL}
	if h.logger == nil {
		h.logger = log.Default()
	}
	if h.ttl <= 0 {
		h.ttl = auth.DefaultTokenTTL
	}

	r := gin.New()
	r.Use(opts.Middleware...)
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	api := r.Group("/api")
	{
		api.GET("/health", handleHealth)

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", h.register)
			authGroup.POST("/login", h.login)
			authGroup.POST("/logout", h.logout)
			authGroup.GET("/me", h.session(), h.me)
		}

		projects := api.Group("/projects", h.session())
		{
			projects.GET("", h.listProjects)
			projects.POST("", h.createProject)
			projects.GET("/:id", h.getProject)
			projects.PATCH("/:id", h.updateProject)
			projects.DELETE("/:id", h.deleteProject)
		}

		tasks := api.Group("/tasks", h.session())
		{
			tasks.GET("", h.listTasks)
			tasks.POST("", h.createTask)
			tasks.GET("/:id", h.getTask)
			tasks.PATCH("/:id", h.updateTask)
			tasks.DELETE("/:id", h.deleteTask)
		}

		api.GET("/dashboard", h.session(), h.dashboard)
		api.GET("/activity", h.session(), h.activity)
	}

	return r
}
