package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/meetpulse-team/meetpulse/internal/infrastructure/http/middleware"
	"github.com/meetpulse-team/meetpulse/pkg/config"
	"github.com/meetpulse-team/meetpulse/pkg/jwt"
)

// Router holds all handlers
type Router struct {
	cfg               *config.Config
	transcriptHandler *TranscriptHandler
	taskHandler       *TaskHandler
	jwtManager        *jwt.Manager
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, transcriptHandler *TranscriptHandler, taskHandler *TaskHandler, jwtManager *jwt.Manager) *Router {
	return &Router{
		cfg:               cfg,
		transcriptHandler: transcriptHandler,
		taskHandler:       taskHandler,
		jwtManager:        jwtManager,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupBotRoutes(v1)
	rt.setupMeetingRoutes(v1)
}

// setupBotRoutes configures the bot-facing ingestion routes. Everything
// behind this group is authenticated with the shared bot API key.
func (rt *Router) setupBotRoutes(g *echo.Group) {
	botGroup := g.Group("/bot", middleware.BotKey(rt.cfg.Bot.APIKey))

	botGroup.POST("/meetings/:id/segments", rt.transcriptHandler.IngestSegment)
	botGroup.POST("/meetings/:id/complete", rt.transcriptHandler.Complete)
	botGroup.POST("/meetings/:id/tasks", rt.taskHandler.IngestDetected)
	botGroup.DELETE("/meetings/:id/buffer", rt.transcriptHandler.ClearBuffer)
}

// setupMeetingRoutes configures the reader-facing transcript routes,
// authenticated with user access tokens.
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetingGroup := g.Group("/meetings", middleware.EchoAuth(rt.jwtManager))

	meetingGroup.GET("/:id/transcript/recent", rt.transcriptHandler.GetRecent)
	meetingGroup.GET("/:id/transcript/full", rt.transcriptHandler.GetFull)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"time":        time.Now().Format(time.RFC3339),
		"environment": rt.cfg.Server.Environment,
	})
}
