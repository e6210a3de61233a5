package http

import (
	"taskboard/internal/config"
	"taskboard/internal/http/handlers"
	"taskboard/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, version string) *handlers.Handler {
	h := handlers.NewHandler(db, cfg.JWTSecret)
	healthHandler := handlers.NewHealthHandler(db, version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	// API v1 routes
	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(cfg.APIRateLimit, cfg.APIRateWindow))
	registerAPIRoutes(v1, h)

	// Legacy /api routes for clients predating versioned paths
	api := r.Group("/api")
	api.Use(middleware.RedisRateLimit(cfg.APIRateLimit, cfg.APIRateWindow))
	registerAPIRoutes(api, h)

	// Live task feed
	r.GET("/ws/tasks/:user_id", h.TaskFeed)

	return h
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler) {
	// Users
	api.POST("/users/create", h.CreateUser)
	api.POST("/users/login", h.Login)
	api.GET("/users/:username", h.GetUser)
	api.PUT("/users/id/:id", middleware.JWT(h.Auth.ParseToken), h.UpdateUser)
	api.DELETE("/users/id/:id", middleware.JWT(h.Auth.ParseToken), h.DeleteUser)

	// Tasks (unauthenticated, user scoped by id as in the original frontend)
	api.POST("/tasks/create", h.CreateTask)
	api.GET("/tasks/:user_id", h.ReadTasks)
	api.PUT("/tasks/:task_id", h.UpdateTask)
	api.DELETE("/tasks/:task_id", h.DeleteTask)
}
