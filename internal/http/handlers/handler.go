package handlers

import (
	"taskboard/internal/repository"
	"taskboard/internal/service"
	"taskboard/internal/ws"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Handler carries the services shared by all routes. Everything is wired at
// composition time; there is no package-level state.
type Handler struct {
	DB    *pgxpool.Pool
	Tasks *service.TaskService
	Auth  *service.AuthService
	Hub   *ws.Hub
}

func NewHandler(db *pgxpool.Pool, jwtSecret string) *Handler {
	return &Handler{
		DB:    db,
		Tasks: service.NewTaskService(repository.NewTaskRepository(db)),
		Auth:  service.NewAuthService(repository.NewUserRepository(db), jwtSecret),
		Hub:   ws.NewHub(),
	}
}

// getUserID extracts the authenticated user_id from the gin context.
func getUserID(c interface{ Get(string) (any, bool) }) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
