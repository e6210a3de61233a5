package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"taskboard/internal/domain"
	"taskboard/internal/http/middleware"
	"taskboard/internal/service"
	"taskboard/internal/ws"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testJWTSecret = "taskboard_test_jwt_secret"

// memStore implements service.TaskStore and service.UserStore in memory so
// handler tests run without a database.
type memStore struct {
	nextTaskID int64
	nextUserID int64
	tasks      map[int64]domain.Task
	links      map[int64]int64
	users      map[int64]domain.User
}

func newMemStore() *memStore {
	return &memStore{
		nextTaskID: 1,
		nextUserID: 1,
		tasks:      make(map[int64]domain.Task),
		links:      make(map[int64]int64),
		users:      make(map[int64]domain.User),
	}
}

func (s *memStore) Create(_ context.Context, t *domain.Task) error {
	t.TaskID = s.nextTaskID
	s.nextTaskID++
	t.CreatedAt = time.Now()
	s.tasks[t.TaskID] = *t
	return nil
}

func (s *memStore) LinkToUser(_ context.Context, taskID, userID int64) (bool, error) {
	if _, ok := s.users[userID]; !ok {
		return false, nil
	}
	s.links[taskID] = userID
	return true, nil
}

func (s *memStore) CreateForUser(ctx context.Context, t *domain.Task, userID int64) error {
	if _, ok := s.users[userID]; !ok {
		return domain.ErrLinkFailed
	}
	if err := s.Create(ctx, t); err != nil {
		return err
	}
	s.links[t.TaskID] = userID
	return nil
}

func (s *memStore) GetByUser(_ context.Context, userID int64) ([]*domain.Task, error) {
	var res []*domain.Task
	for id := int64(1); id < s.nextTaskID; id++ {
		if s.links[id] == userID {
			t := s.tasks[id]
			res = append(res, &t)
		}
	}
	return res, nil
}

func (s *memStore) Owner(_ context.Context, taskID int64) (int64, error) {
	userID, ok := s.links[taskID]
	if !ok {
		return 0, domain.ErrTaskNotFound
	}
	return userID, nil
}

func (s *memStore) Update(_ context.Context, id int64, t *domain.Task) (*domain.Task, error) {
	cur, ok := s.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	cur.Title, cur.Description = t.Title, t.Description
	cur.DueDate, cur.Status, cur.IsImportant = t.DueDate, t.Status, t.IsImportant
	s.tasks[id] = cur
	out := cur
	return &out, nil
}

func (s *memStore) Delete(_ context.Context, id int64) (*domain.Task, error) {
	cur, ok := s.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	delete(s.tasks, id)
	delete(s.links, id)
	return &cur, nil
}

// service.UserStore

func (s *memStore) CreateUser(username, passwordHash, email string) *domain.User {
	u := domain.User{
		UserID:       s.nextUserID,
		Username:     username,
		PasswordHash: passwordHash,
		Email:        email,
		CreatedAt:    time.Now(),
	}
	s.nextUserID++
	s.users[u.UserID] = u
	return &u
}

type memUserStore struct{ s *memStore }

func (m memUserStore) Create(_ context.Context, username, passwordHash, email string) (*domain.User, error) {
	for _, u := range m.s.users {
		if u.Username == username {
			return nil, domain.ErrUserExists
		}
	}
	return m.s.CreateUser(username, passwordHash, email), nil
}

func (m memUserStore) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range m.s.users {
		if u.Username == username {
			out := u
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m memUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range m.s.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m memUserStore) Update(_ context.Context, id int64, username, passwordHash, email string) (*domain.User, error) {
	u, ok := m.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Username, u.PasswordHash, u.Email = username, passwordHash, email
	m.s.users[id] = u
	out := u
	return &out, nil
}

func (m memUserStore) Delete(_ context.Context, id int64) (*domain.User, error) {
	u, ok := m.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	delete(m.s.users, id)
	return &u, nil
}

// newTestRouter wires a gin engine over in-memory stores, mirroring the
// production route table.
func newTestRouter(t *testing.T) (*gin.Engine, *memStore, *Handler) {
	t.Helper()

	store := newMemStore()
	h := &Handler{
		Tasks: service.NewTaskService(store),
		Auth:  service.NewAuthService(memUserStore{store}, testJWTSecret),
		Hub:   ws.NewHub(),
	}

	r := gin.New()
	api := r.Group("/api")
	api.POST("/users/create", h.CreateUser)
	api.POST("/users/login", h.Login)
	api.GET("/users/:username", h.GetUser)
	api.PUT("/users/id/:id", middleware.JWT(h.Auth.ParseToken), h.UpdateUser)
	api.DELETE("/users/id/:id", middleware.JWT(h.Auth.ParseToken), h.DeleteUser)
	api.POST("/tasks/create", h.CreateTask)
	api.GET("/tasks/:user_id", h.ReadTasks)
	api.PUT("/tasks/:task_id", h.UpdateTask)
	api.DELETE("/tasks/:task_id", h.DeleteTask)

	return r, store, h
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func mustStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("expected status %d, got %d (body %s)", want, w.Code, w.Body.String())
	}
}
