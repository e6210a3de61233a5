package service

import (
	"context"
	"sync"
	"time"

	"taskboard/internal/domain"
)

// fakeTaskStore is an in-memory TaskStore for unit tests.
type fakeTaskStore struct {
	mu     sync.Mutex
	nextID int64
	tasks  map[int64]domain.Task
	links  map[int64]int64 // task_id -> user_id
	users  map[int64]bool  // known user ids, for link FK behavior
}

func newFakeTaskStore(userIDs ...int64) *fakeTaskStore {
	s := &fakeTaskStore{
		nextID: 1,
		tasks:  make(map[int64]domain.Task),
		links:  make(map[int64]int64),
		users:  make(map[int64]bool),
	}
	for _, id := range userIDs {
		s.users[id] = true
	}
	return s
}

func (s *fakeTaskStore) Create(_ context.Context, t *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.TaskID = s.nextID
	s.nextID++
	t.CreatedAt = time.Now()
	s.tasks[t.TaskID] = *t
	return nil
}

func (s *fakeTaskStore) LinkToUser(_ context.Context, taskID, userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.users[userID] {
		return false, nil
	}
	if _, ok := s.tasks[taskID]; !ok {
		return false, nil
	}
	s.links[taskID] = userID
	return true, nil
}

func (s *fakeTaskStore) CreateForUser(_ context.Context, t *domain.Task, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.users[userID] {
		return domain.ErrLinkFailed
	}

	t.TaskID = s.nextID
	s.nextID++
	t.CreatedAt = time.Now()
	s.tasks[t.TaskID] = *t
	s.links[t.TaskID] = userID
	return nil
}

func (s *fakeTaskStore) GetByUser(_ context.Context, userID int64) ([]*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res []*domain.Task
	for id := int64(1); id < s.nextID; id++ {
		if s.links[id] == userID {
			t := s.tasks[id]
			res = append(res, &t)
		}
	}
	return res, nil
}

func (s *fakeTaskStore) Owner(_ context.Context, taskID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID, ok := s.links[taskID]
	if !ok {
		return 0, domain.ErrTaskNotFound
	}
	return userID, nil
}

func (s *fakeTaskStore) Update(_ context.Context, id int64, t *domain.Task) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	cur.Title = t.Title
	cur.Description = t.Description
	cur.DueDate = t.DueDate
	cur.Status = t.Status
	cur.IsImportant = t.IsImportant
	s.tasks[id] = cur

	out := cur
	return &out, nil
}

func (s *fakeTaskStore) Delete(_ context.Context, id int64) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	delete(s.tasks, id)
	delete(s.links, id)
	return &cur, nil
}

// fakeUserStore is an in-memory UserStore for unit tests.
type fakeUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]domain.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{nextID: 1, users: make(map[int64]domain.User)}
}

func (s *fakeUserStore) Create(_ context.Context, username, passwordHash, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			return nil, domain.ErrUserExists
		}
	}

	u := domain.User{
		UserID:       s.nextID,
		Username:     username,
		PasswordHash: passwordHash,
		Email:        email,
		CreatedAt:    time.Now(),
	}
	s.nextID++
	s.users[u.UserID] = u
	return &u, nil
}

func (s *fakeUserStore) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			out := u
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *fakeUserStore) Update(_ context.Context, id int64, username, passwordHash, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Username = username
	u.PasswordHash = passwordHash
	u.Email = email
	s.users[id] = u

	out := u
	return &out, nil
}

func (s *fakeUserStore) Delete(_ context.Context, id int64) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	delete(s.users, id)
	return &u, nil
}
