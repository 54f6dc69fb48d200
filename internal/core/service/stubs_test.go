package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskforge/task-management/internal/core/domain"
	"github.com/taskforge/task-management/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// stubTaskRepo is an in-memory ports.TaskRepository mirroring the real
// store's guard semantics on assignment.
type stubTaskRepo struct {
	tasks map[string]*domain.Task
	seq   int
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{tasks: make(map[string]*domain.Task)}
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) error {
	r.seq++
	t.ID = fmt.Sprintf("task_%d", r.seq)
	clone := *t
	r.tasks[t.ID] = &clone
	return nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	clone := *t
	return &clone, nil
}

func (r *stubTaskRepo) UpdateAssignment(_ context.Context, taskID, userID, assignerID string) (*domain.Task, error) {
	t, ok := r.tasks[taskID]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	if t.Status == domain.StatusCompleted {
		return nil, domain.ErrTaskCompleted
	}
	t.AssignedUser = userID
	t.AssignedBy = assignerID
	t.UpdatedAt = time.Now().UTC()
	clone := *t
	return &clone, nil
}

func (r *stubTaskRepo) Update(_ context.Context, taskID string, patch ports.TaskPatch) (*domain.Task, error) {
	t, ok := r.tasks[taskID]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.DueDate != nil {
		t.DueDate = *patch.DueDate
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	t.UpdatedAt = time.Now().UTC()
	clone := *t
	return &clone, nil
}

func (r *stubTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *stubTaskRepo) List(_ context.Context, filter ports.TaskFilter) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range r.tasks {
		if filter.Status != "" && string(t.Status) != filter.Status {
			continue
		}
		if filter.TitleSearch != "" && !strings.Contains(strings.ToLower(t.Title), strings.ToLower(filter.TitleSearch)) {
			continue
		}
		clone := *t
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubTaskRepo) ListByAssignee(_ context.Context, userID string) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range r.tasks {
		if t.AssignedUser == userID {
			clone := *t
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubTaskRepo) CountByStatus(_ context.Context, status domain.TaskStatus) (int64, error) {
	var n int64
	for _, t := range r.tasks {
		if t.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *stubTaskRepo) CountDueAfter(_ context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for _, t := range r.tasks {
		if t.DueDate.After(cutoff) {
			n++
		}
	}
	return n, nil
}

// stubUserRepo is an in-memory ports.UserRepository.
type stubUserRepo struct {
	users map[string]*domain.User
	seq   int
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		clone := *u
		r.users[u.ID] = &clone
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	clone := *u
	clone.ID = fmt.Sprintf("user_%d", r.seq)
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByLogin(_ context.Context, username, email string) (*domain.User, error) {
	for _, u := range r.users {
		if (username != "" && u.Username == username) || (email != "" && u.Email == email) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, managerID string) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		if managerID != "" && u.Manager != managerID {
			continue
		}
		clone := *u
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// countingUserRepo wraps stubUserRepo and records how often each lookup
// actually reaches the source of truth.
type countingUserRepo struct {
	*stubUserRepo
	findByIDCalls int
	listCalls     int
}

func (r *countingUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	r.findByIDCalls++
	return r.stubUserRepo.FindByID(ctx, id)
}

func (r *countingUserRepo) List(ctx context.Context, managerID string) ([]*domain.User, error) {
	r.listCalls++
	return r.stubUserRepo.List(ctx, managerID)
}

// recordingPublisher captures published events in order.
type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.ChangeEvent
}

func (p *recordingPublisher) Publish(event domain.ChangeEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) all() []domain.ChangeEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.ChangeEvent, len(p.events))
	copy(out, p.events)
	return out
}

// passthroughCache records invalidations and always delegates to the loader.
type passthroughCache struct {
	invalidated []string
}

func (c *passthroughCache) GetOrLoad(ctx context.Context, _ string, loader ports.Loader) ([]byte, error) {
	return loader(ctx)
}

func (c *passthroughCache) Put(context.Context, string, []byte) error { return nil }

func (c *passthroughCache) Invalidate(_ context.Context, keys ...string) error {
	c.invalidated = append(c.invalidated, keys...)
	return nil
}

// stubMailer records outbound mail; welcome sends are signalled on a channel
// because signup fires them asynchronously.
type stubMailer struct {
	mu        sync.Mutex
	welcome   chan string
	assigned  []string
	completed [][]string
}

func newStubMailer() *stubMailer {
	return &stubMailer{welcome: make(chan string, 4)}
}

func (m *stubMailer) SendWelcome(_ context.Context, to, _ string) error {
	m.welcome <- to
	return nil
}

func (m *stubMailer) SendTaskAssigned(_ context.Context, to, _, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assigned = append(m.assigned, to)
	return nil
}

func (m *stubMailer) SendTaskCompleted(_ context.Context, to []string, _, _, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.completed = append(m.completed, to)
	return nil
}
