package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/taskforge/task-management/internal/core/domain"
	"github.com/taskforge/task-management/internal/core/ports"
	"github.com/taskforge/task-management/internal/infrastructure/cache"
)

func newUserFixture() (*UserService, *countingUserRepo, *cache.Cache) {
	repo := &countingUserRepo{stubUserRepo: newStubUserRepo(
		&domain.User{ID: "user_mgr", Username: "maria", Email: "maria@example.com", Role: domain.RoleManager},
		&domain.User{ID: "user_bob", Username: "bob", Email: "bob@example.com", Role: domain.RoleUser, Manager: "user_mgr"},
		&domain.User{ID: "user_eve", Username: "eve", Email: "eve@example.com", Role: domain.RoleUser, Manager: "user_other"},
	)}
	c := cache.New(cache.NewMemoryStore(), time.Hour, discardLogger)
	return NewUserService(repo, c, discardLogger), repo, c
}

func TestUserService_Detail_CachesWithinTTL(t *testing.T) {
	svc, repo, _ := newUserFixture()

	first, err := svc.Detail(context.Background(), "user_bob")
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	second, err := svc.Detail(context.Background(), "user_bob")
	if err != nil {
		t.Fatalf("detail: %v", err)
	}

	if repo.findByIDCalls != 1 {
		t.Errorf("expected 1 repository read, got %d", repo.findByIDCalls)
	}
	if *first != *second {
		t.Errorf("cached read must match the loaded value: %+v vs %+v", first, second)
	}
}

func TestUserService_Detail_NotFound(t *testing.T) {
	svc, _, _ := newUserFixture()
	if _, err := svc.Detail(context.Background(), "user_ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_List_ScopedByRole(t *testing.T) {
	svc, _, _ := newUserFixture()

	all, err := svc.List(context.Background(), domain.Actor{ID: "user_admin", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("admin must see every user, got %d", len(all))
	}

	team, err := svc.List(context.Background(), domain.Actor{ID: "user_mgr", Role: domain.RoleManager})
	if err != nil {
		t.Fatalf("manager list: %v", err)
	}
	if len(team) != 1 || team[0].ID != "user_bob" {
		t.Errorf("manager must only see own reports, got %+v", team)
	}
}

func TestUserService_List_ViewsCachedIndependently(t *testing.T) {
	svc, repo, c := newUserFixture()
	admin := domain.Actor{ID: "user_admin", Role: domain.RoleAdmin}
	manager := domain.Actor{ID: "user_mgr", Role: domain.RoleManager}

	for i := 0; i < 2; i++ {
		if _, err := svc.List(context.Background(), admin); err != nil {
			t.Fatalf("admin list: %v", err)
		}
		if _, err := svc.List(context.Background(), manager); err != nil {
			t.Fatalf("manager list: %v", err)
		}
	}
	if repo.listCalls != 2 {
		t.Errorf("expected one repository read per view, got %d", repo.listCalls)
	}

	// Invalidation forces the next read back to the repository.
	if err := c.Invalidate(context.Background(), ports.CacheKeyAllUsers); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, err := svc.List(context.Background(), admin); err != nil {
		t.Fatalf("admin list after invalidation: %v", err)
	}
	if repo.listCalls != 3 {
		t.Errorf("expected a fresh read after invalidation, got %d", repo.listCalls)
	}
}

func TestUserService_Detail_PasswordHashNeverCached(t *testing.T) {
	svc, repo, _ := newUserFixture()
	repo.users["user_bob"].PasswordHash = "$2a$10$secret"

	user, err := svc.Detail(context.Background(), "user_bob")
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if user.PasswordHash != "" {
		t.Error("password hash must not survive the cache round trip")
	}
}
