package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/pawmarket/petstore-api/internal/core/domain"
)

func ownerCaller(id string) domain.CallerContext {
	return domain.CallerContext{UserID: id, Role: domain.RoleOwner, Permissions: domain.PermissionsFor(domain.RoleOwner)}
}

func seedUsers(users ...*domain.User) *stubUserRepo {
	repo := newStubUserRepo()
	for _, u := range users {
		_, _ = repo.Create(context.Background(), u)
	}
	return repo
}

func newUserService(users *stubUserRepo, orders *stubOrderRepo) *UserService {
	return NewUserService(users, newStubProductRepo(), newStubPetRepo(), orders, zerolog.Nop())
}

func TestUserService_List_StaffOnly(t *testing.T) {
	repo := seedUsers(&domain.User{ID: "u1", Username: "u1", Email: "u1@x.com"})
	svc := newUserService(repo, newStubOrderRepo())

	if _, err := svc.List(context.Background(), clientCaller("c1")); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	users, err := svc.List(context.Background(), adminCaller("a1"))
	if err != nil || len(users) != 1 {
		t.Fatalf("admin list: got %v, %v", users, err)
	}
}

func TestUserService_Get_SelfOrStaff(t *testing.T) {
	repo := seedUsers(&domain.User{ID: "u1", Username: "u1", Email: "u1@x.com"})
	svc := newUserService(repo, newStubOrderRepo())

	if _, err := svc.Get(context.Background(), clientCaller("u1"), "u1"); err != nil {
		t.Fatalf("self lookup failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), clientCaller("u2"), "u1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Get(context.Background(), adminCaller("a1"), "u1"); err != nil {
		t.Fatalf("staff lookup failed: %v", err)
	}
}

func TestUserService_ChangeRole_AdminLimits(t *testing.T) {
	repo := seedUsers(
		&domain.User{ID: "u1", Username: "u1", Email: "u1@x.com", Role: domain.RoleClient},
		&domain.User{ID: "u2", Username: "u2", Email: "u2@x.com", Role: domain.RoleAdmin},
	)
	svc := newUserService(repo, newStubOrderRepo())

	// Admin may shuffle non-privileged roles.
	updated, err := svc.ChangeRole(context.Background(), adminCaller("a1"), "u1", domain.RoleSeller)
	if err != nil {
		t.Fatalf("admin role change failed: %v", err)
	}
	if updated.Role != domain.RoleSeller {
		t.Fatalf("expected seller, got %s", updated.Role)
	}

	// But not promote into staff, nor touch an existing admin.
	if _, err := svc.ChangeRole(context.Background(), adminCaller("a1"), "u1", domain.RoleAdmin); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for promotion, got %v", err)
	}
	if _, err := svc.ChangeRole(context.Background(), adminCaller("a1"), "u2", domain.RoleClient); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for demoting admin, got %v", err)
	}

	// The owner may do both.
	if _, err := svc.ChangeRole(context.Background(), ownerCaller("o1"), "u1", domain.RoleAdmin); err != nil {
		t.Fatalf("owner promotion failed: %v", err)
	}
	if _, err := svc.ChangeRole(context.Background(), ownerCaller("o1"), "u2", domain.RoleClient); err != nil {
		t.Fatalf("owner demotion failed: %v", err)
	}
}

func TestUserService_ChangeRole_InvalidRole(t *testing.T) {
	repo := seedUsers(&domain.User{ID: "u1", Username: "u1", Email: "u1@x.com"})
	svc := newUserService(repo, newStubOrderRepo())

	if _, err := svc.ChangeRole(context.Background(), ownerCaller("o1"), "u1", domain.Role("ghost")); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestUserService_SetBanned(t *testing.T) {
	repo := seedUsers(&domain.User{ID: "u1", Username: "u1", Email: "u1@x.com"})
	svc := newUserService(repo, newStubOrderRepo())

	banned, err := svc.SetBanned(context.Background(), adminCaller("a1"), "u1", true)
	if err != nil {
		t.Fatalf("ban failed: %v", err)
	}
	if !banned.Banned {
		t.Fatalf("expected banned flag set")
	}

	if _, err := svc.SetBanned(context.Background(), clientCaller("c1"), "u1", true); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUserService_SetBanned_NeverSelf(t *testing.T) {
	repo := seedUsers(&domain.User{ID: "a1", Username: "a1", Email: "a1@x.com", Role: domain.RoleAdmin})
	svc := newUserService(repo, newStubOrderRepo())

	if _, err := svc.SetBanned(context.Background(), adminCaller("a1"), "a1", true); !errors.Is(err, domain.ErrSelfTargetedChange) {
		t.Fatalf("expected ErrSelfTargetedChange, got %v", err)
	}
}

func TestUserService_Delete_OwnerOnly(t *testing.T) {
	repo := seedUsers(&domain.User{ID: "u1", Username: "u1", Email: "u1@x.com"})
	svc := newUserService(repo, newStubOrderRepo())

	if err := svc.Delete(context.Background(), adminCaller("a1"), "u1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for admin, got %v", err)
	}
	if err := svc.Delete(context.Background(), ownerCaller("o1"), "o1"); !errors.Is(err, domain.ErrSelfTargetedChange) {
		t.Fatalf("expected ErrSelfTargetedChange, got %v", err)
	}
	if err := svc.Delete(context.Background(), ownerCaller("o1"), "u1"); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
}

func TestUserService_Stats_OwnerOnly(t *testing.T) {
	repo := seedUsers(
		&domain.User{ID: "u1", Username: "u1", Email: "u1@x.com"},
		&domain.User{ID: "u2", Username: "u2", Email: "u2@x.com"},
	)
	orders := newStubOrderRepo(
		&domain.Order{ID: "o1", Status: domain.StatusPending},
		&domain.Order{ID: "o2", Status: domain.StatusPending},
		&domain.Order{ID: "o3", Status: domain.StatusDelivered},
	)
	svc := newUserService(repo, orders)

	if _, err := svc.Stats(context.Background(), adminCaller("a1")); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for admin, got %v", err)
	}

	stats, err := svc.Stats(context.Background(), ownerCaller("o1"))
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if stats.Users != 2 {
		t.Fatalf("expected 2 users, got %d", stats.Users)
	}
	if stats.OrdersByStatus[domain.StatusPending] != 2 || stats.OrdersByStatus[domain.StatusDelivered] != 1 {
		t.Fatalf("unexpected order counts: %v", stats.OrdersByStatus)
	}
}
