package users

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/khullasher1256-hash/Evercart/pkg/db/models"
	"github.com/khullasher1256-hash/Evercart/pkg/enums"
	pkgerrors "github.com/khullasher1256-hash/Evercart/pkg/errors"
	"github.com/khullasher1256-hash/Evercart/pkg/pagination"
)

type stubUserServiceRepo struct {
	users []models.User
}

func (s *stubUserServiceRepo) find(id uuid.UUID) *models.User {
	for i := range s.users {
		if s.users[i].ID == id {
			return &s.users[i]
		}
	}
	return nil
}

func (s *stubUserServiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if user := s.find(id); user != nil {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserServiceRepo) List(ctx context.Context, params pagination.Params) ([]models.User, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	if len(s.users) > limit {
		return s.users[:limit], nil
	}
	return s.users, nil
}

func (s *stubUserServiceRepo) UpdateRole(ctx context.Context, id uuid.UUID, role enums.UserRole) (int64, error) {
	user := s.find(id)
	if user == nil {
		return 0, nil
	}
	user.Role = role
	return 1, nil
}

func (s *stubUserServiceRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	for i := range s.users {
		if s.users[i].ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func newUserTestService(t *testing.T, repo *stubUserServiceRepo) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func testUser(role enums.UserRole) models.User {
	return models.User{
		ID:        uuid.New(),
		Name:      "Test Account",
		Email:     "account@example.com",
		Role:      role,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
}

func TestGetMapsMissingAccountToNotFound(t *testing.T) {
	svc := newUserTestService(t, &stubUserServiceRepo{})

	_, err := svc.Get(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListEmitsNextCursorOnFullPage(t *testing.T) {
	repo := &stubUserServiceRepo{}
	for i := 0; i <= pagination.DefaultLimit; i++ {
		repo.users = append(repo.users, testUser(enums.UserRoleUser))
	}
	svc := newUserTestService(t, repo)

	result, err := svc.List(context.Background(), ListUsersInput{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(result.Users) != pagination.DefaultLimit {
		t.Fatalf("expected %d users, got %d", pagination.DefaultLimit, len(result.Users))
	}
	if result.NextCursor == "" {
		t.Fatalf("expected next cursor for full page")
	}
}

func TestUpdateRolePromotesAccount(t *testing.T) {
	target := testUser(enums.UserRoleUser)
	repo := &stubUserServiceRepo{users: []models.User{target}}
	svc := newUserTestService(t, repo)

	updated, err := svc.UpdateRole(context.Background(), uuid.New(), target.ID, UpdateRoleInput{Role: "admin"})
	if err != nil {
		t.Fatalf("update role: %v", err)
	}
	if updated.Role != enums.UserRoleAdmin {
		t.Fatalf("expected admin, got %s", updated.Role)
	}
}

func TestUpdateRoleValidation(t *testing.T) {
	target := testUser(enums.UserRoleUser)
	repo := &stubUserServiceRepo{users: []models.User{target}}
	svc := newUserTestService(t, repo)

	_, err := svc.UpdateRole(context.Background(), uuid.New(), target.ID, UpdateRoleInput{Role: "superuser"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for unknown role, got %v", err)
	}

	_, err = svc.UpdateRole(context.Background(), target.ID, target.ID, UpdateRoleInput{Role: "admin"})
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for self role change, got %v", err)
	}

	_, err = svc.UpdateRole(context.Background(), uuid.New(), uuid.New(), UpdateRoleInput{Role: "admin"})
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown account, got %v", err)
	}
}

func TestDeleteGuardsAndReportsNotFound(t *testing.T) {
	target := testUser(enums.UserRoleUser)
	repo := &stubUserServiceRepo{users: []models.User{target}}
	svc := newUserTestService(t, repo)

	err := svc.Delete(context.Background(), target.ID, target.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for self delete, got %v", err)
	}

	if err := svc.Delete(context.Background(), uuid.New(), target.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	err = svc.Delete(context.Background(), uuid.New(), target.ID)
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for repeated delete, got %v", err)
	}
}
