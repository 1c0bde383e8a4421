package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/khullasher1256-hash/Evercart/pkg/db/models"
	"github.com/khullasher1256-hash/Evercart/pkg/enums"
	pkgerrors "github.com/khullasher1256-hash/Evercart/pkg/errors"
	"github.com/khullasher1256-hash/Evercart/pkg/pagination"
)

type userRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context, params pagination.Params) ([]models.User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role enums.UserRole) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

// ListUsersInput carries pagination for the admin account listing.
type ListUsersInput struct {
	Pagination pagination.Params
}

// UpdateRoleInput is the admin request to change an account's role.
type UpdateRoleInput struct {
	Role string `json:"role" validate:"required"`
}

// UserListResult is one page of accounts plus the cursor for the next page.
type UserListResult struct {
	Users      []UserDTO `json:"users"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

// Service exposes account reads and the admin account management surface.
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*UserDTO, error)
	List(ctx context.Context, input ListUsersInput) (*UserListResult, error)
	UpdateRole(ctx context.Context, actorID, targetID uuid.UUID, input UpdateRoleInput) (*UserDTO, error)
	Delete(ctx context.Context, actorID, targetID uuid.UUID) error
}

type service struct {
	repo userRepository
}

// NewService constructs a users service instance.
func NewService(repo userRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load account")
	}
	return FromModel(user), nil
}

func (s *service) List(ctx context.Context, input ListUsersInput) (*UserListResult, error) {
	rows, err := s.repo.List(ctx, input.Pagination)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list accounts")
	}

	limit := pagination.NormalizeLimit(input.Pagination.Limit)
	result := &UserListResult{}
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		result.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	result.Users = make([]UserDTO, 0, len(rows))
	for i := range rows {
		result.Users = append(result.Users, *FromModel(&rows[i]))
	}
	return result, nil
}

// UpdateRole changes a target account's role. Admins cannot change their own
// role; losing the last admin by accident locks the whole surface.
func (s *service) UpdateRole(ctx context.Context, actorID, targetID uuid.UUID, input UpdateRoleInput) (*UserDTO, error) {
	role, err := enums.ParseUserRole(strings.TrimSpace(input.Role))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
	}
	if actorID == targetID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cannot change your own role")
	}

	affected, err := s.repo.UpdateRole(ctx, targetID, role)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update role")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
	}

	user, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load updated account")
	}
	return FromModel(user), nil
}

func (s *service) Delete(ctx context.Context, actorID, targetID uuid.UUID) error {
	if actorID == targetID {
		return pkgerrors.New(pkgerrors.CodeValidation, "cannot delete your own account")
	}

	affected, err := s.repo.Delete(ctx, targetID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete account")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
	}
	return nil
}
