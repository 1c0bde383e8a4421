package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/khullasher1256-hash/Evercart/internal/users"
	"github.com/khullasher1256-hash/Evercart/pkg/config"
	pkgmodels "github.com/khullasher1256-hash/Evercart/pkg/db/models"
	"github.com/khullasher1256-hash/Evercart/pkg/enums"
	pkgerrors "github.com/khullasher1256-hash/Evercart/pkg/errors"
)

type stubTxRunner struct{}

func (s stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubUserRepository struct {
	data      map[string]*pkgmodels.User
	created   *pkgmodels.User
	createErr error
}

func newStubUserRepository() *stubUserRepository {
	return &stubUserRepository{data: map[string]*pkgmodels.User{}}
}

func (s *stubUserRepository) FindByEmail(ctx context.Context, email string) (*pkgmodels.User, error) {
	if user, ok := s.data[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepository) Create(ctx context.Context, dto users.CreateUserDTO) (*pkgmodels.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	user := dto.ToModel()
	user.ID = uuid.New()
	s.data[dto.Email] = user
	s.created = user
	return user, nil
}

func newRegisterTestService(t *testing.T, repo *stubUserRepository) RegisterService {
	t.Helper()
	svc, err := NewRegisterService(RegisterServiceParams{
		TxRunner: stubTxRunner{},
		UserRepoFactory: func(tx *gorm.DB) registerUserRepository {
			return repo
		},
		PasswordConfig: config.PasswordConfig{},
	})
	if err != nil {
		t.Fatalf("new register service: %v", err)
	}
	return svc
}

func TestRegisterCreatesUserWithUserRole(t *testing.T) {
	repo := newStubUserRepository()
	svc := newRegisterTestService(t, repo)

	err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Jamie Rivera",
		Email:    "Jamie@Example.com",
		Password: "Secret123!",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if repo.created == nil {
		t.Fatalf("expected user to be created")
	}
	if repo.created.Email != "jamie@example.com" {
		t.Fatalf("expected lowercased email, got %s", repo.created.Email)
	}
	if repo.created.Role != enums.UserRoleUser {
		t.Fatalf("expected forced user role, got %s", repo.created.Role)
	}
	if repo.created.PasswordHash == "Secret123!" {
		t.Fatalf("password stored unhashed")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := newStubUserRepository()
	repo.data["taken@example.com"] = &pkgmodels.User{ID: uuid.New(), Email: "taken@example.com"}
	svc := newRegisterTestService(t, repo)

	err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Second",
		Email:    "taken@example.com",
		Password: "Secret123!",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
	if repo.created != nil {
		t.Fatalf("expected no user creation on duplicate email")
	}
}

func TestAdminRegisterRequiresBootstrapKey(t *testing.T) {
	repo := newStubUserRepository()
	svc, err := NewAdminRegisterService(AdminRegisterServiceParams{
		TxRunner: stubTxRunner{},
		UserRepoFactory: func(tx *gorm.DB) registerUserRepository {
			return repo
		},
		PasswordConfig: config.PasswordConfig{},
		AdminConfig:    config.AdminConfig{BootstrapKey: "let-me-in"},
	})
	if err != nil {
		t.Fatalf("new admin register service: %v", err)
	}

	_, err = svc.Register(context.Background(), AdminRegisterRequest{
		Name:         "Ops",
		Email:        "ops@example.com",
		Password:     "Secret123!",
		BootstrapKey: "wrong-key",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden for bad key, got %v", err)
	}

	created, err := svc.Register(context.Background(), AdminRegisterRequest{
		Name:         "Ops",
		Email:        "ops@example.com",
		Password:     "Secret123!",
		BootstrapKey: "let-me-in",
	})
	if err != nil {
		t.Fatalf("admin register failed: %v", err)
	}
	if created.Role != enums.UserRoleAdmin {
		t.Fatalf("expected admin role, got %s", created.Role)
	}
}

func TestAdminRegisterDisabledWithoutKey(t *testing.T) {
	repo := newStubUserRepository()
	svc, err := NewAdminRegisterService(AdminRegisterServiceParams{
		TxRunner: stubTxRunner{},
		UserRepoFactory: func(tx *gorm.DB) registerUserRepository {
			return repo
		},
	})
	if err != nil {
		t.Fatalf("new admin register service: %v", err)
	}

	_, err = svc.Register(context.Background(), AdminRegisterRequest{
		Name:         "Ops",
		Email:        "ops@example.com",
		Password:     "Secret123!",
		BootstrapKey: "",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden when bootstrap key unset, got %v", err)
	}
}
