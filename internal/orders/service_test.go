package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/khullasher1256-hash/Evercart/pkg/db/models"
	"github.com/khullasher1256-hash/Evercart/pkg/enums"
	pkgerrors "github.com/khullasher1256-hash/Evercart/pkg/errors"
	"github.com/khullasher1256-hash/Evercart/pkg/pagination"
)

type stubOrderRepo struct {
	orders       []models.Order
	lastStatus   enums.OrderStatus
	statusFilter *enums.OrderStatus
}

func (s *stubOrderRepo) find(id uuid.UUID) *models.Order {
	for i := range s.orders {
		if s.orders[i].ID == id {
			return &s.orders[i]
		}
	}
	return nil
}

func (s *stubOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if order := s.find(id); order != nil {
		return order, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubOrderRepo) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*models.Order, error) {
	if order := s.find(id); order != nil && order.UserID == userID {
		return order, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubOrderRepo) ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Order, error) {
	var out []models.Order
	limit := pagination.LimitWithBuffer(params.Limit)
	for _, order := range s.orders {
		if order.UserID == userID && len(out) < limit {
			out = append(out, order)
		}
	}
	return out, nil
}

func (s *stubOrderRepo) ListAll(ctx context.Context, status *enums.OrderStatus, params pagination.Params) ([]models.Order, error) {
	s.statusFilter = status
	return s.orders, nil
}

func (s *stubOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (int64, error) {
	order := s.find(id)
	if order == nil {
		return 0, nil
	}
	order.Status = status
	s.lastStatus = status
	return 1, nil
}

func newOrderTestService(t *testing.T, repo *stubOrderRepo) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func testOrder(userID uuid.UUID, createdAt time.Time) models.Order {
	return models.Order{
		ID:            uuid.New(),
		UserID:        userID,
		Status:        enums.OrderStatusPending,
		PaymentMethod: enums.PaymentMethodCashOnDelivery,
		Total:         decimal.RequireFromString("10.00"),
		CreatedAt:     createdAt,
	}
}

func TestListMineEmitsNextCursorOnFullPage(t *testing.T) {
	userID := uuid.New()
	repo := &stubOrderRepo{}
	now := time.Now().UTC()
	for i := 0; i <= pagination.DefaultLimit; i++ {
		repo.orders = append(repo.orders, testOrder(userID, now.Add(-time.Duration(i)*time.Minute)))
	}

	svc := newOrderTestService(t, repo)
	result, err := svc.ListMine(context.Background(), userID, ListOrdersInput{})
	if err != nil {
		t.Fatalf("list mine: %v", err)
	}
	if len(result.Orders) != pagination.DefaultLimit {
		t.Fatalf("expected %d orders, got %d", pagination.DefaultLimit, len(result.Orders))
	}
	if result.NextCursor == "" {
		t.Fatalf("expected next cursor for full page")
	}
}

func TestGetMineRejectsOtherUsersOrder(t *testing.T) {
	owner := uuid.New()
	repo := &stubOrderRepo{orders: []models.Order{testOrder(owner, time.Now().UTC())}}
	svc := newOrderTestService(t, repo)

	got, err := svc.GetMine(context.Background(), owner, repo.orders[0].ID)
	if err != nil {
		t.Fatalf("get own order: %v", err)
	}
	if got.ID != repo.orders[0].ID {
		t.Fatalf("unexpected order %s", got.ID)
	}

	_, err = svc.GetMine(context.Background(), uuid.New(), repo.orders[0].ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for foreign order, got %v", err)
	}
}

func TestListAllParsesStatusFilter(t *testing.T) {
	repo := &stubOrderRepo{}
	svc := newOrderTestService(t, repo)

	if _, err := svc.ListAll(context.Background(), AdminListInput{Status: "shipped"}); err != nil {
		t.Fatalf("list all: %v", err)
	}
	if repo.statusFilter == nil || *repo.statusFilter != enums.OrderStatusShipped {
		t.Fatalf("expected shipped filter, got %v", repo.statusFilter)
	}

	_, err := svc.ListAll(context.Background(), AdminListInput{Status: "teleported"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}
}

func TestUpdateStatusValidatesAndMapsNotFound(t *testing.T) {
	repo := &stubOrderRepo{orders: []models.Order{testOrder(uuid.New(), time.Now().UTC())}}
	svc := newOrderTestService(t, repo)
	orderID := repo.orders[0].ID

	updated, err := svc.UpdateStatus(context.Background(), orderID, UpdateStatusInput{Status: "delivered"})
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != enums.OrderStatusDelivered {
		t.Fatalf("expected delivered, got %s", updated.Status)
	}

	_, err = svc.UpdateStatus(context.Background(), orderID, UpdateStatusInput{Status: "refunded"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for unknown status, got %v", err)
	}

	_, err = svc.UpdateStatus(context.Background(), uuid.New(), UpdateStatusInput{Status: "shipped"})
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown order, got %v", err)
	}
}
