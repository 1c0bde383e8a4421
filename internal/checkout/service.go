package checkout

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/khullasher1256-hash/Evercart/internal/cart"
	"github.com/khullasher1256-hash/Evercart/internal/catalog"
	"github.com/khullasher1256-hash/Evercart/internal/orders"
	"github.com/khullasher1256-hash/Evercart/pkg/db/models"
	"github.com/khullasher1256-hash/Evercart/pkg/enums"
	pkgerrors "github.com/khullasher1256-hash/Evercart/pkg/errors"
	"github.com/khullasher1256-hash/Evercart/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type cartRepository interface {
	FindByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	ListItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error)
	ClearItems(ctx context.Context, cartID uuid.UUID) (int64, error)
}

type productRepository interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Product, error)
}

type orderRepository interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
}

// Service converts a cart into a placed order.
type Service interface {
	PlaceOrder(ctx context.Context, userID uuid.UUID, input PlaceOrderInput) (*orders.OrderDTO, error)
}

// ServiceParams packages the dependencies for the checkout flow. The repo
// factories exist so tests can substitute stubs; production wiring leaves
// them nil and gets the real repositories bound to the transaction.
type ServiceParams struct {
	TxRunner           txRunner
	CartRepoFactory    func(tx *gorm.DB) cartRepository
	ProductRepoFactory func(tx *gorm.DB) productRepository
	OrderRepoFactory   func(tx *gorm.DB) orderRepository
}

type service struct {
	tx          txRunner
	cartRepo    func(tx *gorm.DB) cartRepository
	productRepo func(tx *gorm.DB) productRepository
	orderRepo   func(tx *gorm.DB) orderRepository
}

// NewService builds a checkout service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.TxRunner == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction runner required")
	}
	cartRepo := params.CartRepoFactory
	if cartRepo == nil {
		cartRepo = func(tx *gorm.DB) cartRepository {
			return cart.NewRepository(tx)
		}
	}
	productRepo := params.ProductRepoFactory
	if productRepo == nil {
		productRepo = func(tx *gorm.DB) productRepository {
			return catalog.NewRepository(tx)
		}
	}
	orderRepo := params.OrderRepoFactory
	if orderRepo == nil {
		orderRepo = func(tx *gorm.DB) orderRepository {
			return orders.NewRepository(tx)
		}
	}
	return &service{
		tx:          params.TxRunner,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}, nil
}

// PlaceOrder snapshots the buyer's cart into an immutable order and clears
// the cart, all inside one transaction. The order keeps its own copies of
// product name, image and price; later catalog edits never touch it.
func (s *service) PlaceOrder(ctx context.Context, userID uuid.UUID, input PlaceOrderInput) (*orders.OrderDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if missing := input.DeliveryAddress.MissingFields(); len(missing) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery address is incomplete").
			WithDetails(map[string]any{"missing_fields": missing})
	}

	payment := enums.PaymentMethodCashOnDelivery
	if raw := strings.TrimSpace(input.PaymentMethod); raw != "" {
		parsed, err := enums.ParsePaymentMethod(raw)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
		}
		payment = parsed
	}

	var placed *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := s.cartRepo(tx)

		userCart, err := cartRepo.FindByUser(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
		}

		items, err := cartRepo.ListItems(ctx, userCart.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart items")
		}
		if len(items) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
		}

		order, err := s.buildOrder(ctx, tx, userID, payment, input.DeliveryAddress, items)
		if err != nil {
			return err
		}

		if _, err := s.orderRepo(tx).Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order")
		}
		if _, err := cartRepo.ClearItems(ctx, userCart.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
		}

		placed = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return orders.FromModel(placed), nil
}

func (s *service) buildOrder(
	ctx context.Context,
	tx *gorm.DB,
	userID uuid.UUID,
	payment enums.PaymentMethod,
	address types.DeliveryAddress,
	items []models.CartItem,
) (*models.Order, error) {
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.productRepo(tx).FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load products")
	}

	var gone []string
	orderItems := make([]models.OrderItem, 0, len(items))
	total := decimal.Zero
	for _, item := range items {
		product, ok := products[item.ProductID]
		if !ok {
			gone = append(gone, item.ProductID.String())
			continue
		}
		productID := item.ProductID
		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2)
		orderItems = append(orderItems, models.OrderItem{
			ID:          uuid.New(),
			ProductID:   &productID,
			ProductName: product.Name,
			ImageURL:    product.ImageURL,
			Quantity:    item.Quantity,
			UnitPrice:   product.Price,
			LineTotal:   lineTotal,
		})
		total = total.Add(lineTotal)
	}
	if len(gone) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart contains products that are no longer listed").
			WithDetails(map[string]any{"product_ids": gone})
	}

	return &models.Order{
		ID:              uuid.New(),
		UserID:          userID,
		Status:          enums.OrderStatusPending,
		PaymentMethod:   payment,
		DeliveryAddress: address,
		Total:           total.Round(2),
		Items:           orderItems,
	}, nil
}
