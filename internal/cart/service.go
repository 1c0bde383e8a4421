package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/khullasher1256-hash/Evercart/internal/catalog"
	"github.com/khullasher1256-hash/Evercart/pkg/db/models"
	pkgerrors "github.com/khullasher1256-hash/Evercart/pkg/errors"
)

type cartRepository interface {
	FindByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	FindOrCreateByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	UpsertItemIncrement(ctx context.Context, cartID, productID uuid.UUID, quantity int) error
	ListItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error)
	SetItemQuantity(ctx context.Context, cartID, productID uuid.UUID, quantity int) (int64, error)
	DeleteItem(ctx context.Context, cartID, productID uuid.UUID) (int64, error)
	ClearItems(ctx context.Context, cartID uuid.UUID) (int64, error)
}

type productLoader interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Product, error)
}

// Service exposes the per-user cart operations.
type Service interface {
	AddItem(ctx context.Context, userID uuid.UUID, input AddItemInput) error
	GetCart(ctx context.Context, userID uuid.UUID) (*CartDTO, error)
	UpdateQuantity(ctx context.Context, userID uuid.UUID, input UpdateQuantityInput) error
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) (*ClearResult, error)
}

type service struct {
	repo     cartRepository
	products productLoader
}

// NewService builds a cart service backed by the provided stack.
func NewService(repo cartRepository, products productLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{repo: repo, products: products}, nil
}

// AddItem merges the requested quantity into the user's cart, creating the
// cart on first add. No product-existence check happens here; dangling
// references surface on read or at checkout.
func (s *service) AddItem(ctx context.Context, userID uuid.UUID, input AddItemInput) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if input.ProductID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	quantity := 1
	if input.Quantity != nil {
		quantity = *input.Quantity
	}
	if quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	cart, err := s.repo.FindOrCreateByUser(ctx, userID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}
	if err := s.repo.UpsertItemIncrement(ctx, cart.ID, input.ProductID, quantity); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "add cart item")
	}
	return nil
}

// GetCart returns the cart with product data joined in. A user with no cart
// row gets an empty cart, not an error.
func (s *service) GetCart(ctx context.Context, userID uuid.UUID) (*CartDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	cart, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &CartDTO{UserID: userID, Items: []ItemDTO{}, Subtotal: decimal.Zero}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}

	items, err := s.repo.ListItems(ctx, cart.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart items")
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "resolve products")
	}

	dto := &CartDTO{
		ID:        &cart.ID,
		UserID:    userID,
		Items:     make([]ItemDTO, 0, len(items)),
		Subtotal:  decimal.Zero,
		UpdatedAt: &cart.UpdatedAt,
	}
	for _, item := range items {
		line := ItemDTO{ProductID: item.ProductID, Quantity: item.Quantity}
		if product, ok := products[item.ProductID]; ok {
			line.Product = catalog.FromModel(&product)
			total := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			line.LineTotal = &total
			dto.Subtotal = dto.Subtotal.Add(total)
		}
		dto.Items = append(dto.Items, line)
	}
	dto.Subtotal = dto.Subtotal.Round(2)
	return dto, nil
}

// UpdateQuantity sets a line to an exact value; values <= 0 remove the line.
func (s *service) UpdateQuantity(ctx context.Context, userID uuid.UUID, input UpdateQuantityInput) error {
	if input.ProductID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	cart, err := s.findCart(ctx, userID)
	if err != nil {
		return err
	}

	if input.Quantity <= 0 {
		return s.deleteLine(ctx, cart.ID, input.ProductID)
	}

	affected, err := s.repo.SetItemQuantity(ctx, cart.ID, input.ProductID, input.Quantity)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update cart item")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	return nil
}

// RemoveItem deletes a line; removing something that is not there is a
// not-found, not a silent no-op.
func (s *service) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	if productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	cart, err := s.findCart(ctx, userID)
	if err != nil {
		return err
	}
	return s.deleteLine(ctx, cart.ID, productID)
}

// Clear empties the cart and reports the count of removed lines. A user
// without a cart gets one created so the call stays idempotent.
func (s *service) Clear(ctx context.Context, userID uuid.UUID) (*ClearResult, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	cart, err := s.repo.FindOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}
	removed, err := s.repo.ClearItems(ctx, cart.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
	}
	return &ClearResult{PreviousItemCount: int(removed), ItemCount: 0}, nil
}

func (s *service) findCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	cart, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}
	return cart, nil
}

func (s *service) deleteLine(ctx context.Context, cartID, productID uuid.UUID) error {
	affected, err := s.repo.DeleteItem(ctx, cartID, productID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove cart item")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	return nil
}
