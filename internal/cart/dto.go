package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/khullasher1256-hash/Evercart/internal/catalog"
)

// AddItemInput captures one add-to-cart request. Quantity defaults to 1 when
// omitted; zero or negative values are rejected.
type AddItemInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  *int      `json:"quantity,omitempty"`
}

// RemoveItemInput names the product line to drop from the cart.
type RemoveItemInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
}

// UpdateQuantityInput sets a line to an exact quantity. Values <= 0 remove
// the line instead.
type UpdateQuantityInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity"`
}

// ItemDTO is one resolved cart line. Product is nil when the referenced
// listing has been deleted since the line was added.
type ItemDTO struct {
	ProductID uuid.UUID           `json:"product_id"`
	Quantity  int                 `json:"quantity"`
	Product   *catalog.ProductDTO `json:"product"`
	LineTotal *decimal.Decimal    `json:"line_total,omitempty"`
}

// CartDTO is the read model returned by the cart endpoints.
type CartDTO struct {
	ID        *uuid.UUID      `json:"id,omitempty"`
	UserID    uuid.UUID       `json:"user_id"`
	Items     []ItemDTO       `json:"items"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	UpdatedAt *time.Time      `json:"updated_at,omitempty"`
}

// ClearResult reports the line counts around a clear operation.
type ClearResult struct {
	PreviousItemCount int `json:"previous_item_count"`
	ItemCount         int `json:"item_count"`
}
