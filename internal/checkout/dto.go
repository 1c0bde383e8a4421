package checkout

import (
	"github.com/khullasher1256-hash/Evercart/pkg/types"
)

// PlaceOrderInput is the buyer's checkout payload. PaymentMethod is optional
// and defaults to cash on delivery when omitted.
type PlaceOrderInput struct {
	DeliveryAddress types.DeliveryAddress `json:"delivery_address"`
	PaymentMethod   string                `json:"payment_method"`
}
