package payments

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/museshop/backend/pkg/enums"
)

// NewPaymentID builds a method-prefixed identifier like
// cash_order_1741944600000_1b4e28ba2fa111d2883f0016d3cca427. The millisecond
// timestamp keeps IDs roughly sortable; the uuid suffix makes
// same-millisecond settlements collision-free.
func NewPaymentID(method enums.PaymentMethod, at time.Time) string {
	suffix := uuid.New()
	return fmt.Sprintf("%s_%d_%x", method.IDPrefix(), at.UnixMilli(), suffix[:])
}
