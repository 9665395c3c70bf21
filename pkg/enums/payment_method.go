package enums

// PaymentMethod identifies how a settlement was paid.
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodCard PaymentMethod = "card"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard:
		return true
	}
	return false
}

// InitialStatus returns the status a fresh payment starts in. Cash stays
// pending until staff confirm collection; card completes immediately.
func (m PaymentMethod) InitialStatus() PaymentStatus {
	if m == PaymentMethodCard {
		return PaymentStatusCompleted
	}
	return PaymentStatusPending
}

// IDPrefix is the prefix embedded into generated payment identifiers.
func (m PaymentMethod) IDPrefix() string {
	if m == PaymentMethodCard {
		return "card_order"
	}
	return "cash_order"
}
