package orders

import (
	"fmt"

	"patakha/apperr"
	"patakha/models"
)

// legalTransitions is the explicit status machine. The chain runs
// Pending → Payment Verified → Processing → Shipped → Delivered, and an
// order may be cancelled any time before it ships. Delivered and
// Cancelled accept nothing.
var legalTransitions = map[string][]string{
	models.StatusPending:         {models.StatusPaymentVerified, models.StatusCancelled},
	models.StatusPaymentVerified: {models.StatusProcessing, models.StatusCancelled},
	models.StatusProcessing:      {models.StatusShipped, models.StatusCancelled},
	models.StatusShipped:         {models.StatusDelivered},
	models.StatusDelivered:       {},
	models.StatusCancelled:       {},
}

func ValidStatus(status string) bool {
	_, ok := legalTransitions[status]
	return ok
}

// CanTransition reports whether an order may move from one status to the
// requested one.
func CanTransition(from, to string) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CheckTransition returns a taxonomy error when the requested move is not
// in the legality table.
func CheckTransition(from, to string) error {
	if !ValidStatus(to) {
		return apperr.New(apperr.Validation, fmt.Sprintf("Unknown order status %q", to))
	}
	if !CanTransition(from, to) {
		return apperr.New(apperr.InvalidTransition, fmt.Sprintf("Cannot move order from %q to %q", from, to))
	}
	return nil
}
