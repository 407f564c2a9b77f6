package orders

import (
	"testing"

	"patakha/apperr"
	"patakha/models"
)

func TestHappyPathTransitions(t *testing.T) {
	chain := []string{
		models.StatusPending,
		models.StatusPaymentVerified,
		models.StatusProcessing,
		models.StatusShipped,
		models.StatusDelivered,
	}
	for i := 0; i < len(chain)-1; i++ {
		if err := CheckTransition(chain[i], chain[i+1]); err != nil {
			t.Fatalf("expected %q -> %q to be legal, got %v", chain[i], chain[i+1], err)
		}
	}
}

func TestCancellableBeforeShipping(t *testing.T) {
	for _, from := range []string{models.StatusPending, models.StatusPaymentVerified, models.StatusProcessing} {
		if !CanTransition(from, models.StatusCancelled) {
			t.Fatalf("expected %q to be cancellable", from)
		}
	}
	if CanTransition(models.StatusShipped, models.StatusCancelled) {
		t.Fatal("shipped orders must not be cancellable")
	}
}

func TestTerminalStatesAcceptNothing(t *testing.T) {
	for _, from := range []string{models.StatusDelivered, models.StatusCancelled} {
		for to := range legalTransitions {
			if CanTransition(from, to) {
				t.Fatalf("terminal state %q must not allow a move to %q", from, to)
			}
		}
	}
}

func TestNoSkippingStages(t *testing.T) {
	cases := [][2]string{
		{models.StatusPending, models.StatusShipped},
		{models.StatusPending, models.StatusDelivered},
		{models.StatusPaymentVerified, models.StatusShipped},
		{models.StatusProcessing, models.StatusDelivered},
	}
	for _, c := range cases {
		err := CheckTransition(c[0], c[1])
		if err == nil {
			t.Fatalf("expected %q -> %q to be rejected", c[0], c[1])
		}
		if apperr.KindOf(err) != apperr.InvalidTransition {
			t.Fatalf("expected invalid transition kind for %q -> %q, got %v", c[0], c[1], apperr.KindOf(err))
		}
	}
}

func TestNoBackwardsMoves(t *testing.T) {
	err := CheckTransition(models.StatusShipped, models.StatusProcessing)
	if apperr.KindOf(err) != apperr.InvalidTransition {
		t.Fatalf("expected invalid transition going backwards, got %v", err)
	}
}

func TestUnknownStatusIsValidationError(t *testing.T) {
	err := CheckTransition(models.StatusPending, "Teleported")
	if err == nil {
		t.Fatal("expected an error for an unknown target status")
	}
	if apperr.KindOf(err) != apperr.Validation {
		t.Fatalf("expected validation kind, got %v", apperr.KindOf(err))
	}
}
