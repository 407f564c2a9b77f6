package orders

import (
	"testing"

	"patakha/models"
)

func TestComputePricesCOD(t *testing.T) {
	items := []models.OrderItem{
		{ProductID: "p1", Name: "Sparkler Pack", Price: 100, Quantity: 2},
		{ProductID: "p2", Name: "Flower Pot", Price: 50, Quantity: 1},
	}

	itemsPrice, shippingPrice, totalPrice := ComputePrices(items, models.PaymentCOD)
	if itemsPrice != 250 {
		t.Fatalf("itemsPrice = %v, want 250", itemsPrice)
	}
	if shippingPrice != 100 {
		t.Fatalf("COD shippingPrice = %v, want 100", shippingPrice)
	}
	if totalPrice != 350 {
		t.Fatalf("totalPrice = %v, want 350", totalPrice)
	}
}

func TestComputePricesDefaultShipping(t *testing.T) {
	items := []models.OrderItem{{ProductID: "p1", Name: "Rocket", Price: 80, Quantity: 3}}

	for _, method := range []string{models.PaymentUPI, models.PaymentCard, models.PaymentPaytm, models.PaymentWallet} {
		itemsPrice, shippingPrice, totalPrice := ComputePrices(items, method)
		if shippingPrice != 50 {
			t.Fatalf("%s shippingPrice = %v, want 50", method, shippingPrice)
		}
		if totalPrice != itemsPrice+shippingPrice {
			t.Fatalf("%s total %v != items %v + shipping %v", method, totalPrice, itemsPrice, shippingPrice)
		}
	}
}

func TestComputePricesEmpty(t *testing.T) {
	itemsPrice, shippingPrice, totalPrice := ComputePrices(nil, models.PaymentUPI)
	if itemsPrice != 0 || shippingPrice != 50 || totalPrice != 50 {
		t.Fatalf("empty order priced %v/%v/%v", itemsPrice, shippingPrice, totalPrice)
	}
}

func TestValidPaymentMethod(t *testing.T) {
	for _, method := range []string{models.PaymentUPI, models.PaymentCard, models.PaymentCOD, models.PaymentPaytm, models.PaymentWallet} {
		if !ValidPaymentMethod(method) {
			t.Fatalf("%s should be accepted", method)
		}
	}
	for _, method := range []string{"", "upi", "BITCOIN"} {
		if ValidPaymentMethod(method) {
			t.Fatalf("%q should be rejected", method)
		}
	}
}
