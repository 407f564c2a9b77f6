package orders

import "patakha/models"

// Flat shipping rates in rupees, keyed on payment method. Cash on
// delivery carries a collection surcharge.
const (
	shippingDefault = 50
	shippingCOD     = 100
)

var validPaymentMethods = map[string]bool{
	models.PaymentUPI:    true,
	models.PaymentCard:   true,
	models.PaymentCOD:    true,
	models.PaymentPaytm:  true,
	models.PaymentWallet: true,
}

func ValidPaymentMethod(method string) bool {
	return validPaymentMethods[method]
}

// ShippingFor resolves the shipping price for a payment method.
func ShippingFor(method string) float64 {
	if method == models.PaymentCOD {
		return shippingCOD
	}
	return shippingDefault
}

// ComputePrices derives itemsPrice, shippingPrice and totalPrice from the
// snapshot items and the payment method. Prices are never trusted from
// the client.
func ComputePrices(items []models.OrderItem, method string) (itemsPrice, shippingPrice, totalPrice float64) {
	for _, item := range items {
		itemsPrice += item.Price * float64(item.Quantity)
	}
	shippingPrice = ShippingFor(method)
	return itemsPrice, shippingPrice, itemsPrice + shippingPrice
}
