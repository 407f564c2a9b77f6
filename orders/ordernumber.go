package orders

import "patakha/utils"

// Order numbers are the human-facing reference printed on invoices and
// used as the UPI transaction reference. Format: PTK- followed by ten
// digits. Uniqueness is enforced by the orders collection index; callers
// regenerate and retry on collision.
const orderNumberPrefix = "PTK-"
const orderNumberDigits = 10

func NewOrderNumber() string {
	return orderNumberPrefix + utils.GenerateRandomDigitString(orderNumberDigits)
}
