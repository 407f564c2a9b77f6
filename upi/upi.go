// Package upi builds upi://pay deep links and their scannable QR images.
// The server only ever produces the link and its PNG; claimed payments are
// confirmed manually by an admin through the order status flow.
package upi

import (
	"fmt"
	"net/url"
	"os"

	qrcode "github.com/skip2/go-qrcode"
)

const currency = "INR"

// Payee identifies the merchant VPA the customer pays into.
type Payee struct {
	ID   string // virtual payment address, e.g. shop@okicici
	Name string
}

// PayeeFromEnv reads the merchant VPA from UPI_ID / UPI_NAME.
func PayeeFromEnv() Payee {
	p := Payee{
		ID:   os.Getenv("UPI_ID"),
		Name: os.Getenv("UPI_NAME"),
	}
	if p.ID == "" {
		p.ID = "patakha@okicici"
	}
	if p.Name == "" {
		p.Name = "Patakha Store"
	}
	return p
}

// BuildPaymentLink produces a upi://pay URI carrying the payee, amount,
// transaction reference (the order number) and a note. Amount is always
// formatted with two decimals; free-text fields are URL-escaped.
func BuildPaymentLink(payee Payee, amount float64, reference, note string) string {
	return fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%.2f&tr=%s&cu=%s&tn=%s",
		url.QueryEscape(payee.ID),
		url.QueryEscape(payee.Name),
		amount,
		url.QueryEscape(reference),
		currency,
		url.QueryEscape(note),
	)
}

// EncodeQR renders a payment link as a PNG of the given pixel size.
func EncodeQR(link string, size int) ([]byte, error) {
	return qrcode.Encode(link, qrcode.Medium, size)
}
