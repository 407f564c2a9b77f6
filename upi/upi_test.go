package upi

import (
	"bytes"
	"net/url"
	"strings"
	"testing"
)

func TestBuildPaymentLink(t *testing.T) {
	payee := Payee{ID: "shop@okicici", Name: "Patakha Store"}
	link := BuildPaymentLink(payee, 350, "PTK-0123456789", "Patakha Order Payment")

	if !strings.HasPrefix(link, "upi://pay?") {
		t.Fatalf("link %q is not a upi://pay URI", link)
	}

	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("link does not parse: %v", err)
	}
	q := u.Query()

	want := map[string]string{
		"pa": "shop@okicici",
		"pn": "Patakha Store",
		"am": "350.00",
		"tr": "PTK-0123456789",
		"cu": "INR",
		"tn": "Patakha Order Payment",
	}
	for key, val := range want {
		if got := q.Get(key); got != val {
			t.Fatalf("param %s = %q, want %q", key, got, val)
		}
	}
}

func TestBuildPaymentLinkAmountAlwaysTwoDecimals(t *testing.T) {
	payee := Payee{ID: "shop@okicici", Name: "Shop"}
	cases := map[float64]string{
		100:    "100.00",
		99.5:   "99.50",
		249.99: "249.99",
	}
	for amount, want := range cases {
		link := BuildPaymentLink(payee, amount, "PTK-1", "note")
		if !strings.Contains(link, "&am="+want+"&") {
			t.Fatalf("amount %v rendered link %q, want am=%s", amount, link, want)
		}
	}
}

func TestBuildPaymentLinkEscapesFreeText(t *testing.T) {
	payee := Payee{ID: "shop@okicici", Name: "Fire & Light"}
	link := BuildPaymentLink(payee, 10, "PTK-2", "order #42")

	if strings.Contains(link, " ") {
		t.Fatalf("link %q contains an unescaped space", link)
	}
	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("link does not parse: %v", err)
	}
	if got := u.Query().Get("pn"); got != "Fire & Light" {
		t.Fatalf("payee name round-tripped as %q", got)
	}
	if got := u.Query().Get("tn"); got != "order #42" {
		t.Fatalf("note round-tripped as %q", got)
	}
}

func TestEncodeQRProducesPNG(t *testing.T) {
	png, err := EncodeQR("upi://pay?pa=shop@okicici&am=10.00", 256)
	if err != nil {
		t.Fatalf("EncodeQR failed: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Fatal("EncodeQR did not return a PNG")
	}
}
