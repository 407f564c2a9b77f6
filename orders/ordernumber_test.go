package orders

import (
	"strings"
	"testing"
)

func TestNewOrderNumberFormat(t *testing.T) {
	for i := 0; i < 100; i++ {
		n := NewOrderNumber()
		if !strings.HasPrefix(n, "PTK-") {
			t.Fatalf("order number %q missing PTK- prefix", n)
		}
		digits := strings.TrimPrefix(n, "PTK-")
		if len(digits) != 10 {
			t.Fatalf("order number %q has %d digits, want 10", n, len(digits))
		}
		for _, c := range digits {
			if c < '0' || c > '9' {
				t.Fatalf("order number %q contains non-digit %q", n, c)
			}
		}
	}
}
