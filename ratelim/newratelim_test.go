package ratelim

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
)

func TestLimitAllowsBurstThenRejects(t *testing.T) {
	rl := NewRateLimiter()
	handle := rl.Limit(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})

	var rejected bool
	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rec := httptest.NewRecorder()
		handle(rec, req, nil)
		if rec.Code == http.StatusTooManyRequests {
			rejected = true
			break
		}
	}
	if !rejected {
		t.Fatal("burst of 20 requests from one IP was never rate limited")
	}
}

func TestLimitIsPerIP(t *testing.T) {
	rl := NewRateLimiter()
	handle := rl.Limit(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(http.StatusOK)
	})

	// Exhaust the first IP's burst.
	for i := 0; i < 20; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
		req.RemoteAddr = "10.0.0.2:5000"
		handle(httptest.NewRecorder(), req, nil)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.RemoteAddr = "10.0.0.3:5000"
	rec := httptest.NewRecorder()
	handle(rec, req, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("fresh IP got %d, want 200", rec.Code)
	}
}
