package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusCodes(t *testing.T) {
	cases := map[Kind]int{
		Validation:        http.StatusBadRequest,
		Auth:              http.StatusUnauthorized,
		Forbidden:         http.StatusForbidden,
		NotFound:          http.StatusNotFound,
		Conflict:          http.StatusConflict,
		InvalidTransition: http.StatusConflict,
		Internal:          http.StatusInternalServerError,
	}
	for kind, want := range cases {
		if got := kind.StatusCode(); got != want {
			t.Fatalf("%s.StatusCode() = %d, want %d", kind, got, want)
		}
	}
}

func TestKindOfThroughWrapping(t *testing.T) {
	base := New(InvalidTransition, "cannot move")
	wrapped := fmt.Errorf("handler: %w", base)

	if KindOf(wrapped) != InvalidTransition {
		t.Fatalf("KindOf lost the kind through wrapping: %v", KindOf(wrapped))
	}
}

func TestKindOfUnclassified(t *testing.T) {
	if KindOf(errors.New("disk on fire")) != Internal {
		t.Fatal("unclassified errors must count as Internal")
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("duplicate key")
	err := Wrap(Conflict, "already reviewed", cause)

	if !errors.Is(err, cause) {
		t.Fatal("Wrap must preserve the cause for errors.Is")
	}
	if err.Error() != "already reviewed: duplicate key" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
