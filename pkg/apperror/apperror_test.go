package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		err  *Error
		want int
	}{
		{NotFound("x", nil), http.StatusNotFound},
		{Validation("x", nil), http.StatusBadRequest},
		{Conflict("x", nil), http.StatusConflict},
		{Unauthorized("x", nil), http.StatusUnauthorized},
		{TokenExpired("x"), StatusTokenExpired},
		{Forbidden("x"), http.StatusForbidden},
		{Internal("x"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := tt.err.Status(); got != tt.want {
			t.Fatalf("%v: status = %d, want %d", tt.err.Kind, got, tt.want)
		}
	}
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := errors.New("row missing")
	err := fmt.Errorf("usecase: %w", NotFound("Approval not exist", map[string]any{"approvalId": "a1"}).Wrap(cause))

	if !errors.Is(err, cause) {
		t.Fatalf("errors.Is lost the cause")
	}
	ae, ok := As(err)
	if !ok {
		t.Fatalf("As failed on wrapped chain")
	}
	if ae.Message != "Approval not exist" {
		t.Fatalf("message = %q", ae.Message)
	}
	if KindOf(err) != KindNotFound {
		t.Fatalf("KindOf = %v, want NotFound", KindOf(err))
	}
}

func TestKindOf_PlainError(t *testing.T) {
	if KindOf(errors.New("boom")) != KindInternal {
		t.Fatalf("plain errors should be internal")
	}
}

func TestError_MessageFallsBackToCause(t *testing.T) {
	e := &Error{Kind: KindInternal, Err: errors.New("db down")}
	if e.Error() != "db down" {
		t.Fatalf("Error() = %q", e.Error())
	}
}

func TestKind_String(t *testing.T) {
	if KindTokenExpired.String() != "token_expired" || Kind(99).String() != "internal" {
		t.Fatalf("got %s / %s", KindTokenExpired, Kind(99))
	}
}
