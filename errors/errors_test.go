package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation(ErrCodeInvalidAmount, "x"), http.StatusBadRequest},
		{"conflict", ErrUnitUnavailable, http.StatusBadRequest},
		{"not found", ErrUnitNotFound, http.StatusNotFound},
		{"unauthenticated", ErrInvalidToken, http.StatusUnauthorized},
		{"forbidden", ErrForbidden, http.StatusForbidden},
		{"unexpected", Unexpected(stderrors.New("db down")), http.StatusInternalServerError},
		{"plain error", stderrors.New("boom"), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("create: %w", ErrGuestNotFound), http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestUnexpectedKeepsAppError(t *testing.T) {
	if got := Unexpected(ErrUnitUnavailable); got != ErrUnitUnavailable {
		t.Errorf("Unexpected should return the existing AppError, got %v", got)
	}
}

func TestWrapDoesNotMutateSentinel(t *testing.T) {
	cause := stderrors.New("duplicate key")
	wrapped := ErrUnitUnavailable.Wrap(cause)

	if ErrUnitUnavailable.Err != nil {
		t.Fatal("sentinel must stay untouched")
	}
	if !stderrors.Is(wrapped, cause) {
		t.Error("wrapped error should unwrap to cause")
	}
	if wrapped.Code != ErrCodeUnitUnavailable || !IsKind(wrapped, KindConflict) {
		t.Errorf("unexpected wrapped error %+v", wrapped)
	}
}
