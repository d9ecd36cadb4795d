package apperror

import (
	"fmt"
	"net/http"
	"testing"
)

func TestMapErrorToStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{ErrConflict, http.StatusConflict},
		{ErrBadRequest, http.StatusBadRequest},
		{ErrInvalidInput, http.StatusBadRequest},
		{ErrRateLimitExceeded, http.StatusTooManyRequests},
		{fmt.Errorf("database exploded"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		if got := MapErrorToStatus(tc.err); got != tc.want {
			t.Errorf("MapErrorToStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestMapErrorToStatusWrapped(t *testing.T) {
	err := fmt.Errorf("%w: you have already rated this project", ErrConflict)
	if got := MapErrorToStatus(err); got != http.StatusConflict {
		t.Errorf("wrapped conflict = %d, want 409", got)
	}

	err = fmt.Errorf("outer: %w", fmt.Errorf("%w: project not found", ErrNotFound))
	if got := MapErrorToStatus(err); got != http.StatusNotFound {
		t.Errorf("doubly wrapped not found = %d, want 404", got)
	}
}
