package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("email", "bad email"), http.StatusBadRequest},
		{DuplicateUsername(), http.StatusBadRequest},
		{DuplicateEmail(), http.StatusBadRequest},
		{DuplicateTag(), http.StatusBadRequest},
		{DuplicateLink(), http.StatusBadRequest},
		{InvalidCredentials(), http.StatusUnauthorized},
		{InvalidToken(), http.StatusUnauthorized},
		{InvalidUser(), http.StatusUnauthorized},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := StatusOf(c.err); got != c.want {
			t.Errorf("StatusOf(%v) = %d, want %d", c.err, got, c.want)
		}
	}
}

func TestKindOfWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("saving tag: %w", DuplicateTag())
	if got := KindOf(wrapped); got != KindDuplicateTag {
		t.Errorf("KindOf(wrapped) = %v, want %v", got, KindDuplicateTag)
	}
}

func TestValidationCarriesField(t *testing.T) {
	err := Validation("url", "nope is not a valid url")
	if err.Field != "url" {
		t.Errorf("Field = %q, want %q", err.Field, "url")
	}
	if err.Error() != "nope is not a valid url" {
		t.Errorf("Error() = %q", err.Error())
	}
}
