package errors

import (
	"fmt"
	"net/http"
	"testing"
)

func TestGetType(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"config", Config("scale must be > 0"), ErrorTypeConfig},
		{"wrapped data", fmt.Errorf("row 3: %w", Data("bad distance")), ErrorTypeData},
		{"empty", Empty("nothing survived"), ErrorTypeEmpty},
		{"plain", fmt.Errorf("boom"), ErrorTypeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetType(tt.err); got != tt.want {
				t.Errorf("GetType() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStatusCode(t *testing.T) {
	if got := NotFoundf("star %d", 7).StatusCode(); got != http.StatusNotFound {
		t.Errorf("not found status = %d", got)
	}
	if got := Unauthorized("no token").StatusCode(); got != http.StatusUnauthorized {
		t.Errorf("unauthorized status = %d", got)
	}
	if got := WrapInternal("db", fmt.Errorf("closed")).StatusCode(); got != http.StatusInternalServerError {
		t.Errorf("internal status = %d", got)
	}
}

func TestErrorMessageIncludesCause(t *testing.T) {
	err := WrapData("unparseable dist", fmt.Errorf("strconv: invalid syntax"))
	if got, want := err.Error(), "unparseable dist: strconv: invalid syntax"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
