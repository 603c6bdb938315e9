package serviceerrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsOfKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind ErrorKind
		want bool
	}{
		{"matching kind", NewConflictError("busy"), KindConflict, true},
		{"different kind", NewConflictError("busy"), KindNotFound, false},
		{"wrapped", fmt.Errorf("claim: %w", NewInvalidRequestError("bad")), KindInvalidRequest, true},
		{"formatted", NewInvalidRequestErrorf("invalid limit %d", -1), KindInvalidRequest, true},
		{"throttled", NewTooManyRequestsError("slow down"), KindTooManyRequests, true},
		{"plain error", errors.New("boom"), KindNotFound, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOfKind(tt.err, tt.kind); got != tt.want {
				t.Errorf("IsOfKind(%v, %d) = %v, want %v", tt.err, tt.kind, got, tt.want)
			}
		})
	}
}

func TestServiceError_Message(t *testing.T) {
	err := NewInvalidRequestErrorf("invalid limit %d", -1)
	if err.Error() != "invalid limit -1" {
		t.Fatalf("expected %q, got %q", "invalid limit -1", err.Error())
	}
}
