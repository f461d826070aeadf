package pkgerror

import (
	"errors"
	"fmt"
	"testing"
)

func TestAs(t *testing.T) {
	business := NewBusiness("invalid date", CodeInvalidInput)
	wrapped := fmt.Errorf("parse input: %w", business)

	got := As(wrapped)
	if got != business {
		t.Fatalf("expected the wrapped business error")
	}
	if got.Code() != CodeInvalidInput || got.Type() != TypeBusiness {
		t.Fatalf("unexpected code/type: %v/%v", got.Code(), got.Type())
	}

	cause := errors.New("boom")
	server := As(cause)
	if server.Code() != CodeInternal || server.Type() != TypeServer {
		t.Fatalf("expected server error, got %v/%v", server.Code(), server.Type())
	}
	if !errors.Is(server, cause) {
		t.Fatalf("server error should unwrap to cause")
	}
	if server.Msg() != "internal server error" {
		t.Fatalf("unexpected msg %q", server.Msg())
	}
}
