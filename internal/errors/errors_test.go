package errors

import (
	"database/sql"
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	err := NotFound("asset", "abc123")

	expected := `asset "abc123" not found`
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
	if !stderrors.Is(err, ErrNotFound) {
		t.Error("expected error to wrap ErrNotFound")
	}
	if !IsNotFound(fmt.Errorf("wrapped: %w", err)) {
		t.Error("IsNotFound should see through wrapping")
	}
	if err.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected 404, got %d", err.HTTPStatus)
	}
	if err.Kind() != KindInvalidParameter {
		t.Errorf("expected invalid parameter kind, got %s", err.Kind())
	}
}

func TestNotFoundError_NoID(t *testing.T) {
	err := NotFound("process", "")
	if err.Error() != "process not found" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestNullParameter(t *testing.T) {
	err := NullParameter("userId", "createAsset")
	if !IsInvalid(err) {
		t.Error("expected ErrInvalidInput")
	}
	if err.MessageID != "OMAS-IT-INFRASTRUCTURE-400-001" {
		t.Errorf("unexpected message id %s", err.MessageID)
	}
	if err.Details["parameterName"] != "userId" {
		t.Errorf("expected parameterName detail, got %v", err.Details)
	}
}

func TestUserNotAuthorized(t *testing.T) {
	err := UserNotAuthorized("erinoverview", "removeAsset")
	if !IsForbidden(err) {
		t.Error("expected ErrForbidden")
	}
	if err.Kind() != KindUserNotAuthorized {
		t.Errorf("unexpected kind %s", err.Kind())
	}
}

func TestPropertyServerWrapsCause(t *testing.T) {
	err := PropertyServer("findAssets", sql.ErrConnDone)
	if !stderrors.Is(err, sql.ErrConnDone) {
		t.Error("expected cause to be reachable")
	}
	if !stderrors.Is(err, ErrInternal) {
		t.Error("expected ErrInternal sentinel")
	}
	if err.Kind() != KindPropertyServer {
		t.Errorf("unexpected kind %s", err.Kind())
	}
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
	}{
		{"service error kept", AlreadyExists("asset", "g"), CodeAlreadyExists},
		{"sentinel not found", fmt.Errorf("entity g: %w", ErrNotFound), CodeNotFound},
		{"sentinel conflict", fmt.Errorf("entity g: %w", ErrAlreadyExists), CodeAlreadyExists},
		{"sentinel invalid", fmt.Errorf("bad: %w", ErrInvalidInput), CodeInvalidParameter},
		{"anything else", stderrors.New("boom"), CodePropertyServer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			se := FromError("op", tt.err)
			if se.Code != tt.code {
				t.Fatalf("expected %s, got %s", tt.code, se.Code)
			}
		})
	}
	if FromError("op", nil) != nil {
		t.Fatal("nil error should map to nil")
	}
}

func TestDetailKeysSorted(t *testing.T) {
	err := RateLimitExceeded(10, "1s")
	keys := err.DetailKeys()
	if len(keys) != 2 || keys[0] != "limit" || keys[1] != "window" {
		t.Fatalf("unexpected keys %v", keys)
	}
}
