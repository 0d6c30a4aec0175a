package apiclient

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"field error list", `{"detail":[{"loc":["body","email"],"msg":"value is not a valid email address"},{"msg":"second"}]}`, "value is not a valid email address"},
		{"list with message key", `{"detail":[{"message":"from message"}]}`, "from message"},
		{"string detail", `{"detail":"Email already registered"}`, "Email already registered"},
		{"object detail", `{"detail":{"msg":"Slot already taken"}}`, "Slot already taken"},
		{"gin style", `{"error":"Invalid credentials"}`, "Invalid credentials"},
		{"empty list", `{"detail":[]}`, "fallback"},
		{"object without msg", `{"detail":{"code":7}}`, "fallback"},
		{"not json", `<html>bad gateway</html>`, "fallback"},
		{"empty body", ``, "fallback"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &APIError{StatusCode: http.StatusBadRequest, Body: []byte(tt.body)}
			if got := Message(err, "fallback"); got != tt.want {
				t.Errorf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMessageNonAPIError(t *testing.T) {
	if got := Message(errors.New("boom"), "fallback"); got != "fallback" {
		t.Fatalf("Message() = %q", got)
	}
	wrapped := fmt.Errorf("load page: %w", &APIError{StatusCode: 404, Body: []byte(`{"detail":"Doctor not found"}`)})
	if got := Message(wrapped, "fallback"); got != "Doctor not found" {
		t.Fatalf("Message() on wrapped error = %q", got)
	}
}

func TestLoginMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"bad credentials with detail", &APIError{StatusCode: 401, Body: []byte(`{"detail":"Invalid email or password"}`)}, "Invalid email or password"},
		{"bad credentials bare", &APIError{StatusCode: 401}, "Incorrect email or password!"},
		{"validation", &APIError{StatusCode: 422, Body: []byte(`{"detail":[{"msg":"field required"}]}`)}, "field required"},
		{"server", &APIError{StatusCode: 500, Body: []byte(`{"detail":"trace"}`)}, "System error. Please try again later!"},
		{"network", fmt.Errorf("%w: dial tcp", ErrNetwork), "Cannot reach the server. Please check your network connection!"},
		{"other", &APIError{StatusCode: 418}, "Login failed. Please try again!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LoginMessage(tt.err); got != tt.want {
				t.Errorf("LoginMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsUnauthorized(t *testing.T) {
	if !IsUnauthorized(&APIError{StatusCode: 401}) {
		t.Error("401 should be unauthorized")
	}
	if !IsUnauthorized(ErrNoToken) {
		t.Error("missing token should be unauthorized")
	}
	if IsUnauthorized(&APIError{StatusCode: 403}) {
		t.Error("403 is not an authentication failure")
	}
}
