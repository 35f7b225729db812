package token

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndVerify(t *testing.T) {
	svc := NewService("test-secret", time.Hour, "bookings")

	signed, err := svc.Issue("John Doe")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	claims, err := svc.Verify(signed)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.Username != "John Doe" {
		t.Errorf("Username = %q, want %q", claims.Username, "John Doe")
	}
	if claims.ID == "" {
		t.Error("expected a token ID to be assigned")
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer := NewService("secret-a", time.Hour, "bookings")
	verifier := NewService("secret-b", time.Hour, "bookings")

	signed, err := issuer.Issue("alice")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := verifier.Verify(signed); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	svc := NewService("test-secret", -time.Minute, "bookings")

	signed, err := svc.Issue("bob")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Verify(signed); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("Verify() error = %v, want ErrExpiredToken", err)
	}
}

func TestVerify_Garbage(t *testing.T) {
	svc := NewService("test-secret", time.Hour, "bookings")

	if _, err := svc.Verify("not-a-jwt"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
	}
}

func TestExtractBearer(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"bearer token", "Bearer abc.def.ghi", "abc.def.ghi"},
		{"missing header", "", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz", ""},
		{"prefix only", "Bearer ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractBearer(tt.header); got != tt.want {
				t.Errorf("ExtractBearer(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}
