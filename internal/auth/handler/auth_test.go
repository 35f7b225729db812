package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bookly/pkg/logger"
	"bookly/pkg/token"

	"github.com/julienschmidt/httprouter"
)

func newTestRouter() (*httprouter.Router, *token.Service) {
	log := logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})
	tokens := token.NewService("test-secret", time.Hour, "bookings")
	h := NewAuthHandler(tokens, log)

	router := httprouter.New()
	h.RegisterRoutes(router)
	return router, tokens
}

func TestLogin_IssuesVerifiableToken(t *testing.T) {
	router, tokens := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"alice"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var resp LoginResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("Expected a token")
	}

	claims, err := tokens.Verify(resp.Token)
	if err != nil {
		t.Fatalf("Issued token failed verification: %v", err)
	}
	if claims.Username != "alice" {
		t.Errorf("Expected username alice, got %q", claims.Username)
	}
}

func TestLogin_EmptyUsername(t *testing.T) {
	router, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"   "}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestLogin_MalformedBody(t *testing.T) {
	router, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{username`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}
