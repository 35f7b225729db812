package handler

import (
	"encoding/json"
	"net/http"

	httputil "bookly/pkg/http"
	"bookly/pkg/logger"
	"bookly/pkg/sanitizer"
	"bookly/pkg/token"

	"github.com/julienschmidt/httprouter"
)

type LoginRequest struct {
	Username string `json:"username"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// AuthHandler issues bearer tokens. There is no credential store:
// any non-empty username gets a token, matching the demo login the
// service has always exposed.
type AuthHandler struct {
	tokens *token.Service
	log    *logger.Logger
}

func NewAuthHandler(tokens *token.Service, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		tokens: tokens,
		log:    log,
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Login", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	req.Username = sanitizer.NormalizeUser(req.Username)
	if req.Username == "" {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "username is required",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Login", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	signed, err := h.tokens.Issue(req.Username)
	if err != nil {
		h.log.Error("Failed to issue token", "username", req.Username, "error", err)
		if writeErr := httputil.WriteJSON(w, http.StatusInternalServerError, httputil.ErrorResponse{
			Error: "Internal server error",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Login", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	h.log.Info("Token issued", "username", req.Username)
	if err := httputil.WriteSuccess(w, LoginResponse{Token: signed}); err != nil {
		h.log.Error("failed to write success response", "handler", "Login", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AuthHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/login", h.Login)
}
