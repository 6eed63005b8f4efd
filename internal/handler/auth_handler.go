package handler

import (
	"errors"
	"net/http"

	"github.com/Stewz00/doc-analysis-api/internal/logging"
	"github.com/Stewz00/doc-analysis-api/internal/service"
)

// Fixed client-facing messages. Login failures share one message so callers
// cannot tell unknown emails from wrong passwords.
const (
	msgRegistered         = "Registered successfully."
	msgInvalidBody        = "Invalid request body"
	msgMissingFields      = "Email and password are required"
	msgPasswordTooLong    = "Password must be at most 72 bytes"
	msgEmailTaken         = "Email already registered"
	msgInvalidCredentials = "Invalid credentials"
	msgInternal           = "Internal server error"
)

type AuthHandler struct {
	authService *service.AuthService
	logger      logging.Logger
}

func NewAuthHandler(authService *service.AuthService, logger logging.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

type RegisterRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName *string `json:"full_name,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// Register handles user registration
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		sendJSONError(w, msgInvalidBody, http.StatusBadRequest)
		return
	}

	err := h.authService.Register(r.Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		h.sendServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, MessageResponse{Message: msgRegistered})
}

// Login handles user authentication and returns a JWT token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		sendJSONError(w, msgInvalidBody, http.StatusBadRequest)
		return
	}

	token, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.sendServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{AccessToken: token})
}

func (h *AuthHandler) sendServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		sendJSONError(w, msgMissingFields, http.StatusBadRequest)
	case errors.Is(err, service.ErrPasswordTooLong):
		sendJSONError(w, msgPasswordTooLong, http.StatusBadRequest)
	case errors.Is(err, service.ErrEmailTaken):
		sendJSONError(w, msgEmailTaken, http.StatusBadRequest)
	case errors.Is(err, service.ErrInvalidCredentials):
		sendJSONError(w, msgInvalidCredentials, http.StatusUnauthorized)
	default:
		h.logger.Error(r.Context(), "auth request failed", "path", r.URL.Path, "error", err)
		sendJSONError(w, msgInternal, http.StatusInternalServerError)
	}
}
