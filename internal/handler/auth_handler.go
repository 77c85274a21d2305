package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"

	"github.com/mribeiro/userauth/internal/middleware"
	"github.com/mribeiro/userauth/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type meResponse struct {
	Email string `json:"email"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Health reports service liveness.
func (h *AuthHandler) Health(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Register handles user registration
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	email, err := h.authService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			sendJSONError(w, "email already registered", http.StatusConflict)
			return
		}
		sendJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(w, http.StatusOK, registerResponse{
		Email:   email,
		Message: "user registered successfully",
	})
}

// Login handles user authentication and returns a bearer token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	token, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			sendJSONError(w, service.ErrInvalidCredentials.Error(), http.StatusUnauthorized)
			return
		}
		sendJSONError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(w, http.StatusOK, loginResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// Me resolves the bearer token extracted by the middleware to the
// authenticated user's email.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	token := middleware.TokenFromContext(r.Context())

	email, err := h.authService.WhoAmI(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken):
			sendJSONError(w, service.ErrInvalidToken.Error(), http.StatusUnauthorized)
		case errors.Is(err, service.ErrUserNotFound):
			sendJSONError(w, service.ErrUserNotFound.Error(), http.StatusNotFound)
		default:
			sendJSONError(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	sendJSON(w, http.StatusOK, meResponse{Email: email})
}

// decodeCredentials parses and validates a register/login body before the
// orchestrator runs. It writes a 400 response and returns ok=false on
// failure.
func decodeCredentials(w http.ResponseWriter, r *http.Request) (credentialsRequest, bool) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONError(w, "invalid request body", http.StatusBadRequest)
		return req, false
	}

	if req.Email == "" || req.Password == "" {
		sendJSONError(w, "email and password are required", http.StatusBadRequest)
		return req, false
	}

	if _, err := mail.ParseAddress(req.Email); err != nil {
		sendJSONError(w, "invalid email address", http.StatusBadRequest)
		return req, false
	}

	if len(req.Password) < 8 {
		sendJSONError(w, "password must be at least 8 characters long", http.StatusBadRequest)
		return req, false
	}

	return req, true
}

// Helper function to send JSON responses
func sendJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

// Helper function to send JSON error responses
func sendJSONError(w http.ResponseWriter, message string, code int) {
	sendJSON(w, code, errorResponse{Error: message})
}
