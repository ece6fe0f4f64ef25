package handlers

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"novamarket/infrastructure/config"
	"novamarket/interfaces/http/rest/middleware"
	"novamarket/pkg/common"
	"novamarket/pkg/utils"
)

const sessionDuration = 7 * 24 * time.Hour

// AuthHandler issues and inspects session tokens. Credentials are the
// configured admin account; there is no user store behind this.
type AuthHandler struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(cfg *config.Config, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		cfg:    cfg,
		logger: logger,
	}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserInfo is the public shape of the authenticated user
type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// LoginResponse represents a successful login
type LoginResponse struct {
	Success bool     `json:"success"`
	User    UserInfo `json:"user"`
	Token   string   `json:"token"`
}

// StatusResponse reports the session state
type StatusResponse struct {
	Authenticated bool      `json:"authenticated"`
	User          *UserInfo `json:"user,omitempty"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.cfg.JWTSecret == "" {
		common.RespondError(w, http.StatusServiceUnavailable, "Authentication unavailable",
			"JWT_SECRET is not configured")
		return
	}

	var req LoginRequest
	if err := common.ParseJSONBody(w, r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.LabelValidationError, "Invalid request format")
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, common.LabelValidationError, err.Error())
		return
	}

	if req.Email != h.cfg.AdminEmail || req.Password != h.cfg.AdminPassword {
		common.RespondError(w, http.StatusUnauthorized, "Invalid credentials",
			"Email or password is incorrect")
		return
	}

	user := UserInfo{
		ID:    "1",
		Email: req.Email,
		Name:  "Admin User",
	}

	token, err := h.issueToken(user)
	if err != nil {
		h.logger.Error("Failed to sign session token", zap.Error(err))
		common.RespondError(w, http.StatusInternalServerError, common.LabelInternalError, "Failed to create session")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionDuration.Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})

	h.logger.Info("User logged in", zap.String("email", user.Email))
	common.RespondJSON(w, http.StatusOK, LoginResponse{
		Success: true,
		User:    user,
		Token:   token,
	})
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Logged out",
	})
}

// Status handles GET /api/auth/status
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		common.RespondJSON(w, http.StatusOK, StatusResponse{Authenticated: false})
		return
	}

	common.RespondJSON(w, http.StatusOK, StatusResponse{
		Authenticated: true,
		User: &UserInfo{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
		},
	})
}

// issueToken signs a session token for the user
func (h *AuthHandler) issueToken(user UserInfo) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"name":  user.Name,
		"iss":   h.cfg.JWTIssuer,
		"jti":   uuid.NewString(),
		"iat":   now.Unix(),
		"exp":   now.Add(sessionDuration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}
