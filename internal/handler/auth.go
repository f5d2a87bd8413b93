package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/medtrack/medication-interaction-api/internal/payload"
	"github.com/medtrack/medication-interaction-api/internal/usecase"
	"github.com/medtrack/medication-interaction-api/internal/validation"
)

// AuthHandler serves the registration and login routes.
type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	validator   *validation.Validator
	logger      *zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(
	authUsecase usecase.AuthUsecase,
	validator *validation.Validator,
	logger *zerolog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validator:   validator,
		logger:      logger,
	}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req payload.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Email and password are required.")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Email and password are required.")
		return
	}

	user, err := h.authUsecase.Register(r.Context(), usecase.RegisterParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrUserAlreadyExists) {
			respondMessage(w, http.StatusBadRequest, "Email is already in use")
			return
		}

		h.logger.Error().Err(err).Msg("failed to register user")
		respondMessage(w, http.StatusInternalServerError, "Error registering user")
		return
	}

	respondJSON(w, http.StatusCreated, payload.RegisterResponse{
		Message: "User registered successfully",
		UserID:  user.ID.Hex(),
		Email:   user.Email,
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	token, err := h.authUsecase.Login(r.Context(), usecase.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		// Unknown email and wrong password share one message on purpose.
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			respondMessage(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}

		h.logger.Error().Err(err).Msg("failed to log in user")
		respondMessage(w, http.StatusInternalServerError, "Error logging in")
		return
	}

	respondJSON(w, http.StatusOK, payload.LoginResponse{
		Message: "Login successful",
		Token:   token,
	})
}
