package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"ride-compare-service/internal/api/dto"
	"ride-compare-service/internal/domain"
	"ride-compare-service/internal/ports"
	"ride-compare-service/internal/services"
)

// AccountHandler exposes the registration and login endpoints.
type AccountHandler struct {
	Accounts *services.Accounts
}

func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAuthFailure(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	defer r.Body.Close()

	user, err := h.Accounts.Register(r.Context(), services.RegisterInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
	}, r.Header.Get("X-Client-Session"))

	switch {
	case errors.Is(err, services.ErrMissingFields):
		writeAuthFailure(w, r, http.StatusBadRequest, "Missing required fields")
		return
	case errors.Is(err, ports.ErrEmailTaken):
		writeAuthFailure(w, r, http.StatusBadRequest, "Email already exists")
		return
	case err != nil:
		log.Printf("register failed: %v", err)
		writeAuthFailure(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.AuthResponse{
		Success: true,
		User:    toUserResponse(user),
	})
}

func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAuthFailure(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	defer r.Body.Close()

	user, token, err := h.Accounts.Login(r.Context(), req.Email, req.Password, r.Header.Get("X-Client-Session"))

	switch {
	case errors.Is(err, services.ErrMissingFields):
		writeAuthFailure(w, r, http.StatusBadRequest, "Missing required fields")
		return
	case errors.Is(err, services.ErrInvalidCredentials):
		writeAuthFailure(w, r, http.StatusUnauthorized, "Invalid credentials")
		return
	case err != nil:
		log.Printf("login failed: %v", err)
		writeAuthFailure(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.AuthResponse{
		Success: true,
		User:    toUserResponse(user),
		Token:   token,
	})
}

func toUserResponse(u domain.User) *dto.UserResponse {
	return &dto.UserResponse{
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
	}
}

func writeAuthFailure(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, dto.AuthResponse{Success: false, Error: msg})
}
