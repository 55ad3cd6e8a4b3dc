package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"ride-compare-service/internal/auth"
	"ride-compare-service/internal/domain"
	"ride-compare-service/internal/ports"
	"strings"
)

var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// RegisterInput mirrors the registration contract: last name is optional,
// everything else is required.
type RegisterInput struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	PhoneNumber string
}

// Accounts implements registration and login for the toy auth collaborator.
// Credentials are stored as bcrypt hashes, never compared in plaintext.
type Accounts struct {
	Users    ports.UserRepository
	Profiles ports.ProfileStore
	Tokens   *auth.TokenManager
}

func NewAccounts(users ports.UserRepository, profiles ports.ProfileStore, tokens *auth.TokenManager) *Accounts {
	return &Accounts{Users: users, Profiles: profiles, Tokens: tokens}
}

// Register validates, hashes, and stores a new account. The saved profile
// becomes the session's last-known profile for personalization.
func (a *Accounts) Register(ctx context.Context, in RegisterInput, sessionID string) (domain.User, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)

	if in.FirstName == "" || in.Email == "" || in.Password == "" || in.PhoneNumber == "" {
		return domain.User{}, ErrMissingFields
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("register: hash password: %w", err)
	}

	user, err := a.Users.Create(ctx, domain.User{
		FirstName:    in.FirstName,
		LastName:     strings.TrimSpace(in.LastName),
		Email:        in.Email,
		PasswordHash: hash,
		PhoneNumber:  in.PhoneNumber,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("register: %w", err)
	}

	a.rememberProfile(ctx, sessionID, user)

	return user, nil
}

// Login verifies credentials and issues an access token.
func (a *Accounts) Login(ctx context.Context, email, password, sessionID string) (domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return domain.User{}, "", ErrMissingFields
	}

	user, found, err := a.Users.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("login: %w", err)
	}
	// Same failure for unknown email and bad password.
	if !found || !auth.CheckPassword(user.PasswordHash, password) {
		return domain.User{}, "", ErrInvalidCredentials
	}

	token := ""
	if a.Tokens != nil {
		token, err = a.Tokens.Generate(user.ID, user.Email)
		if err != nil {
			return domain.User{}, "", fmt.Errorf("login: generate token: %w", err)
		}
	}

	a.rememberProfile(ctx, sessionID, user)

	return user, token, nil
}

func (a *Accounts) rememberProfile(ctx context.Context, sessionID string, user domain.User) {
	if a.Profiles == nil || sessionID == "" {
		return
	}
	if err := a.Profiles.Save(ctx, sessionID, user.Profile()); err != nil {
		log.Printf("profile save failed: session=%s err=%v", sessionID, err)
	}
}
