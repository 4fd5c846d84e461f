package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"storefront-be/internal/entities"
	"storefront-be/internal/jwt"
	"storefront-be/internal/mailer"
	"storefront-be/internal/models"
	"storefront-be/internal/repository"
)

// Reset tokens stay valid for one hour, same as session tokens.
const resetTokenTTL = time.Hour

// AuthService defines the interface for account and session business logic
type AuthService interface {
	Register(req *models.RegisterRequest) error
	Login(req *models.LoginRequest) (*models.LoginResponse, error)
	Profile(userID int64) (*models.ProfileResponse, error)
	UpdateProfile(userID int64, req *models.UpdateProfileRequest) error
	RequestReset(email string) error
	ConsumeReset(token, newPassword string) error
}

type authService struct {
	userRepo    repository.UserRepository
	jwtService  *jwt.JWTService
	mailer      mailer.Mailer
	frontendURL string
	adminEmail  string
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtService *jwt.JWTService, mail mailer.Mailer, frontendURL, adminEmail string) AuthService {
	return &authService{
		userRepo:    userRepo,
		jwtService:  jwtService,
		mailer:      mail,
		frontendURL: frontendURL,
		adminEmail:  adminEmail,
	}
}

// Register creates a new account. The client logs in separately; no
// identity is returned here.
func (s *authService) Register(req *models.RegisterRequest) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	role := entities.RoleCustomer
	if s.adminEmail != "" && req.Email == s.adminEmail {
		role = entities.RoleAdmin
	}

	_, err = s.userRepo.Create(req.Email, string(hashed), role)
	if errors.Is(err, repository.ErrDuplicateEmail) {
		return ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// Login verifies the credential pair and issues a signed bearer token.
// An unknown email and a wrong password fail identically.
func (s *authService) Login(req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.LoginResponse{Token: token}, nil
}

// Profile returns the public view of an account
func (s *authService) Profile(userID int64) (*models.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	return &models.ProfileResponse{ID: user.ID, Email: user.Email}, nil
}

// UpdateProfile changes the email and, when a new password was submitted,
// re-hashes and replaces the credential.
func (s *authService) UpdateProfile(userID int64, req *models.UpdateProfileRequest) error {
	var passwordHash *string
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		h := string(hashed)
		passwordHash = &h
	}

	err := s.userRepo.UpdateProfile(userID, req.Email, passwordHash)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, repository.ErrDuplicateEmail) {
		return ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	return nil
}

// RequestReset stores a fresh single-use token on the account and mails a
// reset link. An unknown email is treated as success without sending mail,
// so the endpoint cannot be used to probe for accounts.
func (s *authService) RequestReset(email string) error {
	token, err := generateResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	expiry := time.Now().Add(resetTokenTTL).UnixMilli()

	matched, err := s.userRepo.SetResetToken(email, token, expiry)
	if err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}
	if !matched {
		return nil
	}

	link := fmt.Sprintf("%s/reset-password/%s", s.frontendURL, token)
	body := "To reset your password, click on this link: " + link
	if err := s.mailer.Send(email, "Password Reset", body); err != nil {
		return fmt.Errorf("%w: %v", ErrMailDelivery, err)
	}

	return nil
}

// ConsumeReset exchanges an unexpired reset token for a new credential.
// The token fields are cleared in the same update that replaces the hash,
// so the token can be spent at most once.
func (s *authService) ConsumeReset(token, newPassword string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	consumed, err := s.userRepo.ConsumeResetToken(token, string(hashed), time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to consume reset token: %w", err)
	}
	if !consumed {
		return ErrInvalidResetToken
	}

	return nil
}

// generateResetToken returns 20 random bytes hex-encoded
func generateResetToken() (string, error) {
	bytes := make([]byte, 20)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
