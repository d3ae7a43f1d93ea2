package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/draftdesk/draftdesk/internal/domain"
)

// ResetTokenContext namespaces password-reset tokens so they cannot be
// replayed in any other verification flow.
const ResetTokenContext = "password-reset"

// ResetTokenMaxAge bounds the lifetime of a password-reset link.
const ResetTokenMaxAge = time.Hour

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9.+_-]+@[a-zA-Z0-9._-]+\.[a-zA-Z]+$`)
	upperRegex = regexp.MustCompile(`[A-Z]`)
	digitRegex = regexp.MustCompile(`[0-9]`)
	punctRegex = regexp.MustCompile(`[^a-zA-Z0-9]`)
)

// AuthService orchestrates registration, confirmation, login, password reset,
// and profile updates.
type AuthService struct {
	users        domain.UserRepository
	tokens       *TokenService
	bcryptCost   int
	generateCode func() (string, error)
}

// NewAuthService creates a new AuthService.
func NewAuthService(users domain.UserRepository, tokens *TokenService, bcryptCost int) *AuthService {
	return &AuthService{
		users:        users,
		tokens:       tokens,
		bcryptCost:   bcryptCost,
		generateCode: GenerateCode,
	}
}

// SetCodeGenerator overrides the verification code source. Intended for tests.
func (s *AuthService) SetCodeGenerator(gen func() (string, error)) {
	s.generateCode = gen
}

// StartRegistration validates the submitted form, rejects already-registered
// emails, and returns the pending registration (password already hashed)
// together with a fresh verification code. Nothing is persisted until
// ConfirmRegistration.
func (s *AuthService) StartRegistration(ctx context.Context, firstName, lastName, email, password string) (*domain.PendingRegistration, string, error) {
	if errs := validateRegistration(firstName, lastName, email, password); len(errs) > 0 {
		return nil, "", errs
	}

	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return nil, "", domain.ErrDuplicateEmail
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, "", fmt.Errorf("check existing user: %w", err)
	}

	hash, err := HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", err
	}

	code, err := s.generateCode()
	if err != nil {
		return nil, "", err
	}

	pending := &domain.PendingRegistration{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
	}
	return pending, code, nil
}

// ConfirmRegistration compares the entered code to the stored code as exact
// strings and, on match, persists the pending registration as a verified
// user. A mismatch leaves all state untouched.
func (s *AuthService) ConfirmRegistration(ctx context.Context, pending *domain.PendingRegistration, storedCode, enteredCode string) (*domain.User, error) {
	if pending == nil || storedCode == "" || enteredCode != storedCode {
		return nil, domain.ErrCodeMismatch
	}

	user := &domain.User{
		FirstName:    pending.FirstName,
		LastName:     pending.LastName,
		Email:        pending.Email,
		PasswordHash: pending.PasswordHash,
		Verified:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials. Checks run in a fixed order and the first
// failing one wins: unknown user (ErrNotFound), then unverified email
// (ErrNotVerified), then wrong password (ErrUnauthorized).
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if !user.Verified {
		return nil, domain.ErrNotVerified
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return nil, domain.ErrUnauthorized
	}

	return user, nil
}

// IssueResetToken looks up the account and returns a password-reset token
// for it. ErrNotFound is reported to the caller; the forgot-password flow
// deliberately tells the user whether the email is registered.
func (s *AuthService) IssueResetToken(ctx context.Context, email string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("get user: %w", err)
	}
	return s.tokens.Issue(user.Email, ResetTokenContext)
}

// VerifyResetToken validates a reset token and returns the email it was
// issued for.
func (s *AuthService) VerifyResetToken(token string) (string, error) {
	return s.tokens.Verify(token, ResetTokenContext, ResetTokenMaxAge)
}

// ResetPassword verifies the token, requires matching passwords, and
// persists the new hash. The user is not logged in afterwards.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword, confirmPassword string) error {
	email, err := s.VerifyResetToken(token)
	if err != nil {
		return err
	}

	if newPassword != confirmPassword {
		return fmt.Errorf("%w: passwords do not match", domain.ErrInvalidInput)
	}

	hash, err := HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, email, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// UpdateProfile validates the new details, enforces email uniqueness
// excluding the user's own record, and persists the change.
func (s *AuthService) UpdateProfile(ctx context.Context, id int64, firstName, lastName, email string) (*domain.User, error) {
	if errs := validateProfileUpdate(firstName, lastName, email); len(errs) > 0 {
		return nil, errs
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err == nil && existing.ID != id {
		return nil, domain.ErrDuplicateEmail
	}
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}

	if err := s.users.UpdateProfile(ctx, id, firstName, lastName, email); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	return s.users.GetByID(ctx, id)
}

// GetUserByID retrieves a user by their ID.
func (s *AuthService) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

func validateRegistration(firstName, lastName, email, password string) domain.ValidationErrors {
	var errs domain.ValidationErrors
	if !emailRegex.MatchString(email) {
		errs = append(errs, domain.FieldError{Field: "emailRegister", Message: "Invalid email address!"})
	}
	if !validPassword(password) {
		errs = append(errs, domain.FieldError{
			Field:   "passwordRegister",
			Message: "Password must contain at least 8 characters, one uppercase letter, one number, and one special character.",
		})
	}
	if firstName == "" {
		errs = append(errs, domain.FieldError{Field: "nameRegister", Message: "First name is required!"})
	}
	if lastName == "" {
		errs = append(errs, domain.FieldError{Field: "lastNameRegister", Message: "Last name is required!"})
	}
	return errs
}

func validateProfileUpdate(firstName, lastName, email string) domain.ValidationErrors {
	var errs domain.ValidationErrors
	if firstName == "" {
		errs = append(errs, domain.FieldError{Field: "nameUpdate", Message: "First name is required!"})
	}
	if lastName == "" {
		errs = append(errs, domain.FieldError{Field: "lastNameUpdate", Message: "Last name is required!"})
	}
	if !emailRegex.MatchString(email) {
		errs = append(errs, domain.FieldError{Field: "emailUpdate", Message: "Invalid email address!"})
	}
	return errs
}

func validPassword(password string) bool {
	return len(password) >= 8 &&
		upperRegex.MatchString(password) &&
		digitRegex.MatchString(password) &&
		punctRegex.MatchString(password)
}
