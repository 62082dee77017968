// Copyright (c) 2026 Hearth. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/taibuivan/hearth/internal/platform/apperr"
	"github.com/taibuivan/hearth/internal/platform/sec"
	"github.com/taibuivan/hearth/pkg/pointer"
	"github.com/taibuivan/hearth/pkg/uuidv7"
)

// # Contracts & Types

// TokenProvider defines the contract for generating session tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed JWT string, or an err if signing fails.
	GenerateAccessToken(userID string, timeToLive time.Duration) (string, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed carefully.
type Service struct {
	userRepository       UserRepository
	resetTokenRepository ResetTokenRepository
	tokenProvider        TokenProvider
}

// NewService constructs a new [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	resetRepo ResetTokenRepository,
	tokenProv TokenProvider,
) *Service {
	return &Service{
		userRepository:       userRepo,
		resetTokenRepository: resetRepo,
		tokenProvider:        tokenProv,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// AuthSession represents a successfully established user session: the signed
// bearer token plus the authenticated profile.
type AuthSession struct {
	Token string
	User  *User
}

/*
Register validates, hashes, and persists a brand new user account, then
signs them in immediately.

Description: Deep-enrollment of a new member, handling password hashing
and the initial session token issuance.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *AuthSession: Token and created profile
  - err: Conflict (if email exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*AuthSession, error) {

	// Verify email uniqueness. Return a client-safe Conflict err.
	_, err := service.userRepository.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.Conflict("User already exists")
	}

	// Prevent storing plain-text passwords. Cost 10 for balance between
	// security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:              uuidv7.New(),
		Name:            input.Name,
		Email:           input.Email,
		PasswordHash:    hashedPassword,
		IsSetupComplete: false,
		SiblingType:     SiblingSister,
		PreferredTime:   TimeMorning,
		LastLogin:       time.Now(),
	}

	// Persist the user to the database. A concurrent duplicate registration
	// loses the race at the unique constraint and surfaces as Conflict.
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	// Sign the fresh account in right away
	token, err := service.tokenProvider.GenerateAccessToken(user.ID, SessionTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &AuthSession{Token: token, User: user}, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

/*
Login validates user credentials and issues a session token.

Description: Verifies identity with a constant-time password comparison and
stamps the account's last login.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *AuthSession: Transport-ready token and profile
  - err: InvalidCredentials or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*AuthSession, error) {

	// If (err != nil) the user does not exist. Generic error to prevent enumeration.
	user, err := service.userRepository.FindByEmail(context, input.Email)
	if err != nil {
		return nil, apperr.InvalidCredentials()
	}

	// Verify password hash using constant-time comparison in bcrypt to prevent
	// timing attacks. Same generic error as the unknown-email path.
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.InvalidCredentials()
	}

	// Stamp last login. Best effort; a failed stamp must not block the login.
	if err := service.userRepository.UpdateLastLogin(context, user.ID); err == nil {
		user.LastLogin = time.Now()
	}

	// Generate the 7-day session token
	token, err := service.tokenProvider.GenerateAccessToken(user.ID, SessionTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &AuthSession{Token: token, User: user}, nil
}

// # Persona Setup

// SetupInput holds the one-time persona configuration. Nil fields are left
// untouched on the stored record, so partial setups merge cleanly.
type SetupInput struct {
	MotherName    *string
	FatherName    *string
	SiblingName   *string
	SiblingType   *string
	Goals         *string
	Interests     *string
	PreferredTime *string
	Timezone      *string
}

/*
CompleteSetup merges the supplied persona configuration into the user record
and flips the completion flag to true.

Description: The flag is one-way. Re-running setup updates the persona fields
but never clears IsSetupComplete.

Parameters:
  - context: context.Context
  - userID: string
  - input: SetupInput

Returns:
  - *User: Updated profile
  - err: NotFound (unknown user) or storage errors
*/
func (service *Service) CompleteSetup(context context.Context, userID string, input SetupInput) (*User, error) {

	// Resolve the account. NotFound propagates as-is.
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	// Merge only the fields the caller supplied
	user.MotherName = pointer.Fallback(input.MotherName, user.MotherName)
	user.FatherName = pointer.Fallback(input.FatherName, user.FatherName)
	user.SiblingName = pointer.Fallback(input.SiblingName, user.SiblingName)
	user.SiblingType = pointer.Fallback(input.SiblingType, user.SiblingType)
	user.Goals = pointer.Fallback(input.Goals, user.Goals)
	user.Interests = pointer.Fallback(input.Interests, user.Interests)
	user.PreferredTime = pointer.Fallback(input.PreferredTime, user.PreferredTime)
	user.Timezone = pointer.Fallback(input.Timezone, user.Timezone)
	user.IsSetupComplete = true

	if err := service.userRepository.Update(context, user); err != nil {
		return nil, fmt.Errorf("auth_service_setup_update_failed: %w", err)
	}

	return user, nil
}

// # Password Recovery

/*
RequestPasswordReset initiates the forgot-password flow.

Description: Generates a secure single-use token and saves it to Redis.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - string: Discovery token
  - err: Generation errors
*/
func (service *Service) RequestPasswordReset(context context.Context, email string) (string, error) {
	// Look up user.
	// NOTE: We don't return NOT_FOUND if the email doesn't exist to prevent user enumeration.
	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		return "", nil
	}

	// Generate reset token
	token, err := sec.GenerateSecureToken(ResetTokenLength)
	if err != nil {
		return "", fmt.Errorf("auth_service_generate_reset_token_failed: %w", err)
	}

	// Save to Redis
	if err := service.resetTokenRepository.Set(context, token, user.ID, ResetTokenTTL); err != nil {
		return "", fmt.Errorf("auth_service_save_reset_token_failed: %w", err)
	}

	return token, nil
}

/*
ResetPassword completes the forgot-password flow.

Description: Verifies the token, hashes the new password, updates the DB,
and burns the token so it cannot be replayed.

Parameters:
  - context: context.Context
  - token: string
  - newPassword: string

Returns:
  - err: Validation or update failures
*/
func (service *Service) ResetPassword(context context.Context, token, newPassword string) error {

	// Retrieve the userID associated with the reset token from Redis
	userID, err := service.resetTokenRepository.Get(context, token)
	if err != nil {
		return err
	}

	// Hash the new password securely
	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_reset_password_hash_failed: %w", err)
	}

	// Update the user's password in persistent storage
	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_reset_password_update_failed: %w", err)
	}

	// Delete the used token from Redis
	_ = service.resetTokenRepository.Delete(context, token)

	return nil
}
