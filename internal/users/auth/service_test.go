// Copyright (c) 2026 Hearth. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/hearth/internal/platform/apperr"
	"github.com/taibuivan/hearth/internal/users/auth"
	"github.com/taibuivan/hearth/pkg/pointer"
)

// # In-Memory Fakes

// memUserRepository is an in-memory UserRepository for service-level tests.
type memUserRepository struct {
	byID map[string]*auth.User
}

func newMemUserRepository() *memUserRepository {
	return &memUserRepository{byID: make(map[string]*auth.User)}
}

func (m *memUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	if user, ok := m.byID[id]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, apperr.NotFound("User")
}

func (m *memUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range m.byID {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (m *memUserRepository) Create(_ context.Context, user *auth.User) error {
	for _, existing := range m.byID {
		if existing.Email == user.Email {
			return apperr.Conflict("User already exists")
		}
	}
	clone := *user
	m.byID[user.ID] = &clone
	return nil
}

func (m *memUserRepository) Update(_ context.Context, user *auth.User) error {
	if _, ok := m.byID[user.ID]; !ok {
		return apperr.NotFound("User")
	}
	clone := *user
	m.byID[user.ID] = &clone
	return nil
}

func (m *memUserRepository) UpdateLastLogin(_ context.Context, userID string) error {
	if user, ok := m.byID[userID]; ok {
		user.LastLogin = time.Now()
		return nil
	}
	return apperr.NotFound("User")
}

func (m *memUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	if user, ok := m.byID[userID]; ok {
		user.PasswordHash = newHash
		return nil
	}
	return apperr.NotFound("User")
}

// memResetTokenRepository is an in-memory ResetTokenRepository.
type memResetTokenRepository struct {
	tokens map[string]string
}

func newMemResetTokenRepository() *memResetTokenRepository {
	return &memResetTokenRepository{tokens: make(map[string]string)}
}

func (m *memResetTokenRepository) Set(_ context.Context, token, userID string, _ time.Duration) error {
	m.tokens[token] = userID
	return nil
}

func (m *memResetTokenRepository) Get(_ context.Context, token string) (string, error) {
	if userID, ok := m.tokens[token]; ok {
		return userID, nil
	}
	return "", apperr.NotFound("Reset token")
}

func (m *memResetTokenRepository) Delete(_ context.Context, token string) error {
	delete(m.tokens, token)
	return nil
}

// fakeTokenProvider issues predictable tokens so tests can assert the subject.
type fakeTokenProvider struct{}

func (fakeTokenProvider) GenerateAccessToken(userID string, _ time.Duration) (string, error) {
	return "token-for-" + userID, nil
}

func newTestService() (*auth.Service, *memUserRepository, *memResetTokenRepository) {
	users := newMemUserRepository()
	resets := newMemResetTokenRepository()
	service := auth.NewService(users, resets, fakeTokenProvider{})
	return service, users, resets
}

// # Registration

/*
TestService_Register verifies enrollment of a brand new account.
*/
func TestService_Register(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	session, err := service.Register(ctx, auth.RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})

	require.NoError(t, err)
	require.NotNil(t, session.User)

	assert.NotEmpty(t, session.User.ID)
	assert.Equal(t, "token-for-"+session.User.ID, session.Token)
	assert.Equal(t, "Alice", session.User.Name)
	assert.False(t, session.User.IsSetupComplete)

	// Plaintext must never be stored
	assert.NotEqual(t, "secret123", session.User.PasswordHash)
	assert.NotEmpty(t, session.User.PasswordHash)
}

/*
TestService_Register_DuplicateEmail verifies that a second registration with
the same email fails with a Conflict mapped to a plain 400.
*/
func TestService_Register_DuplicateEmail(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	_, err := service.Register(ctx, auth.RegisterInput{
		Name: "Alice", Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	_, err = service.Register(ctx, auth.RegisterInput{
		Name: "Imposter", Email: "alice@example.com", Password: "other456",
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
	assert.Equal(t, 400, ae.HTTPStatus)
}

// # Login

/*
TestService_Login_RoundTrip verifies that registration followed by login
resolves to the same user identity.
*/
func TestService_Login_RoundTrip(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	registered, err := service.Register(ctx, auth.RegisterInput{
		Name: "Alice", Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	session, err := service.Login(ctx, auth.LoginInput{
		Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	assert.Equal(t, registered.User.ID, session.User.ID)
	assert.Equal(t, registered.Token, session.Token)
}

/*
TestService_Login_InvalidCredentials verifies that an unknown email and a
wrong password produce identical generic errors.
*/
func TestService_Login_InvalidCredentials(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	_, err := service.Register(ctx, auth.RegisterInput{
		Name: "Alice", Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	_, unknownEmailErr := service.Login(ctx, auth.LoginInput{
		Email: "nobody@example.com", Password: "secret123",
	})
	_, wrongPasswordErr := service.Login(ctx, auth.LoginInput{
		Email: "alice@example.com", Password: "wrong-password",
	})

	require.Error(t, unknownEmailErr)
	require.Error(t, wrongPasswordErr)

	// Both failure paths must be indistinguishable to the caller.
	first := apperr.As(unknownEmailErr)
	second := apperr.As(wrongPasswordErr)
	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, first.Code, second.Code)
	assert.Equal(t, first.Message, second.Message)
	assert.Equal(t, first.HTTPStatus, second.HTTPStatus)
	assert.Equal(t, 400, first.HTTPStatus)
}

// # Persona Setup

/*
TestService_CompleteSetup verifies the merge semantics and the one-way flag.
*/
func TestService_CompleteSetup(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	registered, err := service.Register(ctx, auth.RegisterInput{
		Name: "Alice", Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	updated, err := service.CompleteSetup(ctx, registered.User.ID, auth.SetupInput{
		MotherName:  pointer.To("Sarah"),
		SiblingType: pointer.To(auth.SiblingBrother),
		Goals:       pointer.To("run a marathon"),
	})
	require.NoError(t, err)

	assert.True(t, updated.IsSetupComplete)
	assert.Equal(t, "Sarah", updated.MotherName)
	assert.Equal(t, auth.SiblingBrother, updated.SiblingType)
	assert.Equal(t, "run a marathon", updated.Goals)

	// A partial re-run must not clear previously configured fields.
	again, err := service.CompleteSetup(ctx, registered.User.ID, auth.SetupInput{
		FatherName: pointer.To("James"),
	})
	require.NoError(t, err)

	assert.True(t, again.IsSetupComplete)
	assert.Equal(t, "Sarah", again.MotherName)
	assert.Equal(t, "James", again.FatherName)
}

/*
TestService_CompleteSetup_UnknownUser verifies the NotFound path.
*/
func TestService_CompleteSetup_UnknownUser(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.CompleteSetup(context.Background(), "missing-id", auth.SetupInput{
		MotherName: pointer.To("Sarah"),
	})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

// # Password Recovery

/*
TestService_PasswordReset_Flow walks the full forgot/reset cycle and verifies
the token is single-use.
*/
func TestService_PasswordReset_Flow(t *testing.T) {
	service, _, resets := newTestService()
	ctx := context.Background()

	_, err := service.Register(ctx, auth.RegisterInput{
		Name: "Alice", Email: "alice@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	token, err := service.RequestPasswordReset(ctx, "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, service.ResetPassword(ctx, token, "brand-new-pass"))

	// Old password is dead, new one works.
	_, err = service.Login(ctx, auth.LoginInput{Email: "alice@example.com", Password: "secret123"})
	assert.Error(t, err)
	_, err = service.Login(ctx, auth.LoginInput{Email: "alice@example.com", Password: "brand-new-pass"})
	assert.NoError(t, err)

	// The token is burned after use.
	assert.Empty(t, resets.tokens)
	assert.Error(t, service.ResetPassword(ctx, token, "another-pass"))
}

/*
TestService_PasswordReset_UnknownEmail verifies that an unknown email yields
no token and no error, preventing account enumeration.
*/
func TestService_PasswordReset_UnknownEmail(t *testing.T) {
	service, _, resets := newTestService()

	token, err := service.RequestPasswordReset(context.Background(), "ghost@example.com")

	assert.NoError(t, err)
	assert.Empty(t, token)
	assert.Empty(t, resets.tokens)
}
