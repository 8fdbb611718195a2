package auth

import (
	"context"
	"testing"
	"time"

	"goshortly/models"
	"goshortly/repository"
	"goshortly/tokens"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestService() (*Service, *tokens.Issuer) {
	issuer := tokens.NewIssuer("test-secret", 24*time.Hour)
	return NewService(repository.NewInMemoryRepo(), issuer, zap.NewNop()), issuer
}

func TestService_RegisterThenLogin(t *testing.T) {
	s, issuer := newTestService()
	ctx := context.Background()

	registered, err := s.Register(ctx, "user@example.com", "hunter22", "Jane Doe")
	assert.NoError(t, err)
	assert.NotEmpty(t, registered.Token)
	assert.NotEmpty(t, registered.User.Id)
	assert.Equal(t, "user@example.com", registered.User.Email)
	// the stored credential is a digest, never the password
	assert.NotContains(t, registered.User.PasswordHash, "hunter22")

	session, err := s.Login(ctx, "user@example.com", "hunter22")
	assert.NoError(t, err)
	assert.Equal(t, registered.User.Id, session.User.Id)

	claims, err := issuer.Verify(session.Token)
	assert.NoError(t, err)
	assert.Equal(t, registered.User.Id, claims.UserId)
}

func TestService_Register_EmailTaken(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	_, err := s.Register(ctx, "user@example.com", "hunter22", "Jane Doe")
	assert.NoError(t, err)

	_, err = s.Register(ctx, "user@example.com", "different", "Someone Else")
	assert.Equal(t, ErrEmailTaken, err)
}

type duplicateOnCreate struct {
	repository.UnimplementedRepository
}

func (duplicateOnCreate) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, repository.ErrRecordNotFound
}

func (duplicateOnCreate) CreateUser(ctx context.Context, user *models.User) error {
	return repository.ErrDuplicateRecord
}

func TestService_Register_DuplicateAtWriteTime(t *testing.T) {
	// a concurrent registration can pass the lookup and lose the insert race;
	// the storage duplicate must come back as ErrEmailTaken, not a fault
	issuer := tokens.NewIssuer("test-secret", 24*time.Hour)
	s := NewService(duplicateOnCreate{}, issuer, zap.NewNop())

	_, err := s.Register(context.Background(), "user@example.com", "hunter22", "Jane Doe")
	assert.Equal(t, ErrEmailTaken, err)
}

func TestService_Login_InvalidCredentialsAreIndistinguishable(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	_, err := s.Register(ctx, "user@example.com", "hunter22", "Jane Doe")
	assert.NoError(t, err)

	_, wrongPassword := s.Login(ctx, "user@example.com", "not-the-password")
	_, unknownEmail := s.Login(ctx, "nobody@example.com", "hunter22")

	assert.Equal(t, ErrInvalidCredentials, wrongPassword)
	assert.Equal(t, ErrInvalidCredentials, unknownEmail)
	assert.Equal(t, wrongPassword, unknownEmail)
}

func TestService_ValidateSubject(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	session, err := s.Register(ctx, "user@example.com", "hunter22", "Jane Doe")
	assert.NoError(t, err)

	user, err := s.ValidateSubject(ctx, session.User.Id)
	assert.NoError(t, err)
	assert.Equal(t, "user@example.com", user.Email)

	_, err = s.ValidateSubject(ctx, "no-such-id")
	assert.Equal(t, ErrUserNotFound, err)
}
