package auth

import (
	"context"
	"errors"

	"goshortly/hasher"
	"goshortly/models"
	"goshortly/repository"
	"goshortly/tokens"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials covers both an unknown email and a wrong password
	// so responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// Session is the outcome of a successful register or login.
type Session struct {
	Token string
	User  models.User
}

type Service struct {
	db     repository.Repository
	issuer *tokens.Issuer
	logger *zap.Logger
}

func NewService(db repository.Repository, issuer *tokens.Issuer, logger *zap.Logger) *Service {
	return &Service{db: db, issuer: issuer, logger: logger}
}

func (s *Service) Register(ctx context.Context, email, password, name string) (*Session, error) {
	_, err := s.db.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrRecordNotFound) {
		return nil, err
	}

	digest, err := hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Id:           uuid.NewString(),
		Email:        email,
		PasswordHash: digest,
		Name:         name,
	}
	if err := s.db.CreateUser(ctx, &user); err != nil {
		// Two concurrent registrations can both pass the lookup above; the
		// storage-level uniqueness constraint settles it.
		if errors.Is(err, repository.ErrDuplicateRecord) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	s.logger.Info("user registered", zap.String("id", user.Id))
	return s.newSession(&user)
}

func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.db.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return s.newSession(user)
}

// ValidateSubject confirms a token subject still maps to a live user.
func (s *Service) ValidateSubject(ctx context.Context, id string) (*models.User, error) {
	user, err := s.db.GetUserById(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *Service) newSession(user *models.User) (*Session, error) {
	token, err := s.issuer.Issue(user.Id, user.Email)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, User: *user}, nil
}
