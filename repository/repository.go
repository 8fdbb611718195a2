package repository

import (
	"context"
	"errors"

	"goshortly/models"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	// ErrDuplicateRecord reports a write that violated live-row uniqueness
	// (email for users, short code for urls). Callers translate it to their
	// own domain error or redraw.
	ErrDuplicateRecord = errors.New("duplicate record")

	errNotImplemented = errors.New("not implemented")
)

type Repository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserById(ctx context.Context, id string) (*models.User, error)

	CreateUrl(ctx context.Context, url *models.Url) error
	GetUrlByCode(ctx context.Context, code string) (*models.Url, error)
	GetUrlById(ctx context.Context, id string) (*models.Url, error)
	CodeTaken(ctx context.Context, code string) (bool, error)
	ListUrlsByOwner(ctx context.Context, ownerId string) ([]models.Url, error)
	UpdateUrl(ctx context.Context, url *models.Url) error
	DeleteUrl(ctx context.Context, url *models.Url) error
	AddClick(ctx context.Context, id string) error
}

// UnimplementedRepository lets test doubles embed a Repository and override
// only the methods they record.
type UnimplementedRepository struct{}

func (UnimplementedRepository) CreateUser(ctx context.Context, user *models.User) error {
	return errNotImplemented
}

func (UnimplementedRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, errNotImplemented
}

func (UnimplementedRepository) GetUserById(ctx context.Context, id string) (*models.User, error) {
	return nil, errNotImplemented
}

func (UnimplementedRepository) CreateUrl(ctx context.Context, url *models.Url) error {
	return errNotImplemented
}

func (UnimplementedRepository) GetUrlByCode(ctx context.Context, code string) (*models.Url, error) {
	return nil, errNotImplemented
}

func (UnimplementedRepository) GetUrlById(ctx context.Context, id string) (*models.Url, error) {
	return nil, errNotImplemented
}

func (UnimplementedRepository) CodeTaken(ctx context.Context, code string) (bool, error) {
	return false, errNotImplemented
}

func (UnimplementedRepository) ListUrlsByOwner(ctx context.Context, ownerId string) ([]models.Url, error) {
	return nil, errNotImplemented
}

func (UnimplementedRepository) UpdateUrl(ctx context.Context, url *models.Url) error {
	return errNotImplemented
}

func (UnimplementedRepository) DeleteUrl(ctx context.Context, url *models.Url) error {
	return errNotImplemented
}

func (UnimplementedRepository) AddClick(ctx context.Context, id string) error {
	return errNotImplemented
}
