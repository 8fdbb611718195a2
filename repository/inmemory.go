package repository

import (
	"context"
	"sync"
	"time"

	"goshortly/models"

	"gorm.io/gorm"
)

// NewInMemoryRepo returns a Repository backed by process memory. It honors the
// same contract as the postgres implementation: uniqueness among live rows,
// newest-first owner listings and atomic click increments. Used by tests.
func NewInMemoryRepo() Repository {
	return &inMemoryRepository{
		users: make(map[string]models.User),
		urls:  make(map[string]models.Url),
	}
}

type inMemoryRepository struct {
	mu      sync.Mutex
	users   map[string]models.User
	urls    map[string]models.Url
	urlSeq  []string // url ids in insertion order
	userSeq []string
}

func live(deletedAt gorm.DeletedAt) bool {
	return !deletedAt.Valid
}

func (m *inMemoryRepository) CreateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if live(u.DeletedAt) && u.Email == user.Email {
			return ErrDuplicateRecord
		}
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	m.users[user.Id] = *user
	m.userSeq = append(m.userSeq, user.Id)
	return nil
}

func (m *inMemoryRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if live(u.DeletedAt) && u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, ErrRecordNotFound
}

func (m *inMemoryRepository) GetUserById(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok || !live(u.DeletedAt) {
		return nil, ErrRecordNotFound
	}
	return &u, nil
}

func (m *inMemoryRepository) CreateUrl(ctx context.Context, url *models.Url) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.urls {
		if live(u.DeletedAt) && u.ShortCode == url.ShortCode {
			return ErrDuplicateRecord
		}
	}
	now := time.Now()
	url.CreatedAt = now
	url.UpdatedAt = now
	m.urls[url.Id] = *url
	m.urlSeq = append(m.urlSeq, url.Id)
	return nil
}

func (m *inMemoryRepository) GetUrlByCode(ctx context.Context, code string) (*models.Url, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.urls {
		if live(u.DeletedAt) && u.ShortCode == code {
			found := u
			return &found, nil
		}
	}
	return nil, ErrRecordNotFound
}

func (m *inMemoryRepository) GetUrlById(ctx context.Context, id string) (*models.Url, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.urls[id]
	if !ok || !live(u.DeletedAt) {
		return nil, ErrRecordNotFound
	}
	return &u, nil
}

func (m *inMemoryRepository) CodeTaken(ctx context.Context, code string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.urls {
		if live(u.DeletedAt) && u.ShortCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (m *inMemoryRepository) ListUrlsByOwner(ctx context.Context, ownerId string) ([]models.Url, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	urls := make([]models.Url, 0)
	// walk insertion order backwards for a stable newest-first listing
	for i := len(m.urlSeq) - 1; i >= 0; i-- {
		u := m.urls[m.urlSeq[i]]
		if live(u.DeletedAt) && u.OwnerId != nil && *u.OwnerId == ownerId {
			urls = append(urls, u)
		}
	}
	return urls, nil
}

func (m *inMemoryRepository) UpdateUrl(ctx context.Context, url *models.Url) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.urls[url.Id]
	if !ok || !live(u.DeletedAt) {
		return ErrRecordNotFound
	}
	u.LongUrl = url.LongUrl
	u.UpdatedAt = time.Now()
	m.urls[url.Id] = u
	return nil
}

func (m *inMemoryRepository) DeleteUrl(ctx context.Context, url *models.Url) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.urls[url.Id]
	if !ok || !live(u.DeletedAt) {
		return ErrRecordNotFound
	}
	u.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	m.urls[url.Id] = u
	return nil
}

func (m *inMemoryRepository) AddClick(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.urls[id]
	if !ok || !live(u.DeletedAt) {
		return ErrRecordNotFound
	}
	u.Clicks++
	m.urls[id] = u
	return nil
}
