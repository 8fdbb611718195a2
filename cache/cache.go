package cache

import (
	"context"
	"errors"
	"time"

	"goshortly/cache/cacher"
	"goshortly/cache/inmemory"
	"goshortly/models"
	"goshortly/pkg/multicas"
	"goshortly/repository"
)

const (
	defaultClearInterval = 24 * time.Hour
	defaultExp           = 1 * time.Hour
	cacheHitExp          = 24 * time.Hour
	cacheMissExp         = 1 * time.Hour
)

// New decorates db with an in-memory read-through cache on the short-code
// lookup path.
func New(db repository.Repository) repository.Repository {
	return NewWithEngine(db, inmemory.New(defaultExp, defaultClearInterval))
}

// NewWithEngine is New with a caller-picked engine (e.g. redis).
func NewWithEngine(db repository.Repository, engine cacher.Engine) repository.Repository {
	return &cacheLogic{
		db:    db,
		cache: engine,
		mcas:  multicas.NewMultiCAS(),
	}
}

type cacheLogic struct {
	db    repository.Repository
	cache cacher.Engine
	mcas  multicas.MultiCAS
}

// GetUrlByCode caches lookup results, hits and not-founds both.
func (r *cacheLogic) GetUrlByCode(ctx context.Context, code string) (*models.Url, error) {
	cached, found := r.cache.Get(code)
	if found {
		if cached.Err != nil {
			return nil, cached.Err
		}
		return &models.Url{Id: cached.Id, LongUrl: cached.LongUrl, ShortCode: code}, nil
	}

	// cache miss
	if r.mcas.Set(code) {
		defer r.mcas.Unset(code)
		// In case of cache stampede, mcas.Set() ensures that only one
		// goroutine can trigger recomputing the value for the code.
		record, err := r.db.GetUrlByCode(ctx, code)
		if err != nil {
			if !errors.Is(err, repository.ErrRecordNotFound) {
				// transient faults are not worth caching
				return nil, err
			}
			r.cache.Set(code, &cacher.Entry{Err: repository.ErrRecordNotFound}, cacheMissExp)
			return nil, err
		}
		r.cache.Set(code, &cacher.Entry{Id: record.Id, LongUrl: record.LongUrl}, cacheHitExp)
		return record, nil
	}
	//
	// In case of cache stampede, this implementation chooses to guarantee
	// availability, so the losers just report record not found.
	return nil, repository.ErrRecordNotFound
}

// UpdateUrl writes through and drops the stale entry for the code.
func (r *cacheLogic) UpdateUrl(ctx context.Context, url *models.Url) error {
	if err := r.db.UpdateUrl(ctx, url); err != nil {
		return err
	}
	r.cache.Delete(url.ShortCode)
	return nil
}

// DeleteUrl writes through and drops the entry so the code stops resolving
// immediately.
func (r *cacheLogic) DeleteUrl(ctx context.Context, url *models.Url) error {
	if err := r.db.DeleteUrl(ctx, url); err != nil {
		return err
	}
	r.cache.Delete(url.ShortCode)
	return nil
}

// The rest just wraps the underlying repository.

func (r *cacheLogic) CreateUser(ctx context.Context, user *models.User) error {
	return r.db.CreateUser(ctx, user)
}

func (r *cacheLogic) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.db.GetUserByEmail(ctx, email)
}

func (r *cacheLogic) GetUserById(ctx context.Context, id string) (*models.User, error) {
	return r.db.GetUserById(ctx, id)
}

func (r *cacheLogic) CreateUrl(ctx context.Context, url *models.Url) error {
	return r.db.CreateUrl(ctx, url)
}

func (r *cacheLogic) GetUrlById(ctx context.Context, id string) (*models.Url, error) {
	return r.db.GetUrlById(ctx, id)
}

func (r *cacheLogic) CodeTaken(ctx context.Context, code string) (bool, error) {
	return r.db.CodeTaken(ctx, code)
}

func (r *cacheLogic) ListUrlsByOwner(ctx context.Context, ownerId string) ([]models.Url, error) {
	return r.db.ListUrlsByOwner(ctx, ownerId)
}

func (r *cacheLogic) AddClick(ctx context.Context, id string) error {
	return r.db.AddClick(ctx, id)
}
