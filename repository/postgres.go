package repository

import (
	"context"
	"errors"
	"fmt"

	"goshortly/models"

	"github.com/jackc/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Live-row uniqueness lives in the database, not in application checks: a
// soft-deleted row releases its email / short code for reuse, so plain unique
// columns would be wrong.
var uniqueIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_live_email ON users (email) WHERE deleted_at IS NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_urls_live_short_code ON urls (short_code) WHERE deleted_at IS NULL`,
}

func NewPGRepo(port int, host, dbuser, dbname, password string) (Repository, error) {
	args := fmt.Sprintf("host=%s port=%v user=%s dbname=%s password=%s",
		host, port, dbuser, dbname, password)
	db, err := gorm.Open(postgres.Open(args), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&models.User{}, &models.Url{}); err != nil {
		return nil, err
	}
	for _, stmt := range uniqueIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return nil, err
		}
	}
	return &postgresRepository{db: db}, nil
}

// NewPGRepoForTestWith is just for testing purposes (no calling AutoMigrate())
func NewPGRepoForTestWith(dial gorm.Dialector, cfg gorm.Config) (Repository, error) {
	db, err := gorm.Open(dial, &cfg)
	return &postgresRepository{db: db}, err
}

type postgresRepository struct {
	db *gorm.DB
}

// translateUnique maps a unique-constraint violation to ErrDuplicateRecord so
// callers never see raw storage faults for the intrinsic insert races.
func translateUnique(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicateRecord
	}
	return err
}

func (p *postgresRepository) CreateUser(ctx context.Context, user *models.User) error {
	return translateUnique(p.db.WithContext(ctx).Create(user).Error)
}

func (p *postgresRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	// REMINDER: GORM adds `"users"."deleted_at" IS NULL` to filter soft-deleted records
	if err := p.db.WithContext(ctx).Where("email = ?", email).Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (p *postgresRepository) GetUserById(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := p.db.WithContext(ctx).Where("id = ?", id).Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (p *postgresRepository) CreateUrl(ctx context.Context, url *models.Url) error {
	return translateUnique(p.db.WithContext(ctx).Create(url).Error)
}

func (p *postgresRepository) GetUrlByCode(ctx context.Context, code string) (*models.Url, error) {
	var url models.Url
	if err := p.db.WithContext(ctx).Where("short_code = ?", code).Take(&url).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &url, nil
}

func (p *postgresRepository) GetUrlById(ctx context.Context, id string) (*models.Url, error) {
	var url models.Url
	if err := p.db.WithContext(ctx).Where("id = ?", id).Take(&url).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &url, nil
}

func (p *postgresRepository) CodeTaken(ctx context.Context, code string) (bool, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Model(&models.Url{}).
		Where("short_code = ?", code).
		Count(&count).Error
	return count > 0, err
}

func (p *postgresRepository) ListUrlsByOwner(ctx context.Context, ownerId string) ([]models.Url, error) {
	var urls []models.Url
	err := p.db.WithContext(ctx).
		Where("owner_id = ?", ownerId).
		Order("created_at DESC").
		Find(&urls).Error
	return urls, err
}

func (p *postgresRepository) UpdateUrl(ctx context.Context, url *models.Url) error {
	res := p.db.WithContext(ctx).
		Model(&models.Url{}).
		Where("id = ?", url.Id).
		Update("long_url", url.LongUrl)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != 1 {
		return ErrRecordNotFound
	}
	return nil
}

func (p *postgresRepository) DeleteUrl(ctx context.Context, url *models.Url) error {
	res := p.db.WithContext(ctx).Delete(&models.Url{Id: url.Id})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != 1 {
		return ErrRecordNotFound
	}
	return nil
}

// AddClick is an atomic counter bump; UpdateColumn keeps bookkeeping from
// touching updated_at.
func (p *postgresRepository) AddClick(ctx context.Context, id string) error {
	res := p.db.WithContext(ctx).
		Model(&models.Url{}).
		Where("id = ?", id).
		UpdateColumn("clicks", gorm.Expr("clicks + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != 1 {
		return ErrRecordNotFound
	}
	return nil
}
