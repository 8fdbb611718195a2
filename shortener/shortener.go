package shortener

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"goshortly/codegen"
	"goshortly/models"
	"goshortly/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const clickTimeout = 5 * time.Second

var (
	ErrInvalidFormat = errors.New("invalid url format")
	ErrNotFound      = errors.New("url not found")
	ErrForbidden     = errors.New("not allowed")
)

type Service struct {
	db     repository.Repository
	codes  codegen.Generator
	logger *zap.Logger
}

func NewService(db repository.Repository, codes codegen.Generator, logger *zap.Logger) *Service {
	return &Service{db: db, codes: codes, logger: logger}
}

// Normalize trims the input, defaults a missing scheme to https and rejects
// anything that does not parse as an absolute URL with a plausible host.
func Normalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	lower := strings.ToLower(raw)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		raw = "https://" + raw
	}
	u, err := url.ParseRequestURI(raw)
	if err != nil || u.Host == "" {
		return "", ErrInvalidFormat
	}
	for _, r := range u.Hostname() {
		switch {
		case r == '.' || r == '-':
		case 'a' <= r && r <= 'z':
		case 'A' <= r && r <= 'Z':
		case '0' <= r && r <= '9':
		default:
			return "", ErrInvalidFormat
		}
	}
	return raw, nil
}

// Create draws codes until an insert sticks. Losing the insert race for a
// code is a redraw, not a request failure.
//
// Deliberately no dedup: shortening the same long URL twice yields two codes.
func (s *Service) Create(ctx context.Context, rawUrl string, ownerId *string) (*models.Url, error) {
	longUrl, err := Normalize(rawUrl)
	if err != nil {
		return nil, err
	}
	for {
		code, err := s.codes.Generate(ctx)
		if err != nil {
			return nil, err
		}
		record := models.Url{
			Id:        uuid.NewString(),
			LongUrl:   longUrl,
			ShortCode: code,
			OwnerId:   ownerId,
		}
		err = s.db.CreateUrl(ctx, &record)
		if err == nil {
			return &record, nil
		}
		if errors.Is(err, repository.ErrDuplicateRecord) {
			s.logger.Warn("short code collided at insert, redrawing",
				zap.String("code", code))
			continue
		}
		return nil, err
	}
}

// Resolve returns the destination for a live code. The click is counted on a
// detached goroutine: bookkeeping must not hold up the redirect, and its
// failure is logged, never surfaced.
func (s *Service) Resolve(ctx context.Context, code string) (string, error) {
	if s.codes.Validate(code) != nil {
		return "", ErrNotFound
	}
	record, err := s.db.GetUrlByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	go func() {
		clickCtx, cancel := context.WithTimeout(context.Background(), clickTimeout)
		defer cancel()
		if err := s.db.AddClick(clickCtx, record.Id); err != nil {
			s.logger.Error("failed to count click",
				zap.String("id", record.Id), zap.Error(err))
		}
	}()
	return record.LongUrl, nil
}

// ListForOwner returns the requester's live records, newest first.
func (s *Service) ListForOwner(ctx context.Context, ownerId string) ([]models.Url, error) {
	return s.db.ListUrlsByOwner(ctx, ownerId)
}

func (s *Service) Update(ctx context.Context, id, rawUrl, requesterId string) (*models.Url, error) {
	record, err := s.owned(ctx, id, requesterId)
	if err != nil {
		return nil, err
	}
	longUrl, err := Normalize(rawUrl)
	if err != nil {
		return nil, err
	}
	record.LongUrl = longUrl
	if err := s.db.UpdateUrl(ctx, record); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	record.UpdatedAt = time.Now()
	return record, nil
}

func (s *Service) Delete(ctx context.Context, id, requesterId string) (*models.Url, error) {
	record, err := s.owned(ctx, id, requesterId)
	if err != nil {
		return nil, err
	}
	if err := s.db.DeleteUrl(ctx, record); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	record.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	return record, nil
}

// owned loads a live record and enforces strict owner equality. Anonymous
// records have no owner and therefore fail for every requester.
func (s *Service) owned(ctx context.Context, id, requesterId string) (*models.Url, error) {
	record, err := s.db.GetUrlById(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if record.OwnerId == nil || *record.OwnerId != requesterId {
		return nil, ErrForbidden
	}
	return record, nil
}
