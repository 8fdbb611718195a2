package codegen

import (
	"context"
	"crypto/rand"
	"errors"

	"goshortly/repository"

	"github.com/jxskiss/base62"
	"go.uber.org/zap"
)

const (
	totalLetters = 6
	encodedChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	// Generate starts warning once a draw loop sees this many collisions.
	// The loop itself is unbounded: in a 62^6 namespace repeated collisions
	// mean the table is nearly full, which is an operational problem, not a
	// request error.
	retryWarnThreshold = 10
)

type empty struct{}

var validCharSet map[rune]empty

var (
	encoder           = base62.NewEncoding(encodedChars)
	errInvalidLength  = errors.New("invalid length")
	errUnexpectedChar = errors.New("unexpected char")
)

type Generator interface {
	// Generate returns a code that was unused among live records at the time
	// of the check. The check is a fast path only; the storage layer's
	// uniqueness constraint is what settles concurrent draws, and the caller
	// redraws when an insert reports a duplicate.
	Generate(ctx context.Context) (string, error)
	Validate(code string) error
}

func New(db repository.Repository, logger *zap.Logger) Generator {
	return &generator{db: db, logger: logger}
}

type generator struct {
	db     repository.Repository
	logger *zap.Logger
}

func (g *generator) Generate(ctx context.Context) (string, error) {
	for attempt := 1; ; attempt++ {
		code, err := draw()
		if err != nil {
			return "", err
		}
		taken, err := g.db.CodeTaken(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
		if attempt >= retryWarnThreshold {
			g.logger.Warn("short code namespace under pressure",
				zap.Int("attempts", attempt))
		}
	}
}

// draw renders random bytes in the base62 alphabet and keeps the first
// totalLetters characters.
func draw() (string, error) {
	for {
		var raw [8]byte
		if _, err := rand.Read(raw[:]); err != nil {
			return "", err
		}
		encoded := encoder.EncodeToString(raw[:])
		// leading zero bytes can encode shorter than totalLetters
		if len(encoded) >= totalLetters {
			return encoded[:totalLetters], nil
		}
	}
}

func getValidCharSet() map[rune]empty {
	if validCharSet != nil {
		return validCharSet
	}
	// lazy initialize encodedCharSet
	validCharSet := make(map[rune]empty, len(encodedChars))
	for _, c := range encodedChars {
		validCharSet[c] = empty{}
	}
	return validCharSet
}

func (g *generator) Validate(code string) error {
	if len(code) != totalLetters {
		return errInvalidLength
	}
	validChars := getValidCharSet()
	for _, r := range code {
		if _, ok := validChars[r]; !ok {
			return errUnexpectedChar
		}
	}
	return nil
}
