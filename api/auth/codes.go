package auth

import (
	"context"
	"crypto/rand"
	"math/big"
	"time"

	"github.com/5pponent/diary-server/api/cache"
)

const (
	CodeLength       = 6
	codeChars        = "0123456789"
	CodeTTL          = 5 * time.Minute
	VerifiedEmailTTL = 30 * time.Minute

	verifiedMarker = "verified"
)

// Codes runs the e-mail verification flow: a code is issued per address,
// checked once, and a successful check may leave a verified marker behind.
type Codes struct {
	codes    cache.Store
	verified cache.Store
}

func NewCodes(codes, verified cache.Store) *Codes {
	return &Codes{codes: codes, verified: verified}
}

// Issue creates and stores a fresh code for key, replacing any earlier one.
func (c *Codes) Issue(ctx context.Context, key string) (string, error) {
	code, err := GenerateCode()
	if err != nil {
		return "", err
	}
	if err := c.codes.Set(ctx, key, code); err != nil {
		return "", err
	}
	return code, nil
}

// Check consumes the stored code for key when it matches.
func (c *Codes) Check(ctx context.Context, key, code string) error {
	stored, ok, err := c.codes.Get(ctx, key)
	if err != nil {
		return err
	}
	if !ok || stored != code {
		return ErrAuthCodeMismatch
	}
	return c.codes.Delete(ctx, key)
}

func (c *Codes) MarkVerified(ctx context.Context, email string) error {
	return c.verified.Set(ctx, email, verifiedMarker)
}

// RequireVerified fails with ErrMailAuthRequired unless email holds a verified
// marker. The marker is left in place.
func (c *Codes) RequireVerified(ctx context.Context, email string) error {
	_, ok, err := c.verified.Get(ctx, email)
	if err != nil {
		return err
	}
	if !ok {
		return ErrMailAuthRequired
	}
	return nil
}

// ConsumeVerified succeeds once per verified address.
func (c *Codes) ConsumeVerified(ctx context.Context, email string) error {
	_, ok, err := c.verified.Get(ctx, email)
	if err != nil {
		return err
	}
	if !ok {
		return ErrMailAuthRequired
	}
	return c.verified.Delete(ctx, email)
}

// GenerateCode returns CodeLength random digits.
func GenerateCode() (string, error) {
	max := big.NewInt(int64(len(codeChars)))
	code := make([]byte, CodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = codeChars[n.Int64()]
	}
	return string(code), nil
}
