package auth

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/5pponent/diary-server/api/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCodes() *Codes {
	return NewCodes(cache.NewMemoryStore(100, CodeTTL), cache.NewMemoryStore(100, VerifiedEmailTTL))
}

func TestGenerateCode(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9]{6}$`)
	for i := 0; i < 50; i++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		assert.Regexp(t, pattern, code)
	}
}

func TestCodeIsConsumedOnMatch(t *testing.T) {
	ctx := context.Background()
	codes := newCodes()

	code, err := codes.Issue(ctx, "a@example.com")
	require.NoError(t, err)

	assert.ErrorIs(t, codes.Check(ctx, "a@example.com", "not-it"), ErrAuthCodeMismatch)
	require.NoError(t, codes.Check(ctx, "a@example.com", code))
	assert.ErrorIs(t, codes.Check(ctx, "a@example.com", code), ErrAuthCodeMismatch)
}

func TestReissueReplacesCode(t *testing.T) {
	ctx := context.Background()
	codes := newCodes()

	first, err := codes.Issue(ctx, "a@example.com")
	require.NoError(t, err)
	second, err := codes.Issue(ctx, "a@example.com")
	require.NoError(t, err)

	if first != second {
		assert.ErrorIs(t, codes.Check(ctx, "a@example.com", first), ErrAuthCodeMismatch)
	}
	assert.NoError(t, codes.Check(ctx, "a@example.com", second))
}

func TestCodeExpires(t *testing.T) {
	ctx := context.Background()
	codes := NewCodes(cache.NewMemoryStore(10, 10*time.Millisecond), cache.NewMemoryStore(10, time.Minute))

	code, err := codes.Issue(ctx, "a@example.com")
	require.NoError(t, err)
	time.Sleep(40 * time.Millisecond)

	assert.ErrorIs(t, codes.Check(ctx, "a@example.com", code), ErrAuthCodeMismatch)
}

func TestVerifiedMarkerIsSingleUse(t *testing.T) {
	ctx := context.Background()
	codes := newCodes()

	assert.ErrorIs(t, codes.ConsumeVerified(ctx, "a@example.com"), ErrMailAuthRequired)
	require.NoError(t, codes.MarkVerified(ctx, "a@example.com"))
	require.NoError(t, codes.ConsumeVerified(ctx, "a@example.com"))
	assert.ErrorIs(t, codes.ConsumeVerified(ctx, "a@example.com"), ErrMailAuthRequired)
}

func TestRequireVerifiedKeepsMarker(t *testing.T) {
	ctx := context.Background()
	codes := newCodes()

	assert.ErrorIs(t, codes.RequireVerified(ctx, "a@example.com"), ErrMailAuthRequired)
	require.NoError(t, codes.MarkVerified(ctx, "a@example.com"))

	require.NoError(t, codes.RequireVerified(ctx, "a@example.com"))
	require.NoError(t, codes.RequireVerified(ctx, "a@example.com"))
	require.NoError(t, codes.ConsumeVerified(ctx, "a@example.com"))
	assert.ErrorIs(t, codes.RequireVerified(ctx, "a@example.com"), ErrMailAuthRequired)
}
