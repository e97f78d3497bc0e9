package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	codec := NewTokenCodec("test-secret", time.Hour)

	token, err := codec.Issue(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subjectID, err := codec.VerifyAndDecode(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), subjectID)
}

func TestTokenExpired(t *testing.T) {
	codec := NewTokenCodec("test-secret", time.Hour)

	issued := time.Now()
	codec.now = func() time.Time { return issued }
	token, err := codec.Issue(42)
	require.NoError(t, err)

	// Just before expiry the token still verifies.
	codec.now = func() time.Time { return issued.Add(time.Hour - time.Second) }
	_, err = codec.VerifyAndDecode(token)
	require.NoError(t, err)

	codec.now = func() time.Time { return issued.Add(time.Hour + time.Second) }
	_, err = codec.VerifyAndDecode(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenTampered(t *testing.T) {
	codec := NewTokenCodec("test-secret", time.Hour)

	token, err := codec.Issue(42)
	require.NoError(t, err)

	tampered := []byte(token)
	last := len(tampered) - 1
	if tampered[last] == 'A' {
		tampered[last] = 'B'
	} else {
		tampered[last] = 'A'
	}

	_, err = codec.VerifyAndDecode(string(tampered))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewTokenCodec("secret-one", time.Hour).Issue(42)
	require.NoError(t, err)

	_, err = NewTokenCodec("secret-two", time.Hour).VerifyAndDecode(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenMalformed(t *testing.T) {
	codec := NewTokenCodec("test-secret", time.Hour)

	for _, input := range []string{"", "not-a-token", "a.b.c"} {
		_, err := codec.VerifyAndDecode(input)
		assert.ErrorIs(t, err, ErrInvalidToken, "input %q", input)
	}
}

func TestTokenNonNumericSubject(t *testing.T) {
	codec := NewTokenCodec("test-secret", time.Hour)

	// A structurally valid token whose subject is not a decimal id must be
	// rejected like any other invalid token.
	token := issueWithSubject(t, codec, "someone@example.com")
	_, err := codec.VerifyAndDecode(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func issueWithSubject(t *testing.T, c *TokenCodec, subject string) string {
	t.Helper()
	now := c.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.lifetime)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	require.NoError(t, err)
	return signed
}
