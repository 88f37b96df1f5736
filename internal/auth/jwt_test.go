package auth

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSubject_KnownToken(t *testing.T) {
	sub, ok := DecodeSubject("x.eyJzdWIiOiJhQGIuY29tIn0.y")
	require.True(t, ok)
	assert.Equal(t, "a@b.com", sub)
}

func TestDecodeSubject_PaddedPayload(t *testing.T) {
	payload := base64.URLEncoding.EncodeToString([]byte(`{"sub":"ab@c.mx"}`))
	sub, ok := DecodeSubject("h." + payload + ".s")
	require.True(t, ok)
	assert.Equal(t, "ab@c.mx", sub)
}

func TestDecodeSubject_Absent(t *testing.T) {
	tests := map[string]string{
		"empty":          "",
		"one segment":    "abc",
		"two segments":   "a.eyJzdWIiOiJhQGIuY29tIn0",
		"four segments":  "a.eyJzdWIiOiJhQGIuY29tIn0.b.c",
		"not base64":     "a.!!!.b",
		"not json":       "a." + base64.RawURLEncoding.EncodeToString([]byte("hello")) + ".b",
		"no sub":         "a." + base64.RawURLEncoding.EncodeToString([]byte(`{"iss":"x"}`)) + ".b",
		"sub not string": "a." + base64.RawURLEncoding.EncodeToString([]byte(`{"sub":42}`)) + ".b",
		"json array":     "a." + base64.RawURLEncoding.EncodeToString([]byte(`[1,2]`)) + ".b",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			sub, ok := DecodeSubject(token)
			assert.False(t, ok)
			assert.Empty(t, sub)
		})
	}
}

func TestDecodeSubject_SignedToken(t *testing.T) {
	tok, err := GenerateToken("buyer@example.com", []byte("k"), time.Hour)
	require.NoError(t, err)

	sub, ok := DecodeSubject(tok)
	require.True(t, ok)
	assert.Equal(t, "buyer@example.com", sub)
}

func TestGenerateAndVerify(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	tok, err := GenerateToken("user@example.com", secret, time.Hour)
	require.NoError(t, err)

	sub, err := SubjectFromToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", sub)
}

func TestSubjectFromToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := GenerateToken("u1", secret, -time.Minute)
	require.NoError(t, err)

	_, err = SubjectFromToken(tok, secret)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestSubjectFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("u2", []byte("right-secret"), time.Hour)
	require.NoError(t, err)

	_, err = SubjectFromToken(tok, []byte("wrong-secret"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSubjectFromToken_Malformed(t *testing.T) {
	t.Parallel()

	_, err := SubjectFromToken("not.a.jwt", []byte("k"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}
