package tokens

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/folio-site/folio/backend/internal/models"
	"github.com/folio-site/folio/backend/pkg/apierror"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret-32-bytes-should-be-long-enough"

func TestGenerateAndParse(t *testing.T) {
	u := &models.User{ID: "user-123", Username: "admin"}
	tokenStr, err := GenerateAccessToken(secret, u, 2*time.Minute)
	require.NoError(t, err)

	claims, err := ParseAccessToken(secret, tokenStr)
	require.NoError(t, err)
	require.Equal(t, "user-123", claims.Subject)
	require.Equal(t, "admin", claims.Username)

	id, err := NewVerifier(secret).Verify(context.Background(), tokenStr)
	require.NoError(t, err)
	require.Equal(t, "user-123", id.Subject)
}

func TestGenerateRequiresSecret(t *testing.T) {
	_, err := GenerateAccessToken("", &models.User{ID: "u"}, time.Minute)
	require.Error(t, err)
}

func TestParseExpired(t *testing.T) {
	u := &models.User{ID: "u2", Username: "x"}
	tokenStr, err := GenerateAccessToken(secret, u, -time.Second)
	require.NoError(t, err)
	_, err = ParseAccessToken(secret, tokenStr)
	require.ErrorIs(t, err, apierror.ErrUnauthenticated)
}

func TestParseWrongSecretFails(t *testing.T) {
	tokenStr, err := GenerateAccessToken(secret, &models.User{ID: "u3"}, time.Minute)
	require.NoError(t, err)
	_, err = ParseAccessToken("different-secret-xxxxxxxxxxxxxxxx", tokenStr)
	require.ErrorIs(t, err, apierror.ErrUnauthenticated)
}

func TestParseMalformedAndEmpty(t *testing.T) {
	_, err := ParseAccessToken(secret, "not.a.jwt")
	require.ErrorIs(t, err, apierror.ErrUnauthenticated)
	_, err = ParseAccessToken(secret, "")
	require.ErrorIs(t, err, apierror.ErrUnauthenticated)
}

func TestParseAlgNoneRejected(t *testing.T) {
	headerEnc := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none"}`))
	payloadEnc := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"u-none","exp":9999999999}`))
	_, err := ParseAccessToken(secret, headerEnc+"."+payloadEnc+".")
	require.ErrorIs(t, err, apierror.ErrUnauthenticated)
}

func TestParseTamperedPayload(t *testing.T) {
	tokenStr, err := GenerateAccessToken(secret, &models.User{ID: "user-t", Username: "t"}, 5*time.Minute)
	require.NoError(t, err)
	parts := strings.Split(tokenStr, ".")
	require.Len(t, parts, 3)
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(strings.Replace(string(payload), "user-t", "attacker", 1)))
	_, err = ParseAccessToken(secret, strings.Join(parts, "."))
	require.ErrorIs(t, err, apierror.ErrUnauthenticated)
}
