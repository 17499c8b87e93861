package auth

import (
	"net/http"
	"testing"

	"bookmyspot/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestExtractTokenFromRequest(t *testing.T) {
	r, _ := http.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer abc.def.ghi")

	token, err := ExtractTokenFromRequest(r)
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)
}

func TestExtractTokenFromRequestRejectsBadHeader(t *testing.T) {
	r, _ := http.NewRequest(http.MethodGet, "/", nil)

	_, err := ExtractTokenFromRequest(r)
	assert.Error(t, err)

	r.Header.Set("Authorization", "Basic abc")
	_, err = ExtractTokenFromRequest(r)
	assert.Error(t, err)
}

func TestExtractUserIDFromJWT(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "user-42"})

	sub, err := ExtractUserIDFromJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", sub)
}

func TestExtractActorFromJWT(t *testing.T) {
	cases := map[string]models.Actor{
		"admin":     models.ActorAdmin,
		"organizer": models.ActorOrganizer,
		"organiser": models.ActorOrganizer,
		"customer":  models.ActorCustomer,
		"":          models.ActorCustomer,
		"unknown":   models.ActorCustomer,
	}

	for role, want := range cases {
		token := signedToken(t, jwt.MapClaims{"sub": "u", "role": role})
		actor, err := ExtractActorFromJWT(token)
		require.NoError(t, err)
		assert.Equal(t, want, actor, "role %q", role)
	}
}
