package identity

import (
	"encoding/base64"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePrincipal(t *testing.T, payload string) string {
	t.Helper()
	return base64.StdEncoding.EncodeToString([]byte(payload))
}

func TestDecodePrincipal(t *testing.T) {
	t.Run("decodes and lowercases roles", func(t *testing.T) {
		header := encodePrincipal(t, `{
			"userId": "u-1",
			"userDetails": "ada@example.com",
			"userRoles": ["Authenticated", "ADMIN"],
			"identityProvider": "github"
		}`)

		p := DecodePrincipal(header)
		require.NotNil(t, p)
		assert.Equal(t, "u-1", p.UserID)
		assert.Equal(t, "ada@example.com", p.UserDetails)
		assert.Equal(t, []string{"authenticated", "admin"}, p.UserRoles)
	})

	t.Run("absent or garbage headers are anonymous", func(t *testing.T) {
		assert.Nil(t, DecodePrincipal(""))
		assert.Nil(t, DecodePrincipal("not base64 at all!!"))
		assert.Nil(t, DecodePrincipal(encodePrincipal(t, "not json")))
	})
}

func TestHasRole(t *testing.T) {
	p := &Principal{UserRoles: []string{"authenticated", "volunteer"}}

	assert.True(t, p.HasRole("volunteer"))
	assert.True(t, p.HasRole("Volunteer"))
	assert.False(t, p.HasRole("admin"))

	var nilPrincipal *Principal
	assert.False(t, nilPrincipal.HasRole("admin"))
}

func TestHeaderProvider(t *testing.T) {
	provider := NewHeaderProvider()

	r := httptest.NewRequest("GET", "/", nil)
	assert.Nil(t, provider.FromRequest(r))

	r.Header.Set(PrincipalHeader, encodePrincipal(t, `{"userId":"u-1","userRoles":["authenticated"]}`))
	p := provider.FromRequest(r)
	require.NotNil(t, p)
	assert.Equal(t, "u-1", p.UserID)
}
