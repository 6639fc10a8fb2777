package oauth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_RoundTrip(t *testing.T) {
	g := NewGoogleService("client", "secret", "http://localhost/cb", nil)

	state, cookie, err := g.NewState()
	require.NoError(t, err)
	assert.Equal(t, StateCookieName, cookie.Name)
	assert.True(t, cookie.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/cb?code=abc&state="+state, nil)
	req.AddCookie(cookie)
	assert.NoError(t, g.CheckState(req))

	forged := httptest.NewRequest(http.MethodGet, "/cb?code=abc&state=other", nil)
	forged.AddCookie(cookie)
	assert.ErrorIs(t, g.CheckState(forged), ErrStateMismatch)

	noCookie := httptest.NewRequest(http.MethodGet, "/cb?state="+state, nil)
	assert.ErrorIs(t, g.CheckState(noCookie), ErrStateMismatch)
}

func TestRedirectURL(t *testing.T) {
	g := NewGoogleService("client-id", "secret", "http://localhost/cb", []string{"email"})

	u := g.RedirectURL("xyz")
	assert.True(t, strings.HasPrefix(u, "https://accounts.google.com/"))
	assert.Contains(t, u, "client_id=client-id")
	assert.Contains(t, u, "state=xyz")
}
