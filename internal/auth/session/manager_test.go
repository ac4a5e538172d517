package session

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/storefront/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCookies(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewManager(config.Config{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: "tok"})
	req.AddCookie(&http.Cookie{Name: TwoFactorCookieName, Value: ""})
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req

	token, ok := m.ReadToken(c)
	assert.True(t, ok)
	assert.Equal(t, "tok", token)

	_, ok = m.ReadTwoFactorMarker(c)
	assert.False(t, ok)
}

func TestClearTwoFactorExpiresCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewManager(config.Config{AuthCookieSecure: true})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	m.ClearTwoFactor(c)

	header := w.Header().Get("Set-Cookie")
	require.NotEmpty(t, header)
	assert.True(t, strings.HasPrefix(header, TwoFactorCookieName+"=;"))
	assert.Contains(t, header, "Max-Age=0")
	assert.Contains(t, header, "Secure")
	assert.Contains(t, header, "HttpOnly")
}
