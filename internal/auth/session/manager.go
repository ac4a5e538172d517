package session

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/storefront/internal/config"
)

const (
	DefaultCookieName   = "_sid"
	TwoFactorCookieName = "admin_2fa_ok"
)

// Manager reads and clears the admin cookies.
type Manager struct {
	cookieName          string
	twoFactorCookieName string
	secure              bool
}

func NewManager(cfg config.Config) *Manager {
	return &Manager{
		cookieName:          DefaultCookieName,
		twoFactorCookieName: TwoFactorCookieName,
		secure:              cfg.AuthCookieSecure,
	}
}

func (m *Manager) ReadToken(c *gin.Context) (string, bool) {
	return readCookie(c, m.cookieName)
}

func (m *Manager) ReadTwoFactorMarker(c *gin.Context) (string, bool) {
	return readCookie(c, m.twoFactorCookieName)
}

// ClearTwoFactor expires the 2FA marker so the next admin request has to
// pass the OTP step again.
func (m *Manager) ClearTwoFactor(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.twoFactorCookieName, "", -1, "/", "", m.secure, true)
}

func readCookie(c *gin.Context, name string) (string, bool) {
	value, err := c.Cookie(name)
	if err != nil {
		return "", false
	}
	if strings.TrimSpace(value) == "" {
		return "", false
	}
	return value, true
}
