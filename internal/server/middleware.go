package server

import (
	"github.com/gin-gonic/gin"
	authdomain "github.com/smallbiznis/storefront/internal/auth/domain"
	obscontext "github.com/smallbiznis/storefront/internal/observability/context"
	"go.uber.org/zap"
)

const contextAdminIDKey = "admin_id"

// AdminRequired rejects the request unless it carries a live admin session
// and, when require2FA is set, a matching 2FA marker cookie.
func (s *Server) AdminRequired(require2FA bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := s.sessions.ReadToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		session, err := s.gate.Authenticate(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		if require2FA {
			marker, _ := s.sessions.ReadTwoFactorMarker(c)
			if err := s.gate.VerifyTwoFactor(token, marker); err != nil {
				s.log.Debug("2fa marker rejected", zap.String("admin_id", session.AdminID))
				AbortWithError(c, authdomain.ErrTwoFactorRequired)
				return
			}
		}

		ctx := obscontext.WithActor(c.Request.Context(), "admin", session.AdminID)
		c.Request = c.Request.WithContext(ctx)
		c.Set(contextAdminIDKey, session.AdminID)
		c.Next()
	}
}
