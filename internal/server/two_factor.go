package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ClearTwoFactor expires the 2FA marker cookie. It succeeds whether or not
// the cookie was present.
func (s *Server) ClearTwoFactor(c *gin.Context) {
	s.sessions.ClearTwoFactor(c)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"success": true}})
}
