package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"stylebot/internal/service"
)

const sessionIDKey = "session_id"

// SessionAuthMiddleware valida el token de sesion y verifica que apunte
// a la sesion de la ruta.
func SessionAuthMiddleware(tokenSvc *service.SessionTokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenSvc == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "session tokens not configured"})
			c.Abort()
			return
		}

		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			c.Abort()
			return
		}

		token := strings.TrimSpace(header[len("Bearer "):])
		sessionID, err := tokenSvc.Verify(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		if sessionID != c.Param("id") {
			c.JSON(http.StatusForbidden, gin.H{"error": "token does not match session"})
			c.Abort()
			return
		}

		c.Set(sessionIDKey, sessionID)
		c.Next()
	}
}

// GetSessionID obtiene el ID de sesion autenticado desde el contexto.
func GetSessionID(c *gin.Context) (string, bool) {
	val, ok := c.Get(sessionIDKey)
	if !ok {
		return "", false
	}
	id, ok := val.(string)
	return id, ok
}
