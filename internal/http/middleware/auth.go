package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	claimUserIDKey = "auth_user_id"
	claimRolKey    = "auth_rol"
)

// RequireRol guards a route group behind a Bearer JWT whose "rol" claim is
// one of roles. Empty roles means any authenticated user.
func RequireRol(secret string, roles ...string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token requerido"})
			return
		}
		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return key, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token invalido o expirado"})
			return
		}

		rol, _ := claims["rol"].(string)
		if len(roles) > 0 {
			permitido := false
			for _, r := range roles {
				if strings.EqualFold(rol, r) {
					permitido = true
					break
				}
			}
			if !permitido {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "rol sin permisos"})
				return
			}
		}

		if uid, ok := claims["user_id"].(float64); ok {
			c.Set(claimUserIDKey, int64(uid))
		}
		c.Set(claimRolKey, rol)
		c.Next()
	}
}

// GetAuthRol returns the rol claim stored by RequireRol, "" when absent.
func GetAuthRol(c *gin.Context) string {
	if v, ok := c.Get(claimRolKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
