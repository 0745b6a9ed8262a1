package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const ClaimsKey = "claims"

// JWTClaims are the custom claims embedded in every access token.
type JWTClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Rol    string `json:"role"`
	jwt.RegisteredClaims
}

func parseToken(secret, tokenStr string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}

// JWTAuth validates the Bearer token on every protected route.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			abortJSON(c, http.StatusUnauthorized, "Autenticacion requerida")
			return
		}

		claims, err := parseToken(secret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			abortJSON(c, http.StatusUnauthorized, "Token invalido o expirado")
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// OptionalAuth attaches claims when a valid token is present but lets
// anonymous requests through. Used by the public checkout so registered
// customers get their order linked to their account.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			if claims, err := parseToken(secret, strings.TrimPrefix(header, "Bearer ")); err == nil {
				c.Set(ClaimsKey, claims)
			}
		}
		c.Next()
	}
}

// RequireRole rejects requests whose JWT role is not in the allowed list.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		claims, ok := c.MustGet(ClaimsKey).(*JWTClaims)
		if !ok || !allowed[claims.Rol] {
			abortJSON(c, http.StatusForbidden, "Permisos insuficientes")
			return
		}
		c.Next()
	}
}

// GetClaims retrieves typed claims from the Gin context; nil when the request
// is anonymous.
func GetClaims(c *gin.Context) *JWTClaims {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*JWTClaims)
	return claims
}

func abortJSON(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": msg})
}
