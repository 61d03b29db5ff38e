package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/harukisol/board-management-api/internal/constants"
	apierrors "github.com/harukisol/board-management-api/internal/errors"
)

// RequireAuth validates the JWT carried by the auth cookie and stores the
// user ID in the request context.
func RequireAuth(jwtSecret string) gin.HandlerFunc {
	secret := []byte(jwtSecret)

	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(constants.AuthCookieName)
		if err != nil || tokenStr == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		userID, ok := parseUserToken(tokenStr, secret)
		if !ok {
			apierrors.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// parseUserToken validates an HS256 access token and extracts the subject.
func parseUserToken(tokenStr string, secret []byte) (uint64, bool) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims,
		func(t *jwt.Token) (interface{}, error) { return secret, nil },
		jwt.WithValidMethods([]string{"HS256"}),
	)
	if err != nil {
		return 0, false
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, false
	}
	return userID, true
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
