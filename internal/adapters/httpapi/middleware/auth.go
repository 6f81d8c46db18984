package middleware

import (
	"strings"

	"bbs/internal/core/apperror"
	"bbs/internal/core/token"

	"github.com/gin-gonic/gin"
)

// UserIDKey holds the token subject in the gin context.
const UserIDKey = "userID"

var (
	errMissingHeader = apperror.Unauthorized("Missing Authorization Header")
	errBadHeader     = apperror.Unprocessable("Bad Authorization header. Expected value 'Bearer <JWT>'")
)

type TokenVerifier interface {
	Verify(raw string, want token.Type) (string, error)
}

// JWTAuthMiddleware requires a valid access token.
func JWTAuthMiddleware(v TokenVerifier) gin.HandlerFunc {
	return requireToken(v, token.Access)
}

// JWTRefreshMiddleware requires a valid refresh token.
func JWTRefreshMiddleware(v TokenVerifier) gin.HandlerFunc {
	return requireToken(v, token.Refresh)
}

func requireToken(v TokenVerifier, want token.Type) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := bearer(c.GetHeader("Authorization"))
		if err != nil {
			abort(c, err)
			return
		}
		subject, verr := v.Verify(raw, want)
		if verr != nil {
			appErr, ok := apperror.As(verr)
			if !ok {
				appErr = apperror.Unprocessable(verr.Error())
			}
			abort(c, appErr)
			return
		}
		c.Set(UserIDKey, subject)
		c.Next()
	}
}

func bearer(header string) (string, *apperror.Error) {
	if header == "" {
		return "", errMissingHeader
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errBadHeader
	}
	return parts[1], nil
}

// UserID returns the subject set by the auth middleware.
func UserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}

func abort(c *gin.Context, err *apperror.Error) {
	c.AbortWithStatusJSON(err.Status, gin.H{"detail": err.Detail})
}
