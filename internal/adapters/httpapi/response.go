package httpapi

import (
	"net/http"
	"strconv"

	"bbs/internal/core/apperror"

	"github.com/gin-gonic/gin"
)

// respondError writes {"detail": ...}. Errors that are not *apperror.Error are
// internal and their text is not sent to the client.
func respondError(c *gin.Context, err error) {
	if appErr, ok := apperror.As(err); ok {
		c.AbortWithStatusJSON(appErr.Status, gin.H{"detail": appErr.Detail})
		return
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal Server Error"})
}

func invalidInput(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"detail": "invalid input: " + err.Error()})
}

// Pagination reads skip and limit from the query string.
type Pagination struct {
	DefaultLimit int
	MaxLimit     int
}

func (p Pagination) Parse(c *gin.Context) (skip, limit int, err error) {
	skip, err = intQuery(c, "skip", 0)
	if err != nil {
		return 0, 0, err
	}
	if skip < 0 {
		return 0, 0, apperror.Unprocessable("skip must be >= 0")
	}
	limit, err = intQuery(c, "limit", p.DefaultLimit)
	if err != nil {
		return 0, 0, err
	}
	if limit < 1 || limit > p.MaxLimit {
		return 0, 0, apperror.Unprocessable("limit must be between 1 and " + strconv.Itoa(p.MaxLimit))
	}
	return skip, limit, nil
}

func intQuery(c *gin.Context, key string, def int) (int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.Unprocessable(key + " must be an integer")
	}
	return n, nil
}

// optionalQuery returns nil when key is absent or empty.
func optionalQuery(c *gin.Context, key string) *string {
	if v, ok := c.GetQuery(key); ok && v != "" {
		return &v
	}
	return nil
}
