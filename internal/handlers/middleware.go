package handlers

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"slices"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/job-portal/internal/logger"
	"github.com/justsurfingit/job-portal/internal/models"
	"github.com/justsurfingit/job-portal/internal/services"
)

const (
	UserIDHeader     = "X-User-ID"
	AdminTokenHeader = "X-Admin-Token"

	userKey = "user"
)

// Identity loads the user named by the X-User-ID header. Authentication is
// handled in front of this service.
func Identity(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.GetHeader(UserIDHeader), 10, 64)
		if err != nil || id == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid " + UserIDHeader + " header"})
			return
		}
		user, err := users.Get(c.Request.Context(), uint(id))
		if errors.Is(err, services.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
			return
		}
		if err != nil {
			logger.Ctx(c.Request.Context()).Error().Err(err).Msg("identity lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
			return
		}

		l := logger.Ctx(c.Request.Context()).With().Uint("user_id", user.ID).Logger()
		c.Request = c.Request.WithContext(l.WithContext(c.Request.Context()))
		c.Set(userKey, user)
		c.Next()
	}
}

// RequireRole rejects users whose type is not one of roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if u := currentUser(c); u == nil || !slices.Contains(roles, u.UserType) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}
		c.Next()
	}
}

// RequireAdminToken guards admin routes. An empty token disables them.
func RequireAdminToken(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := c.GetHeader(AdminTokenHeader)
		if token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	u, _ := v.(*models.User)
	return u
}

// respondError maps service errors to HTTP statuses.
func respondError(c *gin.Context, action string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrUsernameTaken):
		status = http.StatusConflict
	case errors.Is(err, services.ErrFileTooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrUnsupportedExt),
		errors.Is(err, services.ErrNoResume):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		logger.Ctx(c.Request.Context()).Error().Err(err).Msg(action + " failed")
		c.JSON(status, gin.H{"error": "Failed to " + action})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}
