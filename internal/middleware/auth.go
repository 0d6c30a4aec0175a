package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/medischedule-portal/internal/models"
	"github.com/harentsoaR/medischedule-portal/internal/router"
)

// Context keys set by RequireRole for the page handlers.
const (
	UserKey = "user"
	RoleKey = "userRole"
)

// SessionReader is the read side of the session store.
type SessionReader interface {
	Ready() bool
	User() (models.User, bool)
}

// RequireReady answers 503 until the session has finished initializing.
func RequireReady(sess SessionReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !sess.Ready() {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Session is initializing"})
			return
		}
		c.Next()
	}
}

// RequireRole runs the route table on every request. A guarded path is only
// served to a user with exactly the required role; everyone else is sent to
// the login page.
func RequireRole(table router.Table, sess SessionReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		var current *models.User
		if u, ok := sess.User(); ok {
			current = &u
		}

		decision := table.Decide(c.Request.URL.Path, current)
		if !decision.Allowed() {
			c.Redirect(http.StatusFound, decision.Location)
			c.Abort()
			return
		}

		if current != nil {
			c.Set(UserKey, *current)
			c.Set(RoleKey, string(current.Role))
		}
		c.Next()
	}
}

// CurrentUser returns the user RequireRole stored on the context.
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(UserKey)
	if !ok {
		return models.User{}, false
	}
	u, ok := v.(models.User)
	return u, ok
}
