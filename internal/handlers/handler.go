// Package handlers serves the portal's pages. Every page answers with a
// JSON page model; navigation is a GET and a redirect is a 302/303.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/harentsoaR/medischedule-portal/internal/apiclient"
	"github.com/harentsoaR/medischedule-portal/internal/chat"
	"github.com/harentsoaR/medischedule-portal/internal/middleware"
	"github.com/harentsoaR/medischedule-portal/internal/models"
	"github.com/harentsoaR/medischedule-portal/internal/router"
	"github.com/harentsoaR/medischedule-portal/internal/services"
	"github.com/harentsoaR/medischedule-portal/internal/session"
	"github.com/harentsoaR/medischedule-portal/internal/storage"
)

type Handler struct {
	Session    *session.Store
	API        *apiclient.Client
	Table      router.Table
	Views      *chat.Views
	Dashboards *services.DashboardService
	Store      storage.Store
	Log        zerolog.Logger
}

func NewHandler(
	sess *session.Store,
	api *apiclient.Client,
	table router.Table,
	views *chat.Views,
	kv storage.Store,
	log zerolog.Logger,
) *Handler {
	views.StopOn(apiclient.IsUnauthorized)
	return &Handler{
		Session:    sess,
		API:        api,
		Table:      table,
		Views:      views,
		Dashboards: services.NewDashboardService(api, log),
		Store:      kv,
		Log:        log,
	}
}

// user returns the session user RequireRole put on the context.
func user(c *gin.Context) models.User {
	u, _ := middleware.CurrentUser(c)
	return u
}

func ctx(c *gin.Context) context.Context {
	return c.Request.Context()
}

// page renders a page model.
func page(c *gin.Context, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["page"] = name
	c.JSON(http.StatusOK, data)
}

// fail answers a failed backend call with one display message and the
// submitted form, if any. A rejected token ends the session.
func (h *Handler) fail(c *gin.Context, err error, fallback string, form any) {
	if apiclient.IsUnauthorized(err) {
		h.expire(c)
		return
	}
	status := http.StatusBadGateway
	if code := apiclient.StatusCode(err); code >= 400 && code < 500 {
		status = code
	}
	h.Log.Warn().Err(err).Str("path", c.Request.URL.Path).Msg(fallback)

	body := gin.H{"error": apiclient.Message(err, fallback)}
	if form != nil {
		body["form"] = form
	}
	c.AbortWithStatusJSON(status, body)
}

// invalid rejects a form before it reaches the backend.
func invalid(c *gin.Context, message string, form any) {
	body := gin.H{"error": message}
	if form != nil {
		body["form"] = form
	}
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, body)
}

// forbidden is the page-level capability check failing.
func forbidden(c *gin.Context, capability models.Capability) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"error":      "You do not have permission to perform this action",
		"capability": capability,
	})
}

// require checks a capability flag on the session user.
func require(c *gin.Context, capability models.Capability) bool {
	if !user(c).Can(capability) {
		forbidden(c, capability)
		return false
	}
	return true
}

// expire logs out after the backend rejected the token and sends the user
// to the login page.
func (h *Handler) expire(c *gin.Context) {
	h.Log.Info().Str("path", c.Request.URL.Path).Msg("token rejected, logging out")
	h.Views.Close()
	if err := h.Session.Logout(ctx(c)); err != nil {
		h.Log.Error().Err(err).Msg("logout")
	}
	c.Redirect(http.StatusFound, router.LoginPath)
	c.Abort()
}
