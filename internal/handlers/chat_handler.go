package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/medischedule-portal/internal/apiclient"
	"github.com/harentsoaR/medischedule-portal/internal/chat"
)

// chatView mounts, or reuses, the chat view for the request's path.
func (h *Handler) chatView(c *gin.Context) *chat.Poller {
	appointmentID := c.Param("appointmentId")
	if p, ok := h.Views.Active(appointmentID); ok {
		return p
	}
	return h.Views.Open(c.Request.URL.Path, appointmentID)
}

func chatModel(p *chat.Poller) gin.H {
	model := gin.H{
		"appointment_id": p.AppointmentID(),
		"messages":       p.Messages(),
		"loaded":         p.Loaded(),
	}
	if err := p.LastError(); err != nil {
		model["error"] = apiclient.Message(err, "Failed to load messages")
	}
	return model
}

// ChatPage shows the thread. The first visit mounts the view, which keeps
// polling until the user navigates elsewhere. A rejected token ends the
// session, whether or not the thread was shown before.
func (h *Handler) ChatPage(c *gin.Context) {
	p := h.chatView(c)
	if err := p.WaitFirst(ctx(c)); err != nil {
		return
	}
	if apiclient.IsUnauthorized(p.LastError()) {
		h.expire(c)
		return
	}
	page(c, "chat", chatModel(p))
}

// SendMessage posts the draft through the mounted view, or through a
// detached one when the chat is not on screen. On failure the draft is
// echoed back.
func (h *Handler) SendMessage(c *gin.Context) {
	var form struct {
		Message string `form:"message" json:"message"`
	}
	_ = c.ShouldBind(&form)

	appointmentID := c.Param("appointmentId")
	p, ok := h.Views.Active(appointmentID)
	if !ok {
		p = h.Views.Detached(appointmentID)
	}
	err := p.Send(ctx(c), form.Message)
	if errors.Is(err, chat.ErrEmptyMessage) {
		invalid(c, "Message cannot be empty", gin.H{"message": form.Message})
		return
	}
	if err != nil {
		h.fail(c, err, "Failed to send message", gin.H{"message": form.Message})
		return
	}
	c.JSON(http.StatusOK, chatModel(p))
}

// LeaveChat unmounts the view without navigating elsewhere.
func (h *Handler) LeaveChat(c *gin.Context) {
	if _, ok := h.Views.Active(c.Param("appointmentId")); ok {
		h.Views.Close()
	}
	c.Status(http.StatusNoContent)
}
