package apiclient

import (
	"context"
	"net/http"

	"github.com/harentsoaR/medischedule-portal/internal/models"
)

func (c *Client) ChatMessages(ctx context.Context, appointmentID string) ([]models.ChatMessage, error) {
	var out []models.ChatMessage
	if err := requireID(appointmentID); err != nil {
		return out, err
	}
	err := c.do(ctx, request{method: http.MethodGet, path: "/chat/" + escape(appointmentID), auth: true}, &out)
	if out == nil {
		out = []models.ChatMessage{}
	}
	return out, err
}

func (c *Client) SendChatMessage(ctx context.Context, appointmentID, text string) (models.ChatMessage, error) {
	var out models.ChatMessage
	if err := requireID(appointmentID); err != nil {
		return out, err
	}
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/chat/send",
		body:   models.ChatMessageRequest{AppointmentID: appointmentID, Message: text},
		auth:   true,
	}, &out)
	return out, err
}
