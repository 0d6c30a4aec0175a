package apiclient

import (
	"context"
	"net/http"

	"github.com/harentsoaR/medischedule-portal/internal/models"
)

// MyAppointments returns the caller's appointments, newest first as the
// backend orders them.
func (c *Client) MyAppointments(ctx context.Context) ([]models.Appointment, error) {
	var out []models.Appointment
	err := c.do(ctx, request{method: http.MethodGet, path: "/appointments/my", auth: true}, &out)
	return out, err
}

func (c *Client) BookAppointment(ctx context.Context, req models.AppointmentRequest) (models.Appointment, error) {
	var out models.Appointment
	err := c.do(ctx, request{method: http.MethodPost, path: "/appointments", body: req, auth: true}, &out)
	return out, err
}

// UpdateAppointmentStatus asks the backend for a transition; the backend
// decides whether it is allowed.
func (c *Client) UpdateAppointmentStatus(ctx context.Context, appointmentID string, status models.AppointmentStatus) (models.Appointment, error) {
	var out models.Appointment
	if err := requireID(appointmentID); err != nil {
		return out, err
	}
	err := c.do(ctx, request{
		method: http.MethodPut,
		path:   "/appointments/" + escape(appointmentID) + "/status",
		body:   models.StatusUpdate{Status: status},
		auth:   true,
	}, &out)
	return out, err
}
