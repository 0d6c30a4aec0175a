package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/harentsoaR/medischedule-portal/internal/models"
)

func (c *Client) DepartmentStats(ctx context.Context) (models.Stats, error) {
	var out models.Stats
	err := c.do(ctx, request{method: http.MethodGet, path: "/department-head/stats", auth: true}, &out)
	return out, err
}

func (c *Client) DepartmentDoctors(ctx context.Context) ([]models.DoctorProfile, error) {
	var out []models.DoctorProfile
	err := c.do(ctx, request{method: http.MethodGet, path: "/department-head/doctors", auth: true}, &out)
	return out, err
}

func (c *Client) DepartmentPatients(ctx context.Context) ([]models.User, error) {
	var out []models.User
	err := c.do(ctx, request{method: http.MethodGet, path: "/department-head/patients", auth: true}, &out)
	return out, err
}

func (c *Client) DepartmentCreateUser(ctx context.Context, req models.NewAccount) (models.User, error) {
	var out models.User
	err := c.do(ctx, request{method: http.MethodPost, path: "/department-head/create-user", body: req, auth: true}, &out)
	return out, err
}

func (c *Client) DepartmentReviewDoctor(ctx context.Context, doctorID string, status models.DoctorStatus) (Ack, error) {
	var out Ack
	if err := requireID(doctorID); err != nil {
		return out, err
	}
	err := c.do(ctx, request{
		method: http.MethodPut,
		path:   "/department-head/approve-doctor/" + escape(doctorID),
		query:  url.Values{"status": {string(status)}},
		body:   struct{}{},
		auth:   true,
	}, &out)
	return out, err
}

func (c *Client) DepartmentRemoveDoctor(ctx context.Context, doctorID string) (Ack, error) {
	var out Ack
	if err := requireID(doctorID); err != nil {
		return out, err
	}
	err := c.do(ctx, request{method: http.MethodDelete, path: "/department-head/remove-doctor/" + escape(doctorID), auth: true}, &out)
	return out, err
}

func (c *Client) DepartmentRemovePatient(ctx context.Context, patientID string) (Ack, error) {
	var out Ack
	if err := requireID(patientID); err != nil {
		return out, err
	}
	err := c.do(ctx, request{method: http.MethodDelete, path: "/department-head/remove-patient/" + escape(patientID), auth: true}, &out)
	return out, err
}
