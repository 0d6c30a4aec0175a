package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/harentsoaR/medischedule-portal/internal/models"
)

// AdminDoctors lists every doctor profile regardless of review status.
func (c *Client) AdminDoctors(ctx context.Context) ([]models.DoctorProfile, error) {
	var out []models.DoctorProfile
	err := c.do(ctx, request{method: http.MethodGet, path: "/admin/doctors", auth: true}, &out)
	return out, err
}

// ReviewDoctor approves or rejects a doctor profile.
func (c *Client) ReviewDoctor(ctx context.Context, doctorID string, status models.DoctorStatus) (models.DoctorProfile, error) {
	var out models.DoctorProfile
	if err := requireID(doctorID); err != nil {
		return out, err
	}
	err := c.do(ctx, request{
		method: http.MethodPut,
		path:   "/admin/doctors/" + escape(doctorID) + "/approve",
		query:  url.Values{"status": {string(status)}},
		body:   struct{}{},
		auth:   true,
	}, &out)
	return out, err
}

func (c *Client) AdminPatients(ctx context.Context) ([]models.User, error) {
	var out []models.User
	err := c.do(ctx, request{method: http.MethodGet, path: "/admin/patients", auth: true}, &out)
	return out, err
}

func (c *Client) AdminStats(ctx context.Context) (models.Stats, error) {
	var out models.Stats
	err := c.do(ctx, request{method: http.MethodGet, path: "/admin/stats", auth: true}, &out)
	return out, err
}

func (c *Client) Admins(ctx context.Context) ([]models.User, error) {
	var out []models.User
	err := c.do(ctx, request{method: http.MethodGet, path: "/admin/admins", auth: true}, &out)
	return out, err
}

func (c *Client) CreateAdmin(ctx context.Context, req models.NewAdmin) (models.User, error) {
	var out models.User
	err := c.do(ctx, request{method: http.MethodPost, path: "/admin/create-admin", body: req, auth: true}, &out)
	return out, err
}

func (c *Client) UpdatePermissions(ctx context.Context, adminID string, perms models.AdminPermissions) (Ack, error) {
	var out Ack
	if err := requireID(adminID); err != nil {
		return out, err
	}
	body := models.PermissionsUpdate{AdminID: adminID, Permissions: perms}
	err := c.do(ctx, request{method: http.MethodPut, path: "/admin/update-permissions", body: body, auth: true}, &out)
	return out, err
}

func (c *Client) DeleteAdmin(ctx context.Context, adminID string) (Ack, error) {
	var out Ack
	if err := requireID(adminID); err != nil {
		return out, err
	}
	err := c.do(ctx, request{method: http.MethodDelete, path: "/admin/delete-admin/" + escape(adminID), auth: true}, &out)
	return out, err
}

func (c *Client) CreateUser(ctx context.Context, req models.NewAccount) (models.User, error) {
	var out models.User
	err := c.do(ctx, request{method: http.MethodPost, path: "/admin/create-user", body: req, auth: true}, &out)
	return out, err
}

// DeleteUser removes a patient or doctor account.
func (c *Client) DeleteUser(ctx context.Context, userID string) (Ack, error) {
	var out Ack
	if err := requireID(userID); err != nil {
		return out, err
	}
	err := c.do(ctx, request{method: http.MethodDelete, path: "/admin/delete-user/" + escape(userID), auth: true}, &out)
	return out, err
}
