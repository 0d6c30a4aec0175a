package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/harentsoaR/medischedule-portal/internal/models"
)

func (c *Client) Specialties(ctx context.Context) ([]models.Specialty, error) {
	var out []models.Specialty
	err := c.do(ctx, request{method: http.MethodGet, path: "/specialties"}, &out)
	return out, err
}

// Doctors lists approved doctors, optionally narrowed to one specialty.
func (c *Client) Doctors(ctx context.Context, specialtyID string) ([]models.DoctorProfile, error) {
	var query url.Values
	if specialtyID != "" {
		query = url.Values{"specialty_id": {specialtyID}}
	}
	var out []models.DoctorProfile
	err := c.do(ctx, request{method: http.MethodGet, path: "/doctors", query: query}, &out)
	return out, err
}

func (c *Client) Doctor(ctx context.Context, doctorID string) (models.DoctorProfile, error) {
	var out models.DoctorProfile
	if err := requireID(doctorID); err != nil {
		return out, err
	}
	err := c.do(ctx, request{method: http.MethodGet, path: "/doctors/" + escape(doctorID)}, &out)
	return out, err
}

func (c *Client) UpdateDoctorProfile(ctx context.Context, update models.ProfileUpdate) (models.DoctorProfile, error) {
	var out models.DoctorProfile
	err := c.do(ctx, request{method: http.MethodPut, path: "/doctors/profile", body: update, auth: true}, &out)
	return out, err
}

func (c *Client) UpdateSchedule(ctx context.Context, slots []models.Slot) (models.DoctorProfile, error) {
	if slots == nil {
		slots = []models.Slot{}
	}
	var out models.DoctorProfile
	err := c.do(ctx, request{method: http.MethodPut, path: "/doctors/schedule", body: models.ScheduleUpdate{AvailableSlots: slots}, auth: true}, &out)
	return out, err
}
