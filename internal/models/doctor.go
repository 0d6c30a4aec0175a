package models

import (
	"fmt"
	"strings"
	"time"
)

type Specialty struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type DoctorStatus string

const (
	DoctorPending  DoctorStatus = "pending"
	DoctorApproved DoctorStatus = "approved"
	DoctorRejected DoctorStatus = "rejected"
)

// Slot is one weekly availability window, e.g. monday 09:00-17:00.
type Slot struct {
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

var weekdays = map[string]bool{
	"monday": true, "tuesday": true, "wednesday": true, "thursday": true,
	"friday": true, "saturday": true, "sunday": true,
}

// Validate checks the weekday name and that the window is a non-empty HH:MM range.
func (s Slot) Validate() error {
	if !weekdays[s.Day] {
		return fmt.Errorf("invalid day %q", s.Day)
	}
	start, err := time.Parse("15:04", s.StartTime)
	if err != nil {
		return fmt.Errorf("invalid start time %q", s.StartTime)
	}
	end, err := time.Parse("15:04", s.EndTime)
	if err != nil {
		return fmt.Errorf("invalid end time %q", s.EndTime)
	}
	if !end.After(start) {
		return fmt.Errorf("slot on %s ends before it starts", s.Day)
	}
	return nil
}

type DoctorProfile struct {
	UserID          string       `json:"user_id"`
	FullName        string       `json:"full_name,omitempty"`
	Email           string       `json:"email,omitempty"`
	SpecialtyID     string       `json:"specialty_id"`
	SpecialtyName   string       `json:"specialty_name,omitempty"`
	Bio             string       `json:"bio,omitempty"`
	ExperienceYears int          `json:"experience_years"`
	ConsultationFee float64      `json:"consultation_fee"`
	AvailableSlots  []Slot       `json:"available_slots"`
	Status          DoctorStatus `json:"status"`
	CreatedAt       time.Time    `json:"created_at"`
}

// ProfileUpdate only carries the fields the doctor changed.
type ProfileUpdate struct {
	SpecialtyID     *string  `json:"specialty_id,omitempty"`
	Bio             *string  `json:"bio,omitempty"`
	ExperienceYears *int     `json:"experience_years,omitempty"`
	ConsultationFee *float64 `json:"consultation_fee,omitempty"`
}

type ScheduleUpdate struct {
	AvailableSlots []Slot `json:"available_slots"`
}

// FilterDoctors applies the search page filters: exact specialty and a
// case-insensitive substring match on doctor or specialty name.
func FilterDoctors(list []DoctorProfile, specialtyID, query string) []DoctorProfile {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]DoctorProfile, 0, len(list))
	for _, d := range list {
		if specialtyID != "" && d.SpecialtyID != specialtyID {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(d.FullName), q) &&
			!strings.Contains(strings.ToLower(d.SpecialtyName), q) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// FilterDoctorsByStatus is the admin review filter; empty status keeps all.
func FilterDoctorsByStatus(list []DoctorProfile, status DoctorStatus, query string) []DoctorProfile {
	byStatus := make([]DoctorProfile, 0, len(list))
	for _, d := range list {
		if status == "" || d.Status == status {
			byStatus = append(byStatus, d)
		}
	}
	return FilterDoctors(byStatus, "", query)
}

// FilterUsers matches name or email, case-insensitively.
func FilterUsers(list []User, query string) []User {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]User, 0, len(list))
	for _, u := range list {
		if q == "" ||
			strings.Contains(strings.ToLower(u.FullName), q) ||
			strings.Contains(strings.ToLower(u.Email), q) {
			out = append(out, u)
		}
	}
	return out
}
