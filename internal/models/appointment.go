package models

import "time"

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type AppointmentType string

const (
	TypeInPerson AppointmentType = "in_person"
	TypeOnline   AppointmentType = "online"
)

func (t AppointmentType) Valid() bool {
	return t == TypeInPerson || t == TypeOnline
}

type Appointment struct {
	ID              string            `json:"id"`
	PatientID       string            `json:"patient_id"`
	PatientName     string            `json:"patient_name,omitempty"`
	DoctorID        string            `json:"doctor_id"`
	DoctorName      string            `json:"doctor_name,omitempty"`
	AppointmentType AppointmentType   `json:"appointment_type"`
	AppointmentDate string            `json:"appointment_date"` // YYYY-MM-DD
	AppointmentTime string            `json:"appointment_time"` // HH:MM
	Symptoms        string            `json:"symptoms,omitempty"`
	Status          AppointmentStatus `json:"status"`
	CreatedAt       time.Time         `json:"created_at"`
}

type AppointmentRequest struct {
	DoctorID        string          `json:"doctor_id"`
	AppointmentType AppointmentType `json:"appointment_type"`
	AppointmentDate string          `json:"appointment_date"`
	AppointmentTime string          `json:"appointment_time"`
	Symptoms        string          `json:"symptoms,omitempty"`
}

type StatusUpdate struct {
	Status AppointmentStatus `json:"status"`
}

// FilterAppointments keeps appointments with the given status; an empty
// status keeps everything.
func FilterAppointments(list []Appointment, status AppointmentStatus) []Appointment {
	out := make([]Appointment, 0, len(list))
	for _, a := range list {
		if status == "" || a.Status == status {
			out = append(out, a)
		}
	}
	return out
}

// Stats holds the aggregate counters shown on the statistics page.
type Stats struct {
	TotalPatients         int `json:"total_patients"`
	TotalDoctors          int `json:"total_doctors"`
	TotalAppointments     int `json:"total_appointments"`
	PendingAppointments   int `json:"pending_appointments"`
	ConfirmedAppointments int `json:"confirmed_appointments"`
	CompletedAppointments int `json:"completed_appointments"`
	CancelledAppointments int `json:"cancelled_appointments"`
	OnlineConsultations   int `json:"online_consultations"`
	InPersonConsultations int `json:"in_person_consultations"`
	PendingDoctors        int `json:"pending_doctors"`
	ApprovedDoctors       int `json:"approved_doctors"`
}
