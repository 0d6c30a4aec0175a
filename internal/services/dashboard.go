// Package services composes several backend reads into the summaries the
// dashboards show.
package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/harentsoaR/medischedule-portal/internal/apiclient"
	"github.com/harentsoaR/medischedule-portal/internal/models"
)

// RecentLimit is how many appointments a patient dashboard lists.
const RecentLimit = 3

// Backend is the part of the API client the dashboards read from.
type Backend interface {
	MyAppointments(ctx context.Context) ([]models.Appointment, error)
	Specialties(ctx context.Context) ([]models.Specialty, error)
	Doctor(ctx context.Context, doctorID string) (models.DoctorProfile, error)
	AdminStats(ctx context.Context) (models.Stats, error)
	AdminDoctors(ctx context.Context) ([]models.DoctorProfile, error)
	DepartmentStats(ctx context.Context) (models.Stats, error)
}

type PatientDashboard struct {
	Recent      []models.Appointment `json:"recent_appointments"`
	Upcoming    int                  `json:"upcoming"`
	Total       int                  `json:"total"`
	Specialties []models.Specialty   `json:"specialties"`
}

type DoctorDashboard struct {
	Profile *models.DoctorProfile `json:"profile,omitempty"`
	Today   []models.Appointment  `json:"today"`
	Pending int                   `json:"pending"`
	Total   int                   `json:"total"`
}

type AdminDashboard struct {
	Stats          *models.Stats          `json:"stats,omitempty"`
	PendingDoctors []models.DoctorProfile `json:"pending_doctors"`
	CanManageAdmin bool                   `json:"can_manage_admins"`
}

type DashboardService struct {
	api Backend
	log zerolog.Logger
	now func() time.Time
}

func NewDashboardService(api Backend, log zerolog.Logger) *DashboardService {
	return &DashboardService{api: api, log: log, now: time.Now}
}

// Patient lists the most recent appointments next to the specialties a
// new booking can start from.
func (s *DashboardService) Patient(ctx context.Context) (PatientDashboard, error) {
	var (
		out          PatientDashboard
		appointments []models.Appointment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := s.api.MyAppointments(gctx)
		if err != nil {
			return fmt.Errorf("load appointments: %w", err)
		}
		appointments = list
		return nil
	})
	g.Go(func() error {
		list, err := s.api.Specialties(gctx)
		if err != nil {
			return fmt.Errorf("load specialties: %w", err)
		}
		out.Specialties = list
		return nil
	})
	if err := g.Wait(); err != nil {
		s.log.Warn().Err(err).Msg("patient dashboard")
		return PatientDashboard{}, err
	}

	out.Total = len(appointments)
	for _, a := range appointments {
		if a.Status == models.StatusPending || a.Status == models.StatusConfirmed {
			out.Upcoming++
		}
	}
	n := min(RecentLimit, len(appointments))
	out.Recent = append([]models.Appointment{}, appointments[:n]...)
	return out, nil
}

// Doctor reads the doctor's appointments and profile together. A doctor
// without a profile yet still gets a dashboard.
func (s *DashboardService) Doctor(ctx context.Context, doctorID string) (DoctorDashboard, error) {
	var (
		out          DoctorDashboard
		appointments []models.Appointment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := s.api.MyAppointments(gctx)
		if err != nil {
			return fmt.Errorf("load appointments: %w", err)
		}
		appointments = list
		return nil
	})
	g.Go(func() error {
		profile, err := s.api.Doctor(gctx, doctorID)
		if apiclient.StatusCode(err) == http.StatusNotFound {
			s.log.Debug().Err(err).Str("doctor_id", doctorID).Msg("no doctor profile")
			return nil
		}
		if err != nil {
			return fmt.Errorf("load doctor profile: %w", err)
		}
		out.Profile = &profile
		return nil
	})
	if err := g.Wait(); err != nil {
		s.log.Warn().Err(err).Msg("doctor dashboard")
		return DoctorDashboard{}, err
	}

	today := s.now().Format("2006-01-02")
	out.Today = []models.Appointment{}
	out.Total = len(appointments)
	for _, a := range appointments {
		if a.Status == models.StatusPending {
			out.Pending++
		}
		if a.AppointmentDate == today {
			out.Today = append(out.Today, a)
		}
	}
	return out, nil
}

// Admin shows stats only to holders of can_view_stats and lists doctors
// waiting for review.
func (s *DashboardService) Admin(ctx context.Context, user models.User) (AdminDashboard, error) {
	out := AdminDashboard{
		PendingDoctors: []models.DoctorProfile{},
		CanManageAdmin: user.Can(models.CanCreateAdmins),
	}
	g, gctx := errgroup.WithContext(ctx)
	if user.Can(models.CanViewStats) {
		g.Go(func() error {
			stats, err := s.api.AdminStats(gctx)
			if err != nil {
				return fmt.Errorf("load stats: %w", err)
			}
			out.Stats = &stats
			return nil
		})
	}
	g.Go(func() error {
		doctors, err := s.api.AdminDoctors(gctx)
		if err != nil {
			return fmt.Errorf("load doctors: %w", err)
		}
		out.PendingDoctors = models.FilterDoctorsByStatus(doctors, models.DoctorPending, "")
		return nil
	})
	if err := g.Wait(); err != nil {
		s.log.Warn().Err(err).Msg("admin dashboard")
		return AdminDashboard{}, err
	}
	return out, nil
}

// DepartmentHead returns the department's counters.
func (s *DashboardService) DepartmentHead(ctx context.Context) (models.Stats, error) {
	stats, err := s.api.DepartmentStats(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("department dashboard")
		return models.Stats{}, fmt.Errorf("load department stats: %w", err)
	}
	return stats, nil
}
