// Command fakeapi serves an in-memory MediSchedule backend with seeded
// accounts, for running the portal locally without the real API.
package main

import (
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/harentsoaR/medischedule-portal/internal/config"
	"github.com/harentsoaR/medischedule-portal/internal/fakeapi"
	"github.com/harentsoaR/medischedule-portal/internal/logger"
	"github.com/harentsoaR/medischedule-portal/internal/models"
)

const seedPassword = "secret"

func main() {
	_ = godotenv.Load()
	log := logger.New(logger.Config{
		Level:       os.Getenv("LOG_LEVEL"),
		ServiceName: "medischedule-fakeapi",
		Pretty:      os.Getenv("GIN_MODE") != gin.ReleaseMode,
	})

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret"
		log.Warn().Msg("JWT_SECRET is NOT SET, using a development secret")
	}

	srv := fakeapi.New([]byte(secret), log)
	seed(srv, log)

	port := config.ReadInt("FAKEAPI_PORT", 8000)
	log.Info().Int("port", port).Msg("fake backend listening")
	if err := srv.Engine().Run(":" + strconv.Itoa(port)); err != nil {
		log.Fatal().Err(err).Msg("fake backend stopped")
	}
}

func seed(srv *fakeapi.Server, log zerolog.Logger) {
	cardio := srv.AddSpecialty("Cardiology", "Heart and blood vessels")
	srv.AddSpecialty("Dermatology", "Skin, hair and nails")
	srv.AddSpecialty("Pediatrics", "Children's health")

	must := func(u models.User, err error) models.User {
		if err != nil {
			log.Fatal().Err(err).Msg("seed")
		}
		return u
	}

	doctor := must(srv.AddDoctor(models.User{Email: "doctor@medischedule.local", FullName: "Dr. Nguyen Van An"}, seedPassword, models.DoctorProfile{
		SpecialtyID:     cardio.ID,
		Bio:             "Cardiologist",
		ExperienceYears: 12,
		ConsultationFee: 300000,
		Status:          models.DoctorApproved,
		AvailableSlots: []models.Slot{
			{Day: "monday", StartTime: "08:00", EndTime: "12:00"},
			{Day: "wednesday", StartTime: "13:00", EndTime: "17:00"},
		},
	}))
	patient := must(srv.AddUser(models.User{Email: "patient@medischedule.local", FullName: "Tran Thi Lan", Role: models.RolePatient}, seedPassword))
	must(srv.AddUser(models.User{
		Email:    "admin@medischedule.local",
		FullName: "System Admin",
		Role:     models.RoleAdmin,
		AdminPermissions: &models.AdminPermissions{
			CanManageDoctors:      true,
			CanManagePatients:     true,
			CanManageAppointments: true,
			CanViewStats:          true,
			CanManageSpecialties:  true,
			CanCreateAdmins:       true,
		},
	}, seedPassword))
	must(srv.AddUser(models.User{
		Email:            "head@medischedule.local",
		FullName:         "Department Head",
		Role:             models.RoleDepartmentHead,
		AdminPermissions: &models.AdminPermissions{CanManageDoctors: true, CanManagePatients: true},
	}, seedPassword))

	srv.AddAppointment(models.Appointment{
		PatientID:       patient.ID,
		DoctorID:        doctor.ID,
		AppointmentType: models.TypeOnline,
		AppointmentDate: "2026-11-02",
		AppointmentTime: "09:00",
		Symptoms:        "Chest pain after exercise",
	})
	log.Info().Str("password", seedPassword).Msg("seeded demo accounts")
}
