package models

import "testing"

func TestParseRole(t *testing.T) {
	for _, r := range Roles {
		got, ok := ParseRole(string(r))
		if !ok || got != r {
			t.Fatalf("ParseRole(%q) = %q, %v", r, got, ok)
		}
	}
	for _, bad := range []string{"", "Admin", "departmentHead", "client", "doctor "} {
		if _, ok := ParseRole(bad); ok {
			t.Errorf("ParseRole(%q) accepted an unknown role", bad)
		}
	}
}

func TestUserCan(t *testing.T) {
	admin := User{Role: RoleAdmin, AdminPermissions: &AdminPermissions{CanManageDoctors: true}}
	if !admin.Can(CanManageDoctors) {
		t.Error("expected can_manage_doctors to be granted")
	}
	if admin.Can(CanCreateAdmins) {
		t.Error("expected can_create_admins to be denied")
	}
	if admin.Can(Capability("can_do_anything")) {
		t.Error("unknown capability must be denied")
	}

	bare := User{Role: RoleAdmin}
	if bare.Can(CanManageDoctors) {
		t.Error("user without permissions must have no capabilities")
	}
}

func TestSlotValidate(t *testing.T) {
	tests := []struct {
		name    string
		slot    Slot
		wantErr bool
	}{
		{"valid", Slot{Day: "monday", StartTime: "09:00", EndTime: "17:00"}, false},
		{"unknown day", Slot{Day: "Monday", StartTime: "09:00", EndTime: "17:00"}, true},
		{"bad start", Slot{Day: "friday", StartTime: "9am", EndTime: "17:00"}, true},
		{"bad end", Slot{Day: "friday", StartTime: "09:00", EndTime: "25:00"}, true},
		{"empty window", Slot{Day: "sunday", StartTime: "10:00", EndTime: "10:00"}, true},
		{"reversed", Slot{Day: "sunday", StartTime: "12:00", EndTime: "08:00"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.slot.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFilterDoctors(t *testing.T) {
	list := []DoctorProfile{
		{UserID: "1", FullName: "Nguyen Van A", SpecialtyID: "s1", SpecialtyName: "Cardiology"},
		{UserID: "2", FullName: "Tran Thi B", SpecialtyID: "s2", SpecialtyName: "Pediatrics"},
		{UserID: "3", FullName: "Le Van C", SpecialtyID: "s1", SpecialtyName: "Cardiology"},
	}

	if got := FilterDoctors(list, "s1", ""); len(got) != 2 {
		t.Fatalf("specialty filter: expected 2, got %d", len(got))
	}
	if got := FilterDoctors(list, "", "pedia"); len(got) != 1 || got[0].UserID != "2" {
		t.Fatalf("query on specialty name: got %+v", got)
	}
	if got := FilterDoctors(list, "s1", "le van"); len(got) != 1 || got[0].UserID != "3" {
		t.Fatalf("combined filter: got %+v", got)
	}
}

func TestFilterAppointments(t *testing.T) {
	list := []Appointment{
		{ID: "a", Status: StatusPending},
		{ID: "b", Status: StatusConfirmed},
		{ID: "c", Status: StatusPending},
	}
	if got := FilterAppointments(list, StatusPending); len(got) != 2 {
		t.Fatalf("expected 2 pending, got %d", len(got))
	}
	if got := FilterAppointments(list, ""); len(got) != 3 {
		t.Fatalf("expected all 3, got %d", len(got))
	}
}
