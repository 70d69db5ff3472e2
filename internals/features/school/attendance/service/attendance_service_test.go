package service

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"attendly_backend/internals/features/school/attendance/model"
)

func TestUpsertInputValidate(t *testing.T) {
	sid, stid := uuid.New(), uuid.New()
	now := time.Now()

	cases := []struct {
		name    string
		in      UpsertAttendanceInput
		wantErr bool
	}{
		{"ok present", UpsertAttendanceInput{SessionID: sid, StudentID: stid, Status: model.StatusPresent}, false},
		{"ok excused with times", UpsertAttendanceInput{SessionID: sid, StudentID: stid, Status: model.StatusExcused, TimeIn: &now, TimeOut: &now}, false},
		{"missing session", UpsertAttendanceInput{StudentID: stid, Status: model.StatusPresent}, true},
		{"missing student", UpsertAttendanceInput{SessionID: sid, Status: model.StatusPresent}, true},
		{"bad status", UpsertAttendanceInput{SessionID: sid, StudentID: stid, Status: "here"}, true},
		{"empty status", UpsertAttendanceInput{SessionID: sid, StudentID: stid}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.in.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() err = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestUpsertAlwaysRestampsUpdatedAt(t *testing.T) {
	// updated_at must be in the overwrite set so repeat marks with the same
	// status still move the timestamp
	found := false
	for _, col := range upsertAssignments() {
		if col == "attendance_updated_at" {
			found = true
		}
	}
	if !found {
		t.Fatal("attendance_updated_at missing from upsert assignments")
	}
}

func TestStatusSet(t *testing.T) {
	for _, s := range []string{model.StatusPresent, model.StatusAbsent, model.StatusLate, model.StatusExcused} {
		if !model.IsValidStatus(s) {
			t.Errorf("status %q should be valid", s)
		}
	}
	for _, s := range []string{"", "Present", "PRESENT", "unknown"} {
		if model.IsValidStatus(s) {
			t.Errorf("status %q should be invalid", s)
		}
	}
}
