package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/tmugisha/amali/core/assessment"
	"github.com/tmugisha/amali/core/staff"
	"github.com/tmugisha/amali/core/student"
)

func CreateStudent(
	t *testing.T,
	repo student.Repository,
	studentID, fullName, email string,
	hasSubmitted bool,
) student.Student {
	t.Helper()

	now := time.Now().UTC()
	std := student.Student{
		StudentID:    studentID,
		FullName:     fullName,
		Role:         student.RoleStudent,
		HasSubmitted: hasSubmitted,
		CreatedAt:    now,
		LastLogin:    null.TimeFrom(now),
	}
	if email != "" {
		std.Email = null.StringFrom(email)
	}
	std, err := repo.CreateStudent(context.Background(), std)
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return std
}

func CreateAssessment(
	t *testing.T,
	repo assessment.Repository,
	name string,
	start, end time.Time,
	graceMinutes, maxAccessHours int,
) assessment.Assessment {
	t.Helper()

	ass, err := repo.CreateAssessment(context.Background(), assessment.Assessment{
		Name:           name,
		StartTime:      start,
		EndTime:        end,
		GraceMinutes:   graceMinutes,
		MaxAccessHours: maxAccessHours,
		CreatedAt:      time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateAssessment() failed: %v", err)
	}
	return ass
}

func CreateStaff(
	t *testing.T,
	repo staff.Repository,
	uname, email, pwd string,
	isAdmin bool,
) staff.Staff {
	t.Helper()

	stf := staff.Staff{
		Username:  uname,
		Email:     email,
		IsAdmin:   isAdmin,
		CreatedAt: time.Now().UTC(),
	}
	if pwd != "" {
		if err := stf.SetPassword(pwd); err != nil {
			t.Fatalf("CreateStaff() failed: %v", err)
		}
	}
	stf, err := repo.CreateStaff(context.Background(), stf)
	if err != nil {
		t.Fatalf("CreateStaff() failed: %v", err)
	}
	return stf
}
