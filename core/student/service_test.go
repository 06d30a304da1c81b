package student_test

import (
	"context"
	"testing"

	"github.com/tmugisha/amali/core"
	"github.com/tmugisha/amali/core/student"
	inmemdb "github.com/tmugisha/amali/storage/database/inmem"
)

func setup(t *testing.T) *student.Service {
	t.Helper()
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	return student.NewService(inmemdb.NewStudentRepository(db))
}

func TestLoginRegistersOnFirstAccess(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	std, err := svc.Login(ctx, student.NewStudent{StudentID: " S42 ", FullName: "Ada Student", Email: "ada@example.com"})
	if err != nil {
		t.Fatalf("Login() failed: %v", err)
	}
	if std.StudentID != "s42" {
		t.Errorf("student id = %q; want cleaned lowered %q", std.StudentID, "s42")
	}
	if !std.Email.Valid || std.Email.String != "ada@example.com" {
		t.Errorf("email = %v", std.Email)
	}
	if std.Role != student.RoleStudent {
		t.Errorf("role = %q", std.Role)
	}
}

func TestLoginIsIdempotent(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	first, err := svc.Login(ctx, student.NewStudent{StudentID: "s42", FullName: "Ada Student"})
	if err != nil {
		t.Fatalf("Login() failed: %v", err)
	}
	again, err := svc.Login(ctx, student.NewStudent{StudentID: "s42", FullName: "Ada Student"})
	if err != nil {
		t.Fatalf("Login() failed: %v", err)
	}
	if again.ID != first.ID {
		t.Errorf("second login created a new student: %v != %v", again.ID, first.ID)
	}
}

func TestLoginRejectsNameMismatch(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	if _, err := svc.Login(ctx, student.NewStudent{StudentID: "s42", FullName: "Ada Student"}); err != nil {
		t.Fatalf("Login() failed: %v", err)
	}
	_, err := svc.Login(ctx, student.NewStudent{StudentID: "s42", FullName: "Someone Else"})
	if !core.IsValidationError(err) {
		t.Errorf("error = %v; want validation error", err)
	}
}

func TestQueryAvailableExcludesSubmitted(t *testing.T) {
	svc := setup(t)
	ctx := context.Background()

	ada, _ := svc.Login(ctx, student.NewStudent{StudentID: "s1", FullName: "Ada Student"})
	_, _ = svc.Login(ctx, student.NewStudent{StudentID: "s2", FullName: "Grace Student"})

	if _, err := svc.MarkSubmitted(ctx, ada); err != nil {
		t.Fatalf("MarkSubmitted() failed: %v", err)
	}

	names, err := svc.QueryAvailable(ctx)
	if err != nil {
		t.Fatalf("QueryAvailable() failed: %v", err)
	}
	if len(names) != 1 || names[0] != "Grace Student" {
		t.Errorf("available = %v; want [Grace Student]", names)
	}
}
