package student

import (
	"context"
	"errors"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/tmugisha/amali/core"
)

var (
	// errors
	ErrNotFound     = errors.New("student not found")
	ErrNameMismatch = errors.New("full name does not match this student id")
)

type (
	Repository interface {
		CreateStudent(ctx context.Context, std Student) (Student, error)
		GetStudentByStudentID(ctx context.Context, studentID string) (Student, error)
		QueryAllStudents(ctx context.Context) ([]Student, error)
		UpdateStudent(ctx context.Context, std Student) (Student, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Login returns the student for `studentID`, registering them on first
// access. A second login with the same id must present the same full name.
func (s *Service) Login(ctx context.Context, ns NewStudent) (Student, error) {
	studentID := core.CleanString(ns.StudentID, true)
	fullName := core.CleanString(ns.FullName)

	std, err := s.repo.GetStudentByStudentID(ctx, studentID)
	if err == nil {
		if std.FullName != fullName {
			return Student{}, core.NewValidationError(ErrNameMismatch,
				core.FieldError{Field: "full_name", Error: ErrNameMismatch.Error()})
		}
		return s.SetLastLogin(ctx, std)
	}
	if err != ErrNotFound {
		return Student{}, err
	}

	now := time.Now().UTC()
	std = Student{
		StudentID: studentID,
		FullName:  fullName,
		Role:      RoleStudent,
		CreatedAt: now,
		LastLogin: null.TimeFrom(now),
	}
	if ns.Email != "" {
		std.Email = null.StringFrom(core.CleanString(ns.Email, true))
	}
	return s.repo.CreateStudent(ctx, std)
}

func (s *Service) GetByStudentID(ctx context.Context, studentID string) (Student, error) {
	return s.repo.GetStudentByStudentID(ctx, core.CleanString(studentID, true))
}

// QueryAvailable lists the full names of students who have not submitted
// their final work yet.
func (s *Service) QueryAvailable(ctx context.Context) ([]string, error) {
	all, err := s.repo.QueryAllStudents(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(all))
	for _, std := range all {
		if !std.HasSubmitted {
			names = append(names, std.FullName)
		}
	}
	return names, nil
}

func (s *Service) QueryAll(ctx context.Context) ([]Student, error) {
	return s.repo.QueryAllStudents(ctx)
}

// MarkSubmitted flips the student's final-submission flag.
func (s *Service) MarkSubmitted(ctx context.Context, std Student) (Student, error) {
	std.HasSubmitted = true
	return s.repo.UpdateStudent(ctx, std)
}

func (s *Service) SetLastLogin(ctx context.Context, std Student) (Student, error) {
	std.LastLogin = null.TimeFrom(time.Now().UTC())
	return s.repo.UpdateStudent(ctx, std)
}
