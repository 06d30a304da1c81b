package student

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"github.com/tmugisha/amali/core"
)

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

type Student struct {
	ID           uuid.UUID   `db:"id" json:"id"`
	StudentID    string      `db:"student_id" json:"student_id"`
	FullName     string      `db:"full_name" json:"full_name"`
	Email        null.String `db:"email" json:"email,omitempty"`
	Role         string      `db:"role" json:"role"`
	HasSubmitted bool        `db:"has_submitted" json:"has_submitted"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"` // UTC
	LastLogin    null.Time   `db:"last_login" json:"last_login,omitempty"`
}

// NewStudent is the login/registration payload.
type NewStudent struct {
	StudentID string `json:"student_id" validate:"required,alphanum_"`
	FullName  string `json:"full_name" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
}

func (ns *NewStudent) Validate() error {
	ns.StudentID = core.CleanString(ns.StudentID, true /* lower */)
	ns.FullName = core.CleanString(ns.FullName)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	return core.Validate.Struct(ns)
}
