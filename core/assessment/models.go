package assessment

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/tmugisha/amali/core"
)

// Assessment is the teacher-configured practical work. StartTime/EndTime
// bound the whole session; each student additionally gets a personal
// 4-hour access window anchored at first access (core/window), which
// overrides EndTime for display and expiry once created.
type Assessment struct {
	ID             int         `db:"id" json:"id"`
	Name           string      `db:"name" json:"name"`
	Description    null.String `db:"description" json:"description,omitempty"`
	StartTime      time.Time   `db:"start_time" json:"start_time"`
	EndTime        time.Time   `db:"end_time" json:"end_time"`
	GraceMinutes   int         `db:"grace_minutes" json:"grace_minutes"`
	MaxAccessHours int         `db:"max_access_hours" json:"max_access_hours"`
	CreatedAt      time.Time   `db:"created_at" json:"created_at"` // UTC
}

type NewAssessment struct {
	Name           string    `json:"name" validate:"required"`
	Description    string    `json:"description"`
	StartTime      time.Time `json:"start_time" validate:"required"`
	EndTime        time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
	GraceMinutes   int       `json:"grace_minutes" validate:"min=0"`
	MaxAccessHours int       `json:"max_access_hours" validate:"min=1"`
}

func (na *NewAssessment) Validate() error {
	na.Name = core.CleanString(na.Name)
	na.Description = core.CleanString(na.Description)
	return core.Validate.Struct(na)
}
