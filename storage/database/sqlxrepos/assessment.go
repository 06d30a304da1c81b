package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/tmugisha/amali/core/assessment"
)

type assessmentRepository struct {
	db *sqlx.DB
}

func NewAssessmentRepository(db *sqlx.DB) assessment.Repository {
	return &assessmentRepository{db: db}
}

func (repo *assessmentRepository) CreateAssessment(ctx context.Context, asm assessment.Assessment) (assessment.Assessment, error) {
	err := repo.db.QueryRowxContext(ctx, `
		INSERT INTO assessments (name, description, start_time, end_time, grace_minutes, max_access_hours, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		asm.Name, asm.Description, asm.StartTime, asm.EndTime, asm.GraceMinutes, asm.MaxAccessHours, asm.CreatedAt,
	).Scan(&asm.ID)
	return asm, err
}

func (repo *assessmentRepository) GetAssessmentByID(ctx context.Context, id int) (assessment.Assessment, error) {
	var asm assessment.Assessment
	err := repo.db.GetContext(ctx, &asm,
		`SELECT * FROM assessments WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return assessment.Assessment{}, assessment.ErrNotFound
	}
	return asm, err
}

func (repo *assessmentRepository) QueryAllAssessments(ctx context.Context) ([]assessment.Assessment, error) {
	all := make([]assessment.Assessment, 0)
	err := repo.db.SelectContext(ctx, &all,
		`SELECT * FROM assessments ORDER BY id`)
	return all, err
}
