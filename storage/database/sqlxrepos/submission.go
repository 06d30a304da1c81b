package sqlxrepos

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tmugisha/amali/core/submission"
)

type submissionRepository struct {
	db *sqlx.DB
}

func NewSubmissionRepository(db *sqlx.DB) submission.Repository {
	return &submissionRepository{db: db}
}

func (repo *submissionRepository) CreateRecord(ctx context.Context, rec submission.Record) (submission.Record, error) {
	rec.ID = uuid.New()
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO submissions (id, student_id, assessment_id, file_type, original_filename, stored_filename, path, size_bytes, uploaded_at)
		VALUES (:id, :student_id, :assessment_id, :file_type, :original_filename, :stored_filename, :path, :size_bytes, :uploaded_at)`,
		rec,
	)
	return rec, err
}

func (repo *submissionRepository) QueryRecordsByAssessment(ctx context.Context, assessmentID int) ([]submission.Record, error) {
	recs := make([]submission.Record, 0)
	err := repo.db.SelectContext(ctx, &recs,
		`SELECT * FROM submissions WHERE assessment_id = $1 ORDER BY uploaded_at`, assessmentID)
	return recs, err
}
