package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/tmugisha/amali/core/submission"
)

type submissionRepository struct {
	db *submissionTable
}

func NewSubmissionRepository(db *DB) submission.Repository {
	return &submissionRepository{db: db.submission}
}

func (repo *submissionRepository) CreateRecord(ctx context.Context, rec submission.Record) (submission.Record, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	rec.ID = uuid.New()
	repo.db.table[rec.ID] = &rec
	return rec, nil
}

func (repo *submissionRepository) QueryRecordsByAssessment(ctx context.Context, assessmentID int) ([]submission.Record, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	recs := make([]submission.Record, 0)
	for _, rec := range repo.db.table {
		if rec.AssessmentID == assessmentID {
			recs = append(recs, *rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].UploadedAt.Before(recs[j].UploadedAt) })
	return recs, nil
}
