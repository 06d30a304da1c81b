package inmemdb

import (
	"context"
	"sort"

	"github.com/tmugisha/amali/core/assessment"
)

type assessmentRepository struct {
	db *assessmentTable
}

func NewAssessmentRepository(db *DB) assessment.Repository {
	return &assessmentRepository{db: db.assessment}
}

func (repo *assessmentRepository) CreateAssessment(ctx context.Context, asm assessment.Assessment) (assessment.Assessment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.seq++
	asm.ID = repo.db.seq
	repo.db.table[asm.ID] = &asm
	return asm, nil
}

func (repo *assessmentRepository) GetAssessmentByID(ctx context.Context, id int) (assessment.Assessment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if asm, ok := repo.db.table[id]; ok {
		return *asm, nil
	}
	return assessment.Assessment{}, assessment.ErrNotFound
}

func (repo *assessmentRepository) QueryAllAssessments(ctx context.Context) ([]assessment.Assessment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	all := make([]assessment.Assessment, 0, len(repo.db.table))
	for _, asm := range repo.db.table {
		all = append(all, *asm)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}
