package inmemdb

import (
	"context"

	"github.com/tmugisha/amali/core/staff"
)

type staffRepository struct {
	db *staffTable
}

func NewStaffRepository(db *DB) staff.Repository {
	return &staffRepository{db: db.staff}
}

func (repo *staffRepository) CreateStaff(ctx context.Context, stf staff.Staff) (staff.Staff, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.seq++
	stf.ID = repo.db.seq
	repo.db.table[stf.ID] = &stf
	return stf, nil
}

func (repo *staffRepository) GetStaffByUsername(ctx context.Context, username string) (staff.Staff, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, stf := range repo.db.table {
		if stf.Username == username {
			return *stf, nil
		}
	}
	return staff.Staff{}, staff.ErrNotFound
}

func (repo *staffRepository) UpdateOrCreateStaff(ctx context.Context, stf staff.Staff) (staff.Staff, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for id, existing := range repo.db.table {
		if existing.Username == stf.Username {
			stf.ID = id
			stf.CreatedAt = existing.CreatedAt
			repo.db.table[id] = &stf
			return stf, nil
		}
	}
	repo.db.seq++
	stf.ID = repo.db.seq
	repo.db.table[stf.ID] = &stf
	return stf, nil
}
