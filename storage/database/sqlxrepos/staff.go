package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/tmugisha/amali/core/staff"
)

type staffRepository struct {
	db *sqlx.DB
}

func NewStaffRepository(db *sqlx.DB) staff.Repository {
	return &staffRepository{db: db}
}

func (repo *staffRepository) CreateStaff(ctx context.Context, stf staff.Staff) (staff.Staff, error) {
	err := repo.db.QueryRowxContext(ctx, `
		INSERT INTO staff (username, email, is_admin, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		stf.Username, stf.Email, stf.IsAdmin, stf.PasswordHash, stf.CreatedAt,
	).Scan(&stf.ID)
	return stf, err
}

func (repo *staffRepository) GetStaffByUsername(ctx context.Context, username string) (staff.Staff, error) {
	var stf staff.Staff
	err := repo.db.GetContext(ctx, &stf,
		`SELECT * FROM staff WHERE username = $1`, username)
	if err == sql.ErrNoRows {
		return staff.Staff{}, staff.ErrNotFound
	}
	return stf, err
}

func (repo *staffRepository) UpdateOrCreateStaff(ctx context.Context, stf staff.Staff) (staff.Staff, error) {
	existing, err := repo.GetStaffByUsername(ctx, stf.Username)
	if err == staff.ErrNotFound {
		return repo.CreateStaff(ctx, stf)
	}
	if err != nil {
		return staff.Staff{}, err
	}

	stf.ID = existing.ID
	stf.CreatedAt = existing.CreatedAt
	_, err = repo.db.ExecContext(ctx, `
		UPDATE staff SET email = $1, is_admin = $2, password_hash = $3 WHERE id = $4`,
		stf.Email, stf.IsAdmin, stf.PasswordHash, stf.ID)
	return stf, err
}
