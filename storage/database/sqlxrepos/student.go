package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tmugisha/amali/core/student"
)

type studentRepository struct {
	db *sqlx.DB
}

func NewStudentRepository(db *sqlx.DB) student.Repository {
	return &studentRepository{db: db}
}

func (repo *studentRepository) CreateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	std.ID = uuid.New()
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO students (id, student_id, full_name, email, role, has_submitted, created_at, last_login)
		VALUES (:id, :student_id, :full_name, :email, :role, :has_submitted, :created_at, :last_login)`,
		std,
	)
	return std, err
}

func (repo *studentRepository) GetStudentByStudentID(ctx context.Context, studentID string) (student.Student, error) {
	var std student.Student
	err := repo.db.GetContext(ctx, &std,
		`SELECT * FROM students WHERE student_id = $1`, studentID)
	if err == sql.ErrNoRows {
		return student.Student{}, student.ErrNotFound
	}
	return std, err
}

func (repo *studentRepository) QueryAllStudents(ctx context.Context) ([]student.Student, error) {
	students := make([]student.Student, 0)
	err := repo.db.SelectContext(ctx, &students,
		`SELECT * FROM students ORDER BY student_id`)
	return students, err
}

func (repo *studentRepository) UpdateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE students
		SET full_name = :full_name, email = :email, role = :role,
		    has_submitted = :has_submitted, last_login = :last_login
		WHERE id = :id`,
		std,
	)
	if err != nil {
		return student.Student{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return student.Student{}, student.ErrNotFound
	}
	return std, nil
}
