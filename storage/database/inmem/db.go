package inmemdb

import (
	"sync"

	"github.com/google/uuid"

	"github.com/tmugisha/amali/core/assessment"
	"github.com/tmugisha/amali/core/staff"
	"github.com/tmugisha/amali/core/student"
	"github.com/tmugisha/amali/core/submission"
)

type (
	DB struct {
		student    *studentTable
		assessment *assessmentTable
		submission *submissionTable
		staff      *staffTable
	}

	studentTable struct {
		mutex sync.RWMutex
		table map[uuid.UUID]*student.Student
	}

	assessmentTable struct {
		mutex sync.RWMutex
		table map[int]*assessment.Assessment
		seq   int
	}

	submissionTable struct {
		mutex sync.RWMutex
		table map[uuid.UUID]*submission.Record
	}

	staffTable struct {
		mutex sync.RWMutex
		table map[int]*staff.Staff
		seq   int
	}
)

func Open() (*DB, error) {
	db := &DB{
		student:    &studentTable{table: make(map[uuid.UUID]*student.Student)},
		assessment: &assessmentTable{table: make(map[int]*assessment.Assessment)},
		submission: &submissionTable{table: make(map[uuid.UUID]*submission.Record)},
		staff:      &staffTable{table: make(map[int]*staff.Staff)},
	}
	return db, nil
}
