package main

import (
	"log"
	"os"

	"github.com/tmugisha/amali/core"
	"github.com/tmugisha/amali/core/assessment"
	"github.com/tmugisha/amali/core/staff"
	"github.com/tmugisha/amali/core/student"
	"github.com/tmugisha/amali/storage/database"
	"github.com/tmugisha/amali/storage/database/sqlxrepos"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.LoadConfig()
	core.InitValidators()

	// set up DB
	db, err := database.Open(conf)
	errAndDie(err)
	defer db.Close()
	errAndDie(database.Ping(db))

	// start CLI
	cli := commandLine{
		db:     db.DB,
		conf:   conf,
		stfSvc: staff.NewService(sqlxrepos.NewStaffRepository(db)),
		asmSvc: assessment.NewService(sqlxrepos.NewAssessmentRepository(db)),
		stdSvc: student.NewService(sqlxrepos.NewStudentRepository(db)),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
