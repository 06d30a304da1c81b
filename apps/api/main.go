package main

import (
	"context"
	"fmt"
	"log"
	"os"

	echoapi "github.com/tmugisha/amali/apps/api/echo"
	"github.com/tmugisha/amali/core"
	"github.com/tmugisha/amali/core/assessment"
	"github.com/tmugisha/amali/core/staff"
	"github.com/tmugisha/amali/core/student"
	"github.com/tmugisha/amali/core/submission"
	emailsvc "github.com/tmugisha/amali/services/email"
	logsvc "github.com/tmugisha/amali/services/logger"
	"github.com/tmugisha/amali/storage/database"
	"github.com/tmugisha/amali/storage/database/sqlxrepos"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.LoadConfig()

	// set up logger
	var logger core.Logger
	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	if conf.Debug || conf.TestMode {
		logger = logsvc.NewStdLogger(std)
	} else {
		rollbarLogger := logsvc.NewRollbarLogger(std, conf)
		rollbarLogger.Enable(true)
		logger = rollbarLogger
	}

	// set up DB
	db, err := database.Open(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			logger.Error(fmt.Sprintf("closing database: %v", err), err)
		}
	}()
	if err = database.Migrate(conf); err != nil {
		logger.Fatal(fmt.Sprintf("migrating database: %v", err), err)
	}

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}
	stdSvc := student.NewService(sqlxrepos.NewStudentRepository(db))
	asmSvc := assessment.NewService(sqlxrepos.NewAssessmentRepository(db))
	subSvc := submission.NewService(sqlxrepos.NewSubmissionRepository(db), stdSvc, mailSvc, logger, conf.ArtifactsDir)
	stfSvc := staff.NewService(sqlxrepos.NewStaffRepository(db))

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	core.InitValidators()

	if conf.Debug {
		// a fresh checkout should be usable right away
		if _, err = asmSvc.EnsureSample(context.Background(), conf.GraceMinutes, conf.MaxAccessHours); err != nil {
			logger.Error(fmt.Sprintf("ensuring sample assessment: %v", err), err)
		}
	}

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		&echoapi.Options{
			Addr:          conf.Server.Addr,
			Logger:        logger,
			StudentSvc:    stdSvc,
			AssessmentSvc: asmSvc,
			SubmissionSvc: subSvc,
			StaffSvc:      stfSvc,
		},
	)

	go func() {
		logger.Info(fmt.Sprintf("API listening on %s", conf.Server.Addr))
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		if err = server.Shutdown(ctx); err != nil {
			logger.Fatal(fmt.Sprintf("could not stop server gracefully: %v", err), err)
		}
	}
}
