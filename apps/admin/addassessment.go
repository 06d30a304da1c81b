package main

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/tmugisha/amali/core/assessment"
)

func (cli *commandLine) addAssessment(name, description, start, end string, graceMinutes, maxAccessHours int) error {
	startTime, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return errors.Wrap(err, "parsing start time")
	}
	endTime, err := time.Parse(time.RFC3339, end)
	if err != nil {
		return errors.Wrap(err, "parsing end time")
	}

	na := assessment.NewAssessment{
		Name:           name,
		Description:    description,
		StartTime:      startTime,
		EndTime:        endTime,
		GraceMinutes:   graceMinutes,
		MaxAccessHours: maxAccessHours,
	}
	if err := na.Validate(); err != nil {
		return err
	}

	asm, err := cli.asmSvc.Create(context.Background(), na)
	if err != nil {
		return err
	}
	logger.Printf("created assessment %d: %s", asm.ID, asm.Name)
	return nil
}
