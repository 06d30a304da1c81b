package main

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/tmugisha/amali/core"
	"github.com/tmugisha/amali/core/submission"
)

func (cli *commandLine) status(assessmentID int) error {
	ident, ok := cli.idp.Current()
	if !ok {
		return errors.New("not logged in")
	}

	asm, err := cli.api.Assessment(context.Background(), assessmentID)
	if err != nil {
		return err
	}

	win, err := cli.windows.GetOrCreate(assessmentID, ident.UserID, time.Now().UTC())
	if err != nil {
		return err
	}

	fmt.Printf("logged in as: %s (%s)\n", ident.DisplayName, ident.UserID)
	fmt.Printf("assessment: %s\n", asm.Name)
	cli.printWindow(win, asm.GraceMinutes)

	if _, err := cli.kv.Get(submission.HasSubmittedKey(assessmentID, ident.UserID)); err == nil {
		fmt.Println("final work: submitted")
	} else if err != core.ErrKeyNotFound {
		return err
	}
	return nil
}
