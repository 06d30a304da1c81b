package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/tmugisha/amali/core/submission"
	"github.com/tmugisha/amali/core/window"
)

// submit uploads the three artifacts strictly in order, under the live
// countdown: if the hard cutoff passes mid-run the session is torn down and
// any in-flight upload resolution becomes a no-op.
func (cli *commandLine) submit(assessmentID int, files map[submission.Kind]string) error {
	ident, ok := cli.idp.Current()
	if !ok {
		return errors.New("not logged in")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cli.idp.OnLogout(cancel)

	asm, err := cli.api.Assessment(ctx, assessmentID)
	if err != nil {
		return err
	}
	win, err := cli.windows.GetOrCreate(assessmentID, ident.UserID, time.Now().UTC())
	if err != nil {
		return err
	}
	if phase, _ := window.Evaluate(time.Now().UTC(), win.End, asm.GraceMinutes); phase == window.Expired {
		return errors.New("the submission window has closed")
	}

	countdown := window.NewCountdown(win.End, asm.GraceMinutes, func() {
		fmt.Println("\ntime is up, signing out")
		cli.idp.Logout()
	})
	countdown.Start()
	defer countdown.Stop()

	orch := submission.NewOrchestrator(assessmentID, cli.idp, cli.api, cli.kv, cli.logger)
	for kind, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "reading %s file", kind)
		}
		if err := orch.SelectFile(kind, submission.File{Name: filepath.Base(path), Data: data}); err != nil {
			return err
		}
	}

	err = orch.SubmitAll(ctx)

	for _, slot := range orch.Slots() {
		line := fmt.Sprintf("  %-12s %s", slot.Kind, slot.Status)
		if slot.Message != "" {
			line += " - " + slot.Message
		}
		fmt.Println(line)
	}

	switch {
	case err == nil:
		fmt.Println("all artifacts submitted, you will be signed out shortly")
		<-ctx.Done() // scheduled logout
		return nil
	case submission.IsAlreadySubmitted(err):
		fmt.Println("your final work was already submitted, signing out")
		<-ctx.Done() // scheduled logout
		return nil
	case ctx.Err() != nil:
		// the session was torn down mid-upload
		return errors.New("the submission window closed during upload")
	default:
		return err
	}
}
