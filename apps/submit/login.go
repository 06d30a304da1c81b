package main

import (
	"context"
	"fmt"
	"time"

	"github.com/tmugisha/amali/core/submission"
	"github.com/tmugisha/amali/core/window"
)

func (cli *commandLine) students() error {
	names, err := cli.api.Students(context.Background())
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println("no students left to submit")
		return nil
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

// login signs the student in and anchors their submission window: the first
// successful login fixes start/end; later logins reuse the stored window.
func (cli *commandLine) login(studentID, fullName string, assessmentID int) error {
	ctx := context.Background()

	std, err := cli.api.Login(ctx, studentID, fullName)
	if err != nil {
		return err
	}
	if err := cli.idp.Login(submission.Identity{UserID: std.StudentID, DisplayName: std.FullName}); err != nil {
		return err
	}

	win, err := cli.windows.GetOrCreate(assessmentID, std.StudentID, time.Now().UTC())
	if err != nil {
		return err
	}

	asm, err := cli.api.Assessment(ctx, assessmentID)
	if err != nil {
		return err
	}

	fmt.Printf("welcome, %s\n", std.FullName)
	fmt.Printf("assessment: %s\n", asm.Name)
	cli.printWindow(win, asm.GraceMinutes)
	return nil
}

func (cli *commandLine) printWindow(win window.Window, graceMinutes int) {
	phase, remaining := window.Evaluate(time.Now().UTC(), win.End, graceMinutes)
	switch phase {
	case window.Expired:
		fmt.Printf("submission window: %s\n", window.ClosedLabel)
	case window.GracePeriod:
		fmt.Printf("grace period: %s left\n", window.FormatRemaining(remaining))
	default:
		fmt.Printf("time remaining: %s (until %s)\n", window.FormatRemaining(remaining), win.End.Format(time.RFC3339))
	}
}
