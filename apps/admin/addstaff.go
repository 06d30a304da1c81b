package main

import (
	"context"

	"github.com/tmugisha/amali/core/staff"
)

// addStaff updates or creates a staff account.
func (cli *commandLine) addStaff(uname, email, pwd string, isAdmin bool) error {
	_, err := cli.stfSvc.Create(context.Background(), staff.NewStaff{
		Username: uname,
		Email:    email,
		Password: pwd,
		IsAdmin:  isAdmin,
	})
	return err
}
