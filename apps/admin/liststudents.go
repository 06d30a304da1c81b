package main

import (
	"context"
	"fmt"
)

// listStudents prints the roster. By default only students who can still
// submit are shown; -all includes those who already handed in their final
// work.
func (cli *commandLine) listStudents(all bool) error {
	students, err := cli.stdSvc.QueryAll(context.Background())
	if err != nil {
		return err
	}
	for _, std := range students {
		if std.HasSubmitted && !all {
			continue
		}
		submitted := " "
		if std.HasSubmitted {
			submitted = "x"
		}
		fmt.Printf("[%s] %-12s %s\n", submitted, std.StudentID, std.FullName)
	}
	return nil
}
