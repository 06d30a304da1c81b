package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/tmugisha/amali/core"
	"github.com/tmugisha/amali/core/assessment"
	"github.com/tmugisha/amali/core/staff"
	"github.com/tmugisha/amali/core/student"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db     *sql.DB
	conf   *core.Config
	stfSvc *staff.Service
	asmSvc *assessment.Service
	stdSvc *student.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [args] - run a migration command (up, down, status, ...)")
	fmt.Println("  addstaff -username USERNAME -email EMAIL [-admin] - add or update a staff account; the password is prompted next")
	fmt.Println("  addassessment -name NAME -start RFC3339 -end RFC3339 [-description TEXT] [-grace MINUTES] [-hours HOURS] - create an assessment")
	fmt.Println("  liststudents [-all] - list registered students (only those who have not submitted, unless -all)")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addStaffCmd := flag.NewFlagSet("addstaff", flag.ExitOnError)
	addStaffUname := addStaffCmd.String("username", "", "The staff username. The password will be prompted next.")
	addStaffEmail := addStaffCmd.String("email", "", "The staff email address.")
	addStaffAdmin := addStaffCmd.Bool("admin", false, "Grant admin rights (assessment creation).")

	addAsmCmd := flag.NewFlagSet("addassessment", flag.ExitOnError)
	addAsmName := addAsmCmd.String("name", "", "The assessment name.")
	addAsmDesc := addAsmCmd.String("description", "", "An optional description.")
	addAsmStart := addAsmCmd.String("start", "", "Session start time (RFC3339).")
	addAsmEnd := addAsmCmd.String("end", "", "Session end time (RFC3339).")
	addAsmGrace := addAsmCmd.Int("grace", cli.conf.GraceMinutes, "Grace period in minutes after a student's window expires.")
	addAsmHours := addAsmCmd.Int("hours", cli.conf.MaxAccessHours, "Per-student access window in hours.")

	listStdCmd := flag.NewFlagSet("liststudents", flag.ExitOnError)
	listStdAll := listStdCmd.Bool("all", false, "Include students who already submitted.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "addstaff":
		if err := addStaffCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addStaffUname == "" || *addStaffEmail == "" {
			addStaffCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			addStaffCmd.Usage()
			return errHelp
		}
		return cli.addStaff(*addStaffUname, *addStaffEmail, string(pwd), *addStaffAdmin)
	case "addassessment":
		if err := addAsmCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addAsmName == "" || *addAsmStart == "" || *addAsmEnd == "" {
			addAsmCmd.Usage()
			return errHelp
		}
		return cli.addAssessment(*addAsmName, *addAsmDesc, *addAsmStart, *addAsmEnd, *addAsmGrace, *addAsmHours)
	case "liststudents":
		if err := listStdCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.listStudents(*listStdAll)
	default:
		cli.printUsage()
		return errHelp
	}
}
