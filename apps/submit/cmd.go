package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/tmugisha/amali/core"
	"github.com/tmugisha/amali/core/submission"
	"github.com/tmugisha/amali/core/window"
	"github.com/tmugisha/amali/services/apiclient"
	identitysvc "github.com/tmugisha/amali/services/identity"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	conf    *core.Config
	kv      core.KeyValueStore
	api     *apiclient.Client
	idp     *identitysvc.Provider
	windows *window.Store
	logger  core.Logger
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  students - list students who have not submitted yet")
	fmt.Println("  login -id STUDENT_ID -name \"FULL NAME\" [-assessment ID] - sign in; the submission window starts on first access")
	fmt.Println("  status [-assessment ID] - show the submission window countdown")
	fmt.Println("  submit -textprocess FILE.ipynb -classifier FILE.ipynb -embeddings FILE.txt [-assessment ID] - upload all artifacts in order")
	fmt.Println("  logout - sign out")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	loginCmd := flag.NewFlagSet("login", flag.ExitOnError)
	loginID := loginCmd.String("id", "", "Your student id.")
	loginName := loginCmd.String("name", "", "Your full name, exactly as registered.")
	loginAsm := loginCmd.Int("assessment", 1, "The assessment id.")

	statusCmd := flag.NewFlagSet("status", flag.ExitOnError)
	statusAsm := statusCmd.Int("assessment", 1, "The assessment id.")

	submitCmd := flag.NewFlagSet("submit", flag.ExitOnError)
	submitAsm := submitCmd.Int("assessment", 1, "The assessment id.")
	submitFiles := map[submission.Kind]*string{
		submission.KindTextProcess: submitCmd.String("textprocess", "", "Path to the text processing notebook (.ipynb)."),
		submission.KindClassifier:  submitCmd.String("classifier", "", "Path to the classifier notebook (.ipynb)."),
		submission.KindEmbedding:   submitCmd.String("embeddings", "", "Path to the embeddings file (.txt)."),
	}

	switch args[1] {
	case "students":
		return cli.students()
	case "login":
		if err := loginCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *loginID == "" || *loginName == "" {
			loginCmd.Usage()
			return errHelp
		}
		return cli.login(*loginID, *loginName, *loginAsm)
	case "status":
		if err := statusCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.status(*statusAsm)
	case "submit":
		if err := submitCmd.Parse(args[2:]); err != nil {
			return err
		}
		files := make(map[submission.Kind]string, len(submitFiles))
		for kind, path := range submitFiles {
			if *path == "" {
				submitCmd.Usage()
				return errHelp
			}
			files[kind] = *path
		}
		return cli.submit(*submitAsm, files)
	case "logout":
		cli.idp.Logout()
		fmt.Println("signed out")
		return nil
	default:
		cli.printUsage()
		return errHelp
	}
}
