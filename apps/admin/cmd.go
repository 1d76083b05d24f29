package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"

	"golang.org/x/term"

	"github.com/trezcool/edutrack/core"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf *core.Config
	out  io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  hashpassword [-username USERNAME] [-email EMAIL] [-skip-policy] - hash a password for <ENV>_SEED_ADMINPASSWORDHASH")
	fmt.Fprintln(cli.out, "  checkcatalog [-file PATH] - validate a standards catalog and count its standards per subject")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	hashPasswordCmd := flag.NewFlagSet("hashpassword", flag.ContinueOnError)
	hashPasswordCmd.SetOutput(cli.out)
	hashPasswordUname := hashPasswordCmd.String("username", cli.conf.Seed.AdminUsername, "The username the password is checked against. The password will be prompted next.")
	hashPasswordEmail := hashPasswordCmd.String("email", cli.conf.Seed.AdminEmail, "The email the password is checked against.")
	hashPasswordSkip := hashPasswordCmd.Bool("skip-policy", false, "Do not enforce the password policy.")

	checkCatalogCmd := flag.NewFlagSet("checkcatalog", flag.ContinueOnError)
	checkCatalogCmd.SetOutput(cli.out)
	checkCatalogFile := checkCatalogCmd.String("file", cli.conf.Standards.CatalogFile, "The TOML catalog to check. Defaults to the embedded catalog.")

	switch args[1] {
	case "hashpassword":
		if err := hashPasswordCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		fmt.Fprint(cli.out, "Enter password:")
		pwd, err := readPasswordFunc(int(syscall.Stdin))
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			hashPasswordCmd.Usage()
			return errHelp
		}
		return cli.hashPassword(string(pwd), *hashPasswordUname, *hashPasswordEmail, *hashPasswordSkip)
	case "checkcatalog":
		if err := checkCatalogCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		return cli.checkCatalog(*checkCatalogFile)
	default:
		cli.printUsage()
		return errHelp
	}
}
