package main

import (
	"fmt"

	"github.com/trezcool/edutrack/core"
	"github.com/trezcool/edutrack/core/user"
)

// hashPassword prints the bcrypt hash of `pwd`, the way the seeded administrator expects it.
func (cli *commandLine) hashPassword(pwd, uname, email string, skipPolicy bool) error {
	uname = core.CleanString(uname, true /* lower */)
	email = core.CleanString(email, true /* lower */)

	if !skipPolicy {
		if err := user.CheckPasswordPolicy(pwd, uname, email); err != nil {
			return err
		}
	}

	var usr user.User
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}
	fmt.Fprintln(cli.out, string(usr.PasswordHash))
	return nil
}
