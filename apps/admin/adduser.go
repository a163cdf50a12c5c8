package main

import (
	"context"

	"github.com/trezcool/prepclass/core"
	"github.com/trezcool/prepclass/core/user"
)

// addUser creates a mentor account; the same validation as the API's
// register endpoint applies.
func (cli *commandLine) addUser(uname, pwd string) error {
	nu := user.NewUser{
		Username:        core.CleanString(uname, true /* lower */),
		Password:        pwd,
		PasswordConfirm: pwd,
	}
	ctx := context.Background()
	if err := nu.Validate(ctx, cli.usrSvc); err != nil {
		return err
	}
	_, err := cli.usrSvc.Create(ctx, nu)
	return err
}
