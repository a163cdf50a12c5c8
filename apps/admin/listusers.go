package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
)

var outWriter io.Writer = os.Stdout // mockable

// listUsers prints all mentor accounts, one per line.
func (cli *commandLine) listUsers() error {
	users, err := cli.usrSvc.QueryAll(context.Background())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(outWriter, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "USERNAME\tCREATED\tLAST LOGIN")
	for _, usr := range users {
		lastLogin := "never"
		if !usr.LastLogin.IsZero() {
			lastLogin = usr.LastLogin.Format("2006-01-02 15:04")
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", usr.Username, usr.CreatedAt.Format("2006-01-02 15:04"), lastLogin)
	}
	return w.Flush()
}
