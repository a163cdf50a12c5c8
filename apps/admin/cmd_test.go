package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/prepclass/core/user"
	"github.com/trezcool/prepclass/storage/database/inmem"
	"github.com/trezcool/prepclass/tests"
)

var usrRepo user.Repository

func setup(t *testing.T) *commandLine {
	t.Helper()

	usrRepo = inmemdb.NewUserRepository(inmemdb.Open())
	return &commandLine{
		usrSvc: user.NewService(usrRepo),
	}
}

type cliTest struct {
	name    string
	args    []string // without program name
	pwd     string
	wantErr error
}

func Test_commandLine_addUser(t *testing.T) {
	cli := setup(t)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"adduser"}, wantErr: errHelp},
		{name: "username but no password", args: []string{"adduser", "-username", "mentor1"}, wantErr: errHelp},
		{name: "user added", args: []string{"adduser", "-username", "Mentor1"}, pwd: "password123"},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			return []byte(tt.pwd), nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err == nil {
				// the username was cleaned and the password hashed
				usr, err := usrRepo.GetUserByUsername(context.Background(), "mentor1")
				if err != nil {
					t.Fatalf("GetUserByUsername() failed: %v", err)
				}
				if err := usr.CheckPassword(tt.pwd); err != nil {
					t.Error("password not set")
				}
			} else if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_commandLine_addUser_invalid(t *testing.T) {
	cli := setup(t)

	testutil.CreateUser(t, usrRepo, "mentor1", "password123")

	tests := []cliTest{
		{name: "duplicate username", args: []string{"adduser", "-username", "mentor1"}, pwd: "password123"},
		{name: "bad password", args: []string{"adduser", "-username", "mentor2"}, pwd: "12345678"},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			return []byte(tt.pwd), nil
		}

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err == nil {
				t.Error("cli.run() expected an error")
			}
		})
	}
}

func Test_commandLine_resetPassword(t *testing.T) {
	cli := setup(t)

	usr := testutil.CreateUser(t, usrRepo, "mentor1", "password123")

	tests := []cliTest{
		{name: "no args", args: []string{"resetpassword"}, wantErr: errHelp},
		{name: "username but no password", args: []string{"resetpassword", "-username", "mentor1"}, wantErr: errHelp},
		{name: "user not found", args: []string{"resetpassword", "-username", "nobody"}, pwd: "newpassword1", wantErr: user.ErrNotFound},
		{name: "password reset", args: []string{"resetpassword", "-username", "mentor1"}, pwd: "newpassword1"},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			return []byte(tt.pwd), nil
		}

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err == nil {
				refreshedUsr, err := usrRepo.GetUserByUsername(context.Background(), usr.Username)
				if err != nil {
					t.Fatalf("GetUserByUsername() failed: %v", err)
				}
				if bytes.Equal(refreshedUsr.PasswordHash, usr.PasswordHash) {
					t.Error("failed to update new password")
				}
			} else if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_commandLine_listUsers(t *testing.T) {
	cli := setup(t)

	testutil.CreateUser(t, usrRepo, "mentor2", "password123")
	testutil.CreateUser(t, usrRepo, "mentor1", "password123")

	var out bytes.Buffer
	outWriter = &out

	if err := cli.run([]string{"admin", "listusers"}); err != nil {
		t.Fatalf("cli.run() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 { // header + 2 users
		t.Fatalf("lines = %d; want 3; output:\n%s", len(lines), out.String())
	}
	// sorted by username
	if !strings.HasPrefix(lines[1], "mentor1") || !strings.HasPrefix(lines[2], "mentor2") {
		t.Errorf("unexpected listing:\n%s", out.String())
	}
}

func Test_commandLine_migrate(t *testing.T) {
	cli := setup(t)

	var migrated bool
	migrateFunc = func(db *sqlx.DB) error {
		migrated = true
		return nil
	}

	if err := cli.run([]string{"admin", "migrate"}); err != nil {
		t.Fatalf("cli.run() error = %v", err)
	}
	if !migrated {
		t.Error("migrate was not called")
	}
}
