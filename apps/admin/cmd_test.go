package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/devanshdeveloper/edu-manage-sub000/core"
	"github.com/devanshdeveloper/edu-manage-sub000/core/school"
	"github.com/devanshdeveloper/edu-manage-sub000/core/table"
	inmemdb "github.com/devanshdeveloper/edu-manage-sub000/storage/database/inmem"
)

const greenValley = "1055d967-72b7-50a9-9959-d1be67705d86"

func setup(t *testing.T) (*commandLine, *bytes.Buffer) {
	conf := core.NewTestConfig()
	db, err := inmemdb.Open(conf)
	if err != nil {
		t.Fatalf("inmemdb.Open(): %v", err)
	}
	pages, err := school.NewPages(db.Stores(), table.Defaults{PageSizes: []int{5, 10, 15}, PageSize: 10})
	if err != nil {
		t.Fatalf("school.NewPages(): %v", err)
	}

	var out bytes.Buffer
	isTerminalFunc = func() bool { return false }
	return &commandLine{pages: pages, out: &out}, &out
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	wantOut    string
}

func Test_commandLine_list(t *testing.T) {
	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no resource", args: []string{"list"}, wantErr: errHelp},
		{
			name: "unknown resource", args: []string{"list", "-resource", "lol"},
			wantErrStr: `unknown resource "lol"; must be one of institutions, subscriptions, teachers, students, classrooms, attendance, fees, materials, tests`,
		},
		{
			name: "invalid filter", args: []string{"list", "-resource", "fees", "-filter", "lol"},
			wantErrStr: `invalid value "lol" for flag -filter: filter "lol" must be of form FIELD=V1,V2`,
		},
		{
			name: "unknown column", args: []string{"list", "-resource", "fees", "-columns", "studnt"},
			wantErrStr: `unknown column "studnt"; did you mean "student"?`,
		},
		{
			name: "invalid page size", args: []string{"list", "-resource", "fees", "-size", "7"},
			wantErrStr: "invalid page size 7; must be one of 5, 10, 15",
		},
		{
			name: "invalid page", args: []string{"list", "-resource", "fees", "-page", "0"},
			wantErrStr: "page 0 must be positive",
		},
		{
			name: "many orderings", args: []string{"list", "-resource", "fees", "-ordering", "student,-amount"},
			wantErrStr: "only one ordering field is supported",
		},
		{
			name: "filtered page",
			args: []string{
				"list", "-resource", "fees", "-filter", "status=overdue", "-filter", "institution_id=" + greenValley,
				"-columns", "student,status", "-ordering", "student", "-size", "5",
			},
			wantOut: "Student\tStatus\n" +
				"Amani Njoroge\toverdue\n" +
				"Brenda Achieng\toverdue\n" +
				"Collins Kiprop\toverdue\n" +
				"Eric Omondi\toverdue\n" +
				"Faith Chebet\toverdue\n",
		},
		{
			name: "page past the end is clamped",
			args: []string{
				"list", "-resource", "fees", "-filter", "status=overdue", "-filter", "institution_id=" + greenValley,
				"-columns", "student", "-ordering", "-student", "-size", "5", "-page", "2",
			},
			wantOut: "Student\nFaith Chebet\nEric Omondi\nCollins Kiprop\nBrenda Achieng\nAmani Njoroge\n",
		},
		{
			name:    "search",
			args:    []string{"list", "-resource", "fees", "-search", "amani", "-columns", "student,type", "-ordering", "type"},
			wantOut: "Student\tType\nAmani Njoroge\tlibrary\nAmani Njoroge\ttransport\nAmani Njoroge\ttuition\n",
		},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			cli, out := setup(t)
			err := cli.run(args)
			switch {
			case tt.wantErr != nil:
				if err != tt.wantErr {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
			case tt.wantErrStr != "":
				if err == nil || err.Error() != tt.wantErrStr {
					t.Errorf("cli.run() error = %v, wantErrStr %s", err, tt.wantErrStr)
				}
			case err != nil:
				t.Errorf("cli.run() unexpected error = %v", err)
			default:
				if out.String() != tt.wantOut {
					t.Errorf("cli.run() out = %q, wantOut %q", out.String(), tt.wantOut)
				}
			}
		})
	}
}

func Test_commandLine_list_aligned(t *testing.T) {
	cli, out := setup(t)

	opts := listOptions{resource: "teachers", filters: filterFlags{}, page: 1, columns: "name,status"}
	if err := cli.list(context.Background(), opts, true); err != nil {
		t.Fatalf("cli.list() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if !strings.HasPrefix(lines[0], "Name  ") || strings.Contains(lines[0], "\t") {
		t.Errorf("header %q is not aligned", lines[0])
	}
	if last := lines[len(lines)-1]; last != "page 1 of 1, 7 matched" {
		t.Errorf("footer = %q", last)
	}
}

func Test_commandLine_hashPassword(t *testing.T) {
	tests := []struct {
		cliTest
		pwd string
	}{
		{cliTest: cliTest{name: "no password", args: []string{"hashpassword"}, wantErr: errHelp}},
		{cliTest: cliTest{name: "hash", args: []string{"hashpassword"}}, pwd: "Adm1n-pass!"},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)
		pwd := tt.pwd

		readPasswordFunc = func(fd int) ([]byte, error) {
			return []byte(pwd), nil
		}

		t.Run(tt.name, func(t *testing.T) {
			cli, out := setup(t)
			err := cli.run(args)
			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("cli.run() unexpected error = %v", err)
			}
			hash := strings.TrimSpace(out.String())
			if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pwd)); err != nil {
				t.Errorf("printed hash %q does not match the password: %v", hash, err)
			}
		})
	}
}
