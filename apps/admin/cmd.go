package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/devanshdeveloper/edu-manage-sub000/core"
	"github.com/devanshdeveloper/edu-manage-sub000/core/school"
	"github.com/devanshdeveloper/edu-manage-sub000/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable
	isTerminalFunc   = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }

	errHelp = errors.New("help provided")
)

type commandLine struct {
	pages *school.Pages
	out   io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  list -resource NAME [-search TEXT] [-filter FIELD=V1,V2]... [-ordering -FIELD] [-page N] [-size N] [-columns A,B] - print a page of a resource")
	fmt.Println("  hashpassword - prompt for a password and print its hash")
	fmt.Println("Resources:")
	fmt.Println("  " + strings.Join(cli.resourceNames(), ", "))
}

// filterFlags collects repeated -filter field=values flags.
type filterFlags map[string][]string

func (f filterFlags) String() string {
	parts := make([]string, 0, len(f))
	for field, values := range f {
		parts = append(parts, field+"="+strings.Join(values, ","))
	}
	return strings.Join(parts, " ")
}

func (f filterFlags) Set(s string) error {
	field, values, ok := strings.Cut(s, "=")
	if !ok || field == "" {
		return fmt.Errorf("filter %q must be of form FIELD=V1,V2", s)
	}
	f[field] = append(f[field], core.SplitList(values)...)
	return nil
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	listCmd := flag.NewFlagSet("list", flag.ContinueOnError)
	opts := listOptions{filters: make(filterFlags)}
	listCmd.StringVar(&opts.resource, "resource", "", "The resource to list.")
	listCmd.StringVar(&opts.search, "search", "", "Search the searchable columns.")
	listCmd.Var(opts.filters, "filter", "Filter a column: FIELD=V1,V2. Repeatable.")
	listCmd.StringVar(&opts.ordering, "ordering", "", "Sort by a column; prefix with - for descending.")
	listCmd.IntVar(&opts.page, "page", 1, "The page to print, from 1.")
	listCmd.IntVar(&opts.size, "size", 0, "The page size.")
	listCmd.StringVar(&opts.columns, "columns", "", "Comma separated visible columns.")

	switch args[1] {
	case "list":
		if err := listCmd.Parse(args[2:]); err != nil {
			if err == flag.ErrHelp {
				return errHelp
			}
			return err
		}
		if opts.resource == "" {
			listCmd.Usage()
			return errHelp
		}
		return cli.list(context.Background(), opts, isTerminalFunc())
	case "hashpassword":
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			cli.printUsage()
			return errHelp
		}
		return cli.hashPassword(string(pwd))
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) hashPassword(pwd string) error {
	var usr user.User
	if err := usr.SetPassword(pwd); err != nil {
		return err
	}
	_, err := fmt.Fprintln(cli.out, string(usr.PasswordHash))
	return err
}
