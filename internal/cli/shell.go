package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"todolist/internal/model"
	"todolist/internal/view"
)

const shellHelp = `commands:
  login USER PASS      sign in
  register USER PASS   create an account and sign in
  mode                 switch the form between sign in and sign up
  add TEXT             add a task
  toggle ID            mark a task done or not done
  delete ID            delete a task
  filter all|active|completed
  logout               sign out
  help                 show this help
  quit                 leave the shell
`

var errQuit = errors.New("quit")

// RunShell reads one intent per line from in and re-renders the app after
// each. Mistakes such as a bad id or a command that does not fit the current
// screen are reported and the loop continues; storage errors end it.
func RunShell(ctx context.Context, app *view.App, in io.Reader, out io.Writer) error {
	if err := app.Render(out); err != nil {
		return err
	}

	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		err := dispatch(ctx, app, line, out)
		switch {
		case errors.Is(err, errQuit):
			return nil
		case err != nil && !isUserError(err):
			return err
		case err != nil:
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}

		fmt.Fprintln(out)
		if err := app.Render(out); err != nil {
			return err
		}
	}
}

type userError struct{ msg string }

func (e *userError) Error() string { return e.msg }

func userErrorf(format string, args ...any) error {
	return &userError{msg: fmt.Sprintf(format, args...)}
}

func isUserError(err error) bool {
	var ue *userError
	return errors.As(err, &ue) ||
		errors.Is(err, view.ErrLoggedIn) ||
		errors.Is(err, view.ErrNotLoggedIn)
}

func dispatch(ctx context.Context, app *view.App, line string, out io.Writer) error {
	name, rest, _ := strings.Cut(line, " ")
	name = strings.ToLower(name)
	rest = strings.TrimSpace(rest)
	args := strings.Fields(rest)

	switch name {
	case "quit", "exit", "q":
		return errQuit
	case "help", "?":
		fmt.Fprint(out, shellHelp)
		return nil
	case "mode":
		return app.ToggleMode()
	case "login", "register":
		if len(args) > 2 {
			return userErrorf("usage: %s USER PASS", name)
		}
		if err := app.SetRegistering(name == "register"); err != nil {
			return err
		}
		var user, pass string
		if len(args) > 0 {
			user = args[0]
		}
		if len(args) > 1 {
			pass = args[1]
		}
		return app.Submit(ctx, user, pass)
	case "logout":
		return app.Logout(ctx)
	case "add":
		_, err := app.AddTask(ctx, rest)
		return err
	case "toggle", "delete", "rm":
		if len(args) != 1 {
			return userErrorf("usage: %s ID", name)
		}
		id, err := parseID(args[0])
		if err != nil {
			return &userError{msg: err.Error()}
		}
		if name == "toggle" {
			t, err := app.ToggleTask(ctx, id)
			if err == nil && t == nil {
				fmt.Fprintf(out, "no task with id %d\n", id)
			}
			return err
		}
		ok, err := app.DeleteTask(ctx, id)
		if err == nil && !ok {
			fmt.Fprintf(out, "no task with id %d\n", id)
		}
		return err
	case "filter":
		f, err := model.ParseFilter(rest)
		if err != nil {
			return &userError{msg: err.Error()}
		}
		return app.SetFilter(f)
	}
	return userErrorf("unknown command %q (try help)", name)
}
