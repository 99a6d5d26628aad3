package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"todolist/internal/auth"
	"todolist/internal/export"
	"todolist/internal/model"
	"todolist/internal/store"
	"todolist/internal/view"

	"github.com/spf13/cobra"
)

type Deps struct {
	Auth  *auth.Service
	Tasks *store.Tasks
}

func NewRootCommand(d Deps) *cobra.Command {
	root := &cobra.Command{
		Use:           "todolist",
		Short:         "A personal task list with local sign-in",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := d.open(cmd.Context())
			if err != nil {
				return err
			}
			return app.Render(cmd.OutOrStdout())
		},
	}

	root.AddCommand(
		d.authCommand("register", "Create an account and sign in", true),
		d.authCommand("login", "Sign in to an existing account", false),
		d.logoutCommand(),
		d.whoamiCommand(),
		d.addCommand(),
		d.toggleCommand(),
		d.deleteCommand(),
		d.listCommand(),
		d.exportCommand(),
		d.shellCommand(),
	)
	return root
}

func (d Deps) open(ctx context.Context) (*view.App, error) {
	return view.New(ctx, d.Auth, d.Tasks)
}

// authCommand builds register and login. The password is read from stdin
// when it is not given as an argument.
func (d Deps) authCommand(name, short string, registering bool) *cobra.Command {
	return &cobra.Command{
		Use:   name + " USERNAME [PASSWORD]",
		Short: short,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := d.open(ctx)
			if err != nil {
				return err
			}
			if err := app.SetRegistering(registering); err != nil {
				return fmt.Errorf("%w as %s; run logout first", err, app.Username())
			}

			password := ""
			if len(args) == 2 {
				password = args[1]
			} else {
				password, err = readLine(cmd.InOrStdin())
				if err != nil {
					return err
				}
			}

			if err := app.Submit(ctx, args[0], password); err != nil {
				return err
			}
			if msg := app.Message(); msg != "" {
				return errors.New(msg)
			}
			return app.Render(cmd.OutOrStdout())
		},
	}
}

func (d Deps) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			app, err := d.open(ctx)
			if err != nil {
				return err
			}
			if err := app.Logout(ctx); err != nil {
				return err
			}
			return app.Render(cmd.OutOrStdout())
		},
	}
}

func (d Deps) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Print the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := d.open(cmd.Context())
			if err != nil {
				return err
			}
			if app.State() != view.LoggedIn {
				return view.ErrNotLoggedIn
			}
			fmt.Fprintln(cmd.OutOrStdout(), app.Username())
			return nil
		},
	}
}

func (d Deps) addCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add TEXT...",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := d.open(ctx)
			if err != nil {
				return err
			}
			if _, err := app.AddTask(ctx, strings.Join(args, " ")); err != nil {
				return err
			}
			return app.Render(cmd.OutOrStdout())
		},
	}
}

func (d Deps) toggleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle ID",
		Short: "Mark a task done or not done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			app, err := d.open(ctx)
			if err != nil {
				return err
			}
			t, err := app.ToggleTask(ctx, id)
			if err != nil {
				return err
			}
			if t == nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "no task with id %d\n", id)
			}
			return app.Render(cmd.OutOrStdout())
		},
	}
}

func (d Deps) deleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			app, err := d.open(ctx)
			if err != nil {
				return err
			}
			ok, err := app.DeleteTask(ctx, id)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintf(cmd.ErrOrStderr(), "no task with id %d\n", id)
			}
			return app.Render(cmd.OutOrStdout())
		},
	}
}

func (d Deps) listCommand() *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := model.ParseFilter(filter)
			if err != nil {
				return err
			}
			app, err := d.open(cmd.Context())
			if err != nil {
				return err
			}
			if err := app.SetFilter(f); err != nil {
				return err
			}
			return app.Render(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", string(model.FilterAll), "all, active or completed")
	return cmd
}

func (d Deps) exportCommand() *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the task list as json, csv or pdf",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := d.open(cmd.Context())
			if err != nil {
				return err
			}
			if app.State() != view.LoggedIn {
				return view.ErrNotLoggedIn
			}
			b, err := export.Export(app.Username(), app.Tasks(), format)
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(b)
				return err
			}
			if err := os.WriteFile(out, b, 0600); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "exported %d tasks to %s\n", len(app.Tasks()), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", strings.Join(export.Formats, ", "))
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

func (d Deps) shellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Run an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			app, err := d.open(ctx)
			if err != nil {
				return err
			}
			return RunShell(ctx, app, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", s)
	}
	return id, nil
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
