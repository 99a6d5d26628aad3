// Package view holds the screen state of the app as a two-state machine:
// LoggedOut shows the sign-in/sign-up form, LoggedIn shows the task list.
package view

import (
	"context"
	"errors"

	"todolist/internal/auth"
	"todolist/internal/model"
	"todolist/internal/store"
)

type State int

const (
	LoggedOut State = iota
	LoggedIn
)

func (s State) String() string {
	switch s {
	case LoggedIn:
		return "logged_in"
	default:
		return "logged_out"
	}
}

var (
	ErrNotLoggedIn = errors.New("not logged in")
	ErrLoggedIn    = errors.New("already logged in")
)

type App struct {
	auth  *auth.Service
	tasks *store.Tasks

	state State

	// LoggedOut
	registering bool
	message     string

	// LoggedIn
	username string
	filter   model.Filter
	list     []model.Task
}

// New restores the app from the remembered session, if any.
func New(ctx context.Context, a *auth.Service, tasks *store.Tasks) (*App, error) {
	app := &App{auth: a, tasks: tasks, filter: model.FilterAll}

	sess, err := a.Current(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		app.toLoggedOut()
		return app, nil
	}
	if err := app.toLoggedIn(ctx, sess.Username); err != nil {
		return nil, err
	}
	return app, nil
}

func (a *App) toLoggedIn(ctx context.Context, username string) error {
	list, err := a.tasks.List(ctx, username, model.FilterAll)
	if err != nil {
		return err
	}
	a.state = LoggedIn
	a.username = username
	a.filter = model.FilterAll
	a.list = list
	a.message = ""
	return nil
}

func (a *App) toLoggedOut() {
	a.state = LoggedOut
	a.username = ""
	a.list = nil
	a.message = ""
}

func (a *App) State() State         { return a.state }
func (a *App) Registering() bool    { return a.registering }
func (a *App) Message() string      { return a.message }
func (a *App) Username() string     { return a.username }
func (a *App) Filter() model.Filter { return a.filter }

// Tasks returns the full, unfiltered list of the signed-in user.
func (a *App) Tasks() []model.Task {
	out := make([]model.Task, len(a.list))
	copy(out, a.list)
	return out
}

// Visible returns the tasks selected by the active filter.
func (a *App) Visible() []model.Task {
	return store.FilterTasks(a.list, a.filter)
}

func (a *App) Stats() model.Stats {
	return model.CountTasks(a.list)
}

// ToggleMode switches the form between sign in and sign up.
func (a *App) ToggleMode() error {
	if a.state != LoggedOut {
		return ErrLoggedIn
	}
	a.registering = !a.registering
	a.message = ""
	return nil
}

// SetRegistering selects the form mode directly.
func (a *App) SetRegistering(on bool) error {
	if a.state != LoggedOut {
		return ErrLoggedIn
	}
	if a.registering != on {
		return a.ToggleMode()
	}
	return nil
}

// Submit signs in or signs up depending on the form mode. Auth failures are
// kept as the form message and do not return an error.
func (a *App) Submit(ctx context.Context, username, password string) error {
	if a.state != LoggedOut {
		return ErrLoggedIn
	}
	a.message = ""

	var (
		sess model.Session
		err  error
	)
	if a.registering {
		sess, err = a.auth.Register(ctx, username, password)
	} else {
		sess, err = a.auth.Login(ctx, username, password)
	}
	if err != nil {
		if msg := auth.Message(err); msg != "" {
			a.message = msg
			return nil
		}
		return err
	}
	return a.toLoggedIn(ctx, sess.Username)
}

func (a *App) Logout(ctx context.Context) error {
	if a.state != LoggedIn {
		return ErrNotLoggedIn
	}
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.toLoggedOut()
	return nil
}

func (a *App) SetFilter(f model.Filter) error {
	if a.state != LoggedIn {
		return ErrNotLoggedIn
	}
	a.filter = f
	return nil
}

// AddTask returns the created task, or nil when text is blank.
func (a *App) AddTask(ctx context.Context, text string) (*model.Task, error) {
	if a.state != LoggedIn {
		return nil, ErrNotLoggedIn
	}
	t, err := a.tasks.Add(ctx, a.username, text)
	if err != nil {
		return nil, err
	}
	return t, a.reload(ctx)
}

// ToggleTask returns the toggled task, or nil when no task has that id.
func (a *App) ToggleTask(ctx context.Context, id int64) (*model.Task, error) {
	if a.state != LoggedIn {
		return nil, ErrNotLoggedIn
	}
	t, err := a.tasks.Toggle(ctx, a.username, id)
	if err != nil {
		return nil, err
	}
	return t, a.reload(ctx)
}

// DeleteTask reports whether a task with that id existed.
func (a *App) DeleteTask(ctx context.Context, id int64) (bool, error) {
	if a.state != LoggedIn {
		return false, ErrNotLoggedIn
	}
	ok, err := a.tasks.Delete(ctx, a.username, id)
	if err != nil {
		return false, err
	}
	return ok, a.reload(ctx)
}

func (a *App) reload(ctx context.Context) error {
	list, err := a.tasks.List(ctx, a.username, model.FilterAll)
	if err != nil {
		return err
	}
	a.list = list
	return nil
}
