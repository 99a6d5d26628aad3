package view

import (
	"fmt"
	"io"
	"strings"

	"todolist/internal/model"
)

// Render writes the current screen as plain text.
func (a *App) Render(w io.Writer) error {
	var b strings.Builder
	if a.state == LoggedIn {
		a.renderList(&b)
	} else {
		a.renderForm(&b)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (a *App) renderForm(b *strings.Builder) {
	if a.registering {
		b.WriteString("Create Account\nSign up to get started\n")
	} else {
		b.WriteString("Welcome Back\nSign in to your account\n")
	}
	if a.message != "" {
		fmt.Fprintf(b, "\n! %s\n", a.message)
	}
	b.WriteString("\n")
	if a.registering {
		b.WriteString("Already have an account? Sign in\n")
	} else {
		b.WriteString("Don't have an account? Sign up\n")
	}
}

func (a *App) renderList(b *strings.Builder) {
	fmt.Fprintf(b, "My Tasks\nWelcome back, %s!\n\n", a.username)

	bar := make([]string, 0, len(model.Filters))
	for _, f := range model.Filters {
		if f == a.filter {
			bar = append(bar, "["+f.Label()+"]")
		} else {
			bar = append(bar, " "+f.Label()+" ")
		}
	}
	b.WriteString(strings.Join(bar, " "))
	b.WriteString("\n\n")

	visible := a.Visible()
	if len(visible) == 0 {
		b.WriteString("No tasks found\nAdd a task to get started!\n")
	}
	for _, t := range visible {
		b.WriteString(formatTask(t))
		b.WriteString("\n")
	}

	if len(a.list) > 0 {
		st := a.Stats()
		fmt.Fprintf(b, "\n%d active tasks  %d completed\n", st.Active, st.Completed)
	}
}

func formatTask(t model.Task) string {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	return fmt.Sprintf("  [%s] %d  %s", mark, t.ID, t.Text)
}
