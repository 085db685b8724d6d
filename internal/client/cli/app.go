// Package cli is an interactive terminal front end over session.Store.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/baechuer/skillmarket/internal/client/api"
	"github.com/baechuer/skillmarket/internal/client/session"
)

// NewBackend returns the mock or the HTTP backend according to cfg.
func NewBackend(cfg *Config) (api.Backend, error) {
	if cfg.Mock {
		return api.NewMock(cfg.MockLatency), nil
	}
	return api.NewClient(cfg.APIBaseURL, api.ClientConfig{
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
	})
}

type App struct {
	store  *session.Store
	reader *bufio.Reader
	out    io.Writer
	log    zerolog.Logger

	// tty is set when input is an interactive terminal; passwords are
	// then read from fd without echo.
	tty bool
	fd  int

	unsubscribe func()
}

func NewApp(store *session.Store, in io.Reader, out io.Writer, lg zerolog.Logger) *App {
	a := &App{
		store:  store,
		reader: bufio.NewReader(in),
		out:    out,
		log:    lg,
	}
	if f, ok := in.(*os.File); ok && isTerminal(int(f.Fd())) {
		a.tty, a.fd = true, int(f.Fd())
	}
	a.unsubscribe = store.Subscribe(a.render)
	return a
}

func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
}

// render is the only place that reports session changes to the user.
func (a *App) render(u *api.User) {
	if u == nil {
		fmt.Fprintln(a.out, "-- signed out")
		return
	}
	fmt.Fprintf(a.out, "-- signed in as %s\n", u.Email)
}

func (a *App) status() string {
	if u := a.store.User(); u != nil {
		return u.Email
	}
	return "anonymous"
}

func (a *App) isLoggedIn() bool { return a.store.LoggedIn() }

func (a *App) Login(ctx context.Context) error {
	email, password, err := a.credentials()
	if err != nil {
		return err
	}
	return a.report(a.store.Login(ctx, email, password))
}

func (a *App) Register(ctx context.Context) error {
	email, password, err := a.credentials()
	if err != nil {
		return err
	}
	return a.report(a.store.Register(ctx, email, password))
}

func (a *App) Logout(ctx context.Context) error {
	return a.store.Logout(ctx)
}

func (a *App) Whoami(context.Context) error {
	u := a.store.User()
	if u == nil {
		fmt.Fprintln(a.out, "not logged in")
		return nil
	}
	printUser(a.out, *u)
	return nil
}

func (a *App) Reload(ctx context.Context) error {
	if err := a.report(a.store.Reload(ctx)); err != nil {
		return err
	}
	return a.Whoami(ctx)
}

func (a *App) Update(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "not logged in")
		return nil
	}
	fields, err := GetFields(a.reader, a.out)
	if err != nil {
		return a.report(err)
	}
	patch, err := patchFromFields(fields)
	if err != nil {
		return a.report(err)
	}
	return a.report(a.store.UpdateProfile(ctx, patch))
}

func (a *App) credentials() (string, string, error) {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return "", "", err
	}
	var password string
	if a.tty {
		password, err = GetPassword(a.fd, a.out)
	} else {
		password, err = GetSimpleText(a.reader, "Password", a.out)
	}
	if err != nil {
		return "", "", err
	}
	return email, password, nil
}

// report prints a user-facing error line and passes err through.
func (a *App) report(err error) error {
	if err == nil {
		return nil
	}
	var se *api.StatusError
	switch {
	case errors.As(err, &se):
		fmt.Fprintf(a.out, "error: %s (%s)\n", se.Message, se.Code)
		for _, k := range sortedKeys(se.Meta) {
			fmt.Fprintf(a.out, "  %s: %s\n", k, se.Meta[k])
		}
	case errors.Is(err, api.ErrUnavailable):
		fmt.Fprintln(a.out, "error: server unreachable")
	case errors.Is(err, api.ErrTimeout):
		fmt.Fprintln(a.out, "error: request timed out")
	case errors.Is(err, api.ErrNotLoggedIn):
		fmt.Fprintln(a.out, "not logged in")
	default:
		fmt.Fprintf(a.out, "error: %v\n", err)
	}
	a.log.Debug().Err(err).Msg("command failed")
	return err
}

func patchFromFields(fields map[string]string) (api.ProfilePatch, error) {
	var p api.ProfilePatch
	for name, value := range fields {
		v := value
		switch name {
		case "email":
			p.Email = &v
		case "password":
			p.Password = &v
		case "fullName":
			p.FullName = &v
		case "specialty":
			p.Specialty = &v
		case "location":
			p.Location = &v
		case "phone":
			p.Phone = &v
		case "imageUrl":
			p.ImageURL = &v
		default:
			return api.ProfilePatch{}, fmt.Errorf("unknown field %q", name)
		}
	}
	return p, nil
}

func printUser(w io.Writer, u api.User) {
	rows := [][2]string{
		{"id", u.ID},
		{"email", u.Email},
		{"fullName", u.FullName},
		{"specialty", u.Specialty},
		{"location", u.Location},
		{"phone", u.Phone},
		{"imageUrl", u.ImageURL},
	}
	for _, r := range rows {
		if r[1] == "" {
			continue
		}
		fmt.Fprintf(w, "  %-10s %s\n", r[0], r[1])
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func helpText(loggedIn bool) string {
	cmds := []string{"register", "login", "exit"}
	if loggedIn {
		cmds = []string{"whoami", "update", "reload", "logout", "exit"}
	}
	return "Available commands: " + strings.Join(cmds, ", ")
}
