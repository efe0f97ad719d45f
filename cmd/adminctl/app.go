package main

import (
	"errors"
	"io"
	"log/slog"

	"github.com/urfave/cli/v3"

	"marketadmin/internal/api"
	"marketadmin/internal/config"
	"marketadmin/internal/session"
)

type app struct {
	cfg    config.Config
	logger *slog.Logger
	store  *session.Store
	client *api.Client
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func (a *app) rootCommand() *cli.Command {
	return &cli.Command{
		Name:      "adminctl",
		Usage:     "marketplace admin console",
		Version:   version,
		Writer:    a.stdout,
		ErrWriter: a.stderr,
		Commands: []*cli.Command{
			a.loginCommand(),
			a.logoutCommand(),
			a.whoamiCommand(),
			a.conversationsCommand(),
			a.paymentsCommand(),
			a.usersCommand(),
			a.navCommand(),
		},
	}
}

// requireAdmin refuses non-admin operators up front, the console-side
// counterpart of the dashboard's redirect-to-login guard.
func (a *app) requireAdmin() (*session.Identity, error) {
	identity, err := a.store.Identity()
	if err != nil {
		if errors.Is(err, session.ErrNoToken) {
			return nil, errors.New("not logged in (run `adminctl login --token ...`)")
		}
		return nil, err
	}
	if !identity.IsAdmin() {
		return nil, errors.New("admin access required")
	}
	return identity, nil
}

func listFlags(extra ...cli.Flag) []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{Name: "search", Usage: "search term"},
		&cli.IntFlag{Name: "page", Value: 1, Usage: "page number"},
		&cli.IntFlag{Name: "per-page", Usage: "items per page"},
	}
	return append(flags, extra...)
}
