package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"marketadmin/internal/session"
)

func (a *app) loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "install the operator session token",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "token", Required: true, Usage: "bearer token issued by the platform"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := a.store.SetToken(cmd.String("token")); err != nil {
				return err
			}
			identity, err := a.store.Identity()
			if err != nil {
				return fmt.Errorf("token stored but unreadable: %w", err)
			}
			fmt.Fprintf(a.stdout, "logged in as %s (%s)\n", identity.Name, identity.Usertype)
			return nil
		},
	}
}

func (a *app) logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "clear the session",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := a.store.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, "logged out")
			return nil
		},
	}
}

func (a *app) whoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "show the active identity",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			identity, err := a.store.Identity()
			if errors.Is(err, session.ErrNoToken) {
				fmt.Fprintln(a.stdout, "not logged in")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "%s (%s), id %d\n", identity.Name, identity.Usertype, identity.ID)
			if rec := a.store.Impersonation(); rec != nil && rec.Phase == session.PhaseImpersonating {
				fmt.Fprintf(a.stdout, "impersonating user %d as %s since %s\n",
					rec.TargetID, rec.ImpersonatorName, rec.StartedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}
