package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/urfave/cli/v3"

	"marketadmin/internal/api"
	"marketadmin/internal/view"
)

func (a *app) usersCommand() *cli.Command {
	yesFlag := &cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "skip confirmation"}

	return &cli.Command{
		Name:  "users",
		Usage: "user-management dashboard",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list accounts",
				Flags: listFlags(
					&cli.StringFlag{Name: "usertype", Value: api.FilterAll, Usage: "buyer|seller|agent|admin|all"},
				),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if _, err := a.requireAdmin(); err != nil {
						return err
					}
					list := view.NewList(a.client.ListUsers, a.listOptions(cmd, map[string]string{
						"usertype": cmd.String("usertype"),
					}))
					list.Refresh(ctx)
					return a.renderUsers(list)
				},
			},
			{
				Name:  "stats",
				Usage: "user dashboard aggregate",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if _, err := a.requireAdmin(); err != nil {
						return err
					}
					stats := view.NewStats(a.client.UserStatistics, a.logger)
					stats.Load(ctx)
					value, ok := stats.Value()
					if !ok {
						fmt.Fprintln(a.stdout, "users: …")
						return nil
					}
					fmt.Fprintf(a.stdout, "users: %d total (%d buyers / %d sellers / %d agents), %d new this month\n",
						value.TotalUsers, value.Buyers, value.Sellers, value.Agents, value.NewThisMonth)
					return nil
				},
			},
			{
				Name:      "delete",
				Usage:     "delete an account",
				ArgsUsage: "<id>",
				Flags:     []cli.Flag{yesFlag},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if _, err := a.requireAdmin(); err != nil {
						return err
					}
					return a.deleteUser(ctx, cmd)
				},
			},
			{
				Name:      "impersonate",
				Aliases:   []string{"login-as"},
				Usage:     "assume a user's session",
				ArgsUsage: "<id>",
				Flags:     []cli.Flag{yesFlag},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if _, err := a.requireAdmin(); err != nil {
						return err
					}
					return a.impersonateUser(ctx, cmd)
				},
			},
			{
				Name:  "stop-impersonating",
				Usage: "restore the admin session",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if err := a.store.StopImpersonation(); err != nil {
						return err
					}
					fmt.Fprintln(a.stdout, "admin session restored")
					return nil
				},
			},
		},
	}
}

func (a *app) deleteUser(ctx context.Context, cmd *cli.Command) error {
	target, err := a.lookupTarget(ctx, cmd)
	if err != nil {
		return err
	}
	d := a.dispatcher(cmd)
	if err := d.DeleteUser(ctx, *target); err != nil {
		if errors.Is(err, view.ErrCancelled) {
			fmt.Fprintln(a.stdout, "cancelled")
			return nil
		}
		return err
	}
	return nil
}

func (a *app) impersonateUser(ctx context.Context, cmd *cli.Command) error {
	target, err := a.lookupTarget(ctx, cmd)
	if err != nil {
		return err
	}
	d := a.dispatcher(cmd)
	portal, err := d.ImpersonateUser(ctx, *target)
	if err != nil {
		if errors.Is(err, view.ErrCancelled) {
			fmt.Fprintln(a.stdout, "cancelled")
			return nil
		}
		return err
	}
	fmt.Fprintf(a.stdout, "impersonation active; open %s (full reload so session state derives from the new token)\n", portal)
	return nil
}

func (a *app) lookupTarget(ctx context.Context, cmd *cli.Command) (*api.User, error) {
	raw := cmd.Args().First()
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("a positive user id is required, got %q", raw)
	}
	return a.client.GetUser(ctx, id)
}

// dispatcher wires the mutation path: prompt, toast printing and the
// post-mutation statistics refresh.
func (a *app) dispatcher(cmd *cli.Command) *view.Dispatcher {
	var confirm view.Confirmer = promptConfirmer{in: a.stdin, out: a.stdout}
	if cmd.Bool("yes") {
		confirm = autoConfirmer{}
	}
	stats := view.NewStats(a.client.UserStatistics, a.logger)
	return &view.Dispatcher{
		API:      a.client,
		Sessions: a.store,
		Confirm:  confirm,
		Notify:   toastPrinter{out: a.stdout},
		Logger:   a.logger,
		RefreshStats: func(ctx context.Context) {
			stats.Load(ctx)
			if value, ok := stats.Value(); ok {
				fmt.Fprintf(a.stdout, "users now: %d total\n", value.TotalUsers)
			}
		},
	}
}

func (a *app) renderUsers(list *view.List[api.User]) error {
	tw := newTable(a.stdout)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tTYPE\tCREATED\tACTIONS")
	for _, u := range list.Items() {
		actions := "delete, impersonate"
		if !view.CanDelete(u) {
			actions = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			u.ID, u.Name, u.Email, u.Usertype, u.CreatedAt.Format(time.RFC3339), actions)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return a.renderPagination(list.Page(), list.LastPage(), list.Total(), list.ShowPagination())
}
