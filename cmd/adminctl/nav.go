package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"marketadmin/internal/nav"
)

func (a *app) navCommand() *cli.Command {
	return &cli.Command{
		Name:  "nav",
		Usage: "resolve sidebar state for a route path",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Required: true, Usage: "route path, e.g. /admin/payments"},
			&cli.StringFlag{Name: "tree", Usage: "YAML navigation file (default: built-in tree)"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			model := nav.Default()
			if treePath := cmd.String("tree"); treePath != "" {
				f, err := os.Open(treePath)
				if err != nil {
					return err
				}
				defer f.Close()
				model, err = nav.Load(f)
				if err != nil {
					return err
				}
			}

			path := cmd.String("path")
			section := model.AutoExpand(path)
			active := model.ActiveHref(path)
			if active == "" {
				active = "-"
			}
			if section == "" {
				section = "-"
			}
			fmt.Fprintf(a.stdout, "active: %s\nexpanded: %s\n", active, section)
			return nil
		},
	}
}
