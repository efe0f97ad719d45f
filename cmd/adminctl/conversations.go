package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"marketadmin/internal/api"
	"marketadmin/internal/view"
)

func (a *app) conversationsCommand() *cli.Command {
	return &cli.Command{
		Name:    "conversations",
		Aliases: []string{"chats"},
		Usage:   "chat-monitoring dashboard",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list conversations",
				Flags: listFlags(
					&cli.StringFlag{Name: "status", Value: api.FilterAll, Usage: "active|archived|closed|pending|all"},
				),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if _, err := a.requireAdmin(); err != nil {
						return err
					}
					list := view.NewList(a.client.ListConversations, a.listOptions(cmd, map[string]string{
						"status": cmd.String("status"),
					}))
					list.Refresh(ctx)
					return a.renderConversations(list)
				},
			},
			{
				Name:  "stats",
				Usage: "chat dashboard aggregate",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if _, err := a.requireAdmin(); err != nil {
						return err
					}
					stats := view.NewStats(a.client.ChatStatistics, a.logger)
					stats.Load(ctx)
					value, ok := stats.Value()
					if !ok {
						fmt.Fprintln(a.stdout, "conversations: …")
						return nil
					}
					fmt.Fprintf(a.stdout, "conversations: %d total, %d active, %d archived, %d pending, %d unread messages\n",
						value.TotalConversations, value.ActiveConversations,
						value.ArchivedConversations, value.PendingConversations, value.UnreadMessages)
					return nil
				},
			},
		},
	}
}

func (a *app) renderConversations(list *view.List[api.Conversation]) error {
	tw := newTable(a.stdout)
	fmt.Fprintln(tw, "ID\tSTATUS\tBUYER\tSELLER\tAGENT\tMSGS\tUNREAD\tLAST MESSAGE")
	for _, c := range list.Items() {
		agent := "-"
		if c.AssignedAgent != nil {
			agent = c.AssignedAgent.Name
		}
		last := "-"
		if !c.LastMessageAt.IsZero() {
			last = c.LastMessageAt.Format(time.RFC3339)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			c.ID, c.Status, c.Buyer.Name, c.Seller.Name, agent,
			c.MessageCount, c.UnreadCount, last)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return a.renderPagination(list.Page(), list.LastPage(), list.Total(), list.ShowPagination())
}
