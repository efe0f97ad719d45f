package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"marketadmin/internal/api"
	"marketadmin/internal/export"
	"marketadmin/internal/view"
)

func (a *app) paymentsCommand() *cli.Command {
	statusFlag := &cli.StringFlag{Name: "status", Value: api.FilterAll, Usage: "completed|pending|failed|refunded|all"}
	methodFlag := &cli.StringFlag{Name: "method", Value: api.FilterAll, Usage: "payment method or all"}

	return &cli.Command{
		Name:  "payments",
		Usage: "payment-ledger dashboard",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list transactions",
				Flags: listFlags(statusFlag, methodFlag),
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if _, err := a.requireAdmin(); err != nil {
						return err
					}
					list := view.NewList(a.client.ListPayments, a.listOptions(cmd, paymentFilters(cmd)))
					list.Refresh(ctx)
					return a.renderPayments(list)
				},
			},
			{
				Name:  "stats",
				Usage: "ledger aggregate",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if _, err := a.requireAdmin(); err != nil {
						return err
					}
					stats := view.NewStats(a.client.PaymentStatistics, a.logger)
					stats.Load(ctx)
					value, ok := stats.Value()
					if !ok {
						fmt.Fprintln(a.stdout, "payments: …")
						return nil
					}
					fmt.Fprintf(a.stdout, "payments: %d transactions, %.2f volume, %.2f fees (%d completed / %d pending / %d failed / %d refunded)\n",
						value.TotalTransactions, value.TotalVolume, value.TotalFees,
						value.Completed, value.Pending, value.Failed, value.Refunded)
					return nil
				},
			},
			{
				Name:  "export",
				Usage: "export the filtered ledger as CSV",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "search", Usage: "search term"},
					&cli.StringFlag{Name: "out", Usage: "output file (default stdout)"},
					statusFlag,
					methodFlag,
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if _, err := a.requireAdmin(); err != nil {
						return err
					}
					return a.exportPayments(ctx, cmd)
				},
			},
		},
	}
}

func paymentFilters(cmd *cli.Command) map[string]string {
	return map[string]string{
		"status":         cmd.String("status"),
		"payment_method": cmd.String("method"),
	}
}

// exportPayments pages through the whole filtered ledger and streams
// it as CSV.
func (a *app) exportPayments(ctx context.Context, cmd *cli.Command) error {
	out := a.stdout
	if path := cmd.String("out"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create export file: %w", err)
		}
		defer f.Close()
		out = f
	}

	q := api.ListQuery{
		Page:    1,
		PerPage: 100,
		Search:  cmd.String("search"),
		Filters: paymentFilters(cmd),
	}
	var all []api.Payment
	for {
		page, err := a.client.ListPayments(ctx, q)
		if err != nil {
			return err
		}
		all = append(all, page.Data...)
		if page.CurrentPage >= page.LastPage {
			break
		}
		q.Page = page.CurrentPage + 1
	}
	return export.WritePaymentsCSV(out, all)
}

func (a *app) renderPayments(list *view.List[api.Payment]) error {
	tw := newTable(a.stdout)
	fmt.Fprintln(tw, "ID\tTRANSACTION\tORDER\tAMOUNT\tFEE\tSTATUS\tMETHOD\tCREATED")
	for _, p := range list.Items() {
		txn := p.TransactionID
		if txn == "" {
			txn = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%.2f\t%.2f\t%s\t%s\t%s\n",
			p.ID, txn, p.OrderID, p.Amount, p.PlatformFee,
			p.Status, p.PaymentMethod, p.CreatedAt.Format(time.RFC3339))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return a.renderPagination(list.Page(), list.LastPage(), list.Total(), list.ShowPagination())
}
