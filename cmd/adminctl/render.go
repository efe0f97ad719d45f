package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"marketadmin/internal/view"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// listOptions maps the shared list flags onto view-model options.
func (a *app) listOptions(cmd *cli.Command, filters map[string]string) view.ListOptions {
	perPage := int(cmd.Int("per-page"))
	if perPage <= 0 {
		perPage = a.cfg.PerPage
	}
	return view.ListOptions{
		PerPage:        perPage,
		Debounce:       a.cfg.SearchDebounce,
		Logger:         a.logger,
		InitialSearch:  cmd.String("search"),
		InitialFilters: filters,
		InitialPage:    int(cmd.Int("page")),
	}
}

// renderPagination prints the paging footer; hidden for single pages,
// the same way the dashboards hide their controls.
func (a *app) renderPagination(page, lastPage, total int, show bool) error {
	if !show {
		return nil
	}
	_, err := fmt.Fprintf(a.stdout, "page %d of %d (%d total)\n", page, lastPage, total)
	return err
}
