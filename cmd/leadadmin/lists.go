package main

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"LF-ADMIN/internal/console"
	"LF-ADMIN/internal/listview"
	"LF-ADMIN/internal/models"

	"github.com/spf13/cobra"
)

// entityList describes how one entity page is fetched and shown
type entityList[T any] struct {
	what    string
	view    func() *listview.View[T]
	fetch   func(ctx context.Context, query url.Values) ([]T, error)
	headers []string
	row     func(T) []string
}

func listCommand[T any](a *app, list entityList[T]) *cobra.Command {
	var (
		search, status, date, sortKey string
		desc                          bool
		page, pageSize                int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List " + list.what,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := console.LoadPage(cmd.Context(), a.page, list.what, func(ctx context.Context) ([]T, error) {
				return list.fetch(ctx, nil)
			})
			if err != nil {
				return err
			}

			dir := listview.Asc
			if desc {
				dir = listview.Desc
			}
			res := list.view().Apply(items, listview.Query{
				Search:    search,
				Equals:    map[string]string{"status": status, "date": date},
				SortKey:   sortKey,
				Direction: dir,
				Page:      page,
				PageSize:  pageSize,
			})

			tbl := console.Table{Headers: list.headers}
			for _, item := range res.Items {
				tbl.Add(list.row(item)...)
			}
			if err := tbl.Render(a.out); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "\n%d of %d %s (page %d/%d)\n", len(res.Items), res.Total, list.what, res.Page, res.TotalPages)
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive text search")
	cmd.Flags().StringVar(&status, "status", "", "Only records with this status")
	cmd.Flags().StringVar(&date, "date", "", "Only records created on this day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&sortKey, "sort", "", "Column to sort by")
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort descending")
	cmd.Flags().IntVar(&page, "page", 0, "Page number; 0 shows everything")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "Rows per page")
	return cmd
}

func group(use, short string, children ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{Use: use, Short: short}
	cmd.AddCommand(children...)
	return cmd
}

func bannersCommand(a *app) *cobra.Command {
	return group("banners", "Dashboard banners", listCommand(a, entityList[models.Banner]{
		what: "banners",
		view: console.BannerView,
		fetch: func(ctx context.Context, q url.Values) ([]models.Banner, error) {
			return a.client.Banners.GetAll(ctx, q)
		},
		headers: []string{"ID", "TITLE", "STATUS", "ORDER", "START", "END"},
		row: func(b models.Banner) []string {
			start, end := "", ""
			if b.StartDate != nil {
				start = b.StartDate.Format("2006-01-02")
			}
			if b.EndDate != nil {
				end = b.EndDate.Format("2006-01-02")
			}
			return []string{b.ID, b.Title, b.Status, strconv.Itoa(b.SortOrder), start, end}
		},
	}))
}

func form16List(a *app) *cobra.Command {
	return listCommand(a, entityList[models.Form16]{
		what: "form16 documents",
		view: console.Form16View,
		fetch: func(ctx context.Context, q url.Values) ([]models.Form16, error) {
			return a.client.Form16.GetAll(ctx, q)
		},
		headers: []string{"ID", "AGENT", "YEAR", "TYPE", "STATUS", "ATTACHMENT"},
		row: func(f models.Form16) []string {
			return []string{f.ID, f.AgentName, f.FinancialYear, f.DocumentType, f.Status, f.Attachment}
		},
	})
}

func subAgentsCommand(a *app) *cobra.Command {
	return group("subagents", "Franchise sub agents", listCommand(a, entityList[models.SubAgent]{
		what: "sub agents",
		view: console.SubAgentView,
		fetch: func(ctx context.Context, q url.Values) ([]models.SubAgent, error) {
			return a.client.SubAgents.GetAll(ctx, q)
		},
		headers: []string{"ID", "NAME", "EMAIL", "MOBILE", "FRANCHISE", "STATUS"},
		row: func(s models.SubAgent) []string {
			return []string{s.ID, s.Name, s.Email, s.Mobile, s.FranchiseID, s.Status}
		},
	}))
}

func commissionCommand(a *app) *cobra.Command {
	return group("commission", "Franchise commission limits", listCommand(a, entityList[models.FranchiseCommissionLimit]{
		what: "commission limits",
		view: console.CommissionLimitView,
		fetch: func(ctx context.Context, q url.Values) ([]models.FranchiseCommissionLimit, error) {
			return a.client.CommissionLimits.GetAll(ctx, q)
		},
		headers: []string{"ID", "FRANCHISE", "BANK", "LIMIT %", "STATUS"},
		row: func(l models.FranchiseCommissionLimit) []string {
			return []string{l.ID, l.FranchiseName, l.BankID, strconv.FormatFloat(l.LimitPercent, 'f', 2, 64), l.Status}
		},
	}))
}

func invoicesCommand(a *app) *cobra.Command {
	return group("invoices", "Agent invoices", listCommand(a, entityList[models.Invoice]{
		what: "invoices",
		view: console.InvoiceView,
		fetch: func(ctx context.Context, q url.Values) ([]models.Invoice, error) {
			return a.client.Invoices.GetAll(ctx, q)
		},
		headers: []string{"ID", "NUMBER", "AGENT", "AMOUNT", "STATUS", "ISSUED"},
		row: func(i models.Invoice) []string {
			return []string{i.ID, i.InvoiceNumber, i.AgentName, strconv.FormatFloat(i.Amount, 'f', 2, 64), i.Status, i.IssuedAt.Format("2006-01-02")}
		},
	}), invoiceStatusCommand(a))
}

func invoiceStatusCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status ID STATUS",
		Short: "Move an invoice to another status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			inv, err := a.client.Invoices.UpdateStatus(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			a.hub.Success(fmt.Sprintf("Invoice %s is now %s", inv.InvoiceNumber, inv.Status))
			return nil
		},
	}
}
