package main

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"LF-ADMIN/internal/api"
	"LF-ADMIN/internal/apperrors"
	"LF-ADMIN/internal/console"
	"LF-ADMIN/internal/listview"
	"LF-ADMIN/internal/models"

	"github.com/spf13/cobra"
)

var defaultRoles = []string{
	models.RoleAgent,
	models.RoleFranchise,
	models.RoleRelationshipManager,
	models.RoleRegionalManager,
}

func usersCommand(a *app) *cobra.Command {
	var roles []string
	var limit int

	cmd := &cobra.Command{
		Use:   "users",
		Short: "List users of several roles, one role at a time",
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := console.FetchUsersByRoles(cmd.Context(), a.client.Users, roles, limit, a.log)
			if err != nil {
				a.hub.Warning(err.Error())
			}

			tbl := console.Table{Headers: []string{"ID", "NAME", "EMAIL", "MOBILE", "ROLE", "STATUS"}}
			for _, u := range users {
				tbl.Add(u.ID, u.Name, u.Email, u.Mobile, u.Role, u.Status)
			}
			return tbl.Render(a.out)
		},
	}

	cmd.Flags().StringSliceVar(&roles, "roles", defaultRoles, "Roles to load")
	cmd.Flags().IntVar(&limit, "limit", 1000, "Maximum users per role")
	return cmd
}

func form16Command(a *app) *cobra.Command {
	return group("form16", "Form16 and TDS certificates", form16List(a), form16CreateCommand(a))
}

func form16CreateCommand(a *app) *cobra.Command {
	var in console.Form16Input
	var file string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a Form16 or TDS record and upload its file",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", file, err)
			}
			defer f.Close()

			doc, err := console.CreateForm16WithAttachment(cmd.Context(), a.page, a.client.Form16, a.client.Documents, in, filepath.Base(file), f)
			if doc != nil {
				fmt.Fprintf(a.out, "%s %s %s attachment=%s\n", doc.ID, doc.AgentName, doc.FinancialYear, doc.Attachment)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&in.AgentID, "agent", "", "Agent id")
	cmd.Flags().StringVar(&in.AgentName, "agent-name", "", "Agent name")
	cmd.Flags().StringVar(&in.FinancialYear, "year", "", "Financial year, e.g. 2024-2025")
	cmd.Flags().StringVar(&in.DocumentType, "type", models.Form16TypeForm16, "form16 or tds")
	cmd.Flags().StringVar(&in.Remarks, "remarks", "", "Remarks")
	cmd.Flags().StringVar(&file, "file", "", "Certificate file to upload")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func historyCommand(a *app) *cobra.Command {
	var (
		params        api.HistoryParams
		from, to      string
		search, sortK string
		desc          bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the audit trail, 50 entries per page",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if params.From, err = parseDay(from); err != nil {
				return err
			}
			if params.To, err = parseDay(to); err != nil {
				return err
			}
			params.Search = search

			page, err := a.client.History.Page(cmd.Context(), params)
			if err != nil {
				if !apperrors.AlreadyNotified(err) {
					a.hub.Error("Failed to load history")
				}
				return err
			}

			dir := listview.Asc
			if desc {
				dir = listview.Desc
			}
			res := console.HistoryView().Apply(page.Items, listview.Query{SortKey: sortK, Direction: dir})

			tbl := console.Table{Headers: []string{"TIME", "METHOD", "PATH", "STATUS", "USER", "MS"}}
			for _, l := range res.Items {
				tbl.Add(l.CreatedAt.Format(time.DateTime), l.Method, l.Path, strconv.Itoa(l.StatusCode), l.UserEmail, strconv.FormatInt(l.ResponseTime, 10))
			}
			if err := tbl.Render(a.out); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "\npage %d of %d (%d entries)\n", page.Page, page.TotalPages, page.Total)
			return nil
		},
	}

	cmd.Flags().IntVar(&params.Page, "page", 1, "Page number")
	cmd.Flags().StringVar(&search, "search", "", "Search path, resource and user")
	cmd.Flags().StringVar(&params.Method, "method", "", "Only this HTTP method")
	cmd.Flags().StringVar(&from, "from", "", "First day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Last day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&sortK, "sort", "", "Sort the page by column")
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort descending")
	return cmd
}

func parseDay(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

func dashboardCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show record counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := a.client.Dashboard.Stats(cmd.Context())
			if err != nil {
				return err
			}
			tbl := console.Table{Headers: []string{"METRIC", "COUNT"}}
			tbl.Add("banks", strconv.FormatInt(stats.Banks, 10))
			tbl.Add("active lead forms", strconv.FormatInt(stats.ActiveLeadForms, 10))
			tbl.Add("field definitions", strconv.FormatInt(stats.FieldDefinitions, 10))
			tbl.Add("form16 documents", strconv.FormatInt(stats.Form16Documents, 10))
			tbl.Add("active banners", strconv.FormatInt(stats.ActiveBanners, 10))
			tbl.Add("sub agents", strconv.FormatInt(stats.SubAgents, 10))
			for _, role := range slices.Sorted(maps.Keys(stats.UsersByRole)) {
				tbl.Add("users: "+role, strconv.FormatInt(stats.UsersByRole[role], 10))
			}
			for _, status := range slices.Sorted(maps.Keys(stats.InvoicesByStatus)) {
				tbl.Add("invoices: "+status, strconv.FormatInt(stats.InvoicesByStatus[status], 10))
			}
			return tbl.Render(a.out)
		},
	}
}
