package main

import (
	"strconv"
	"strings"

	"LF-ADMIN/internal/console"
	"LF-ADMIN/internal/models"
	"LF-ADMIN/internal/registry"

	"github.com/spf13/cobra"
)

func fieldsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fields",
		Short: "Manage reusable field definitions",
	}
	cmd.AddCommand(fieldsListCommand(a), fieldsCreateCommand(a))
	return cmd
}

func fieldsListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every field definition, sorted by key",
		RunE: func(cmd *cobra.Command, args []string) error {
			defs, err := console.LoadPage(cmd.Context(), a.page, "field definitions", a.registry.List)
			if err != nil {
				return err
			}
			return renderDefinitions(a, defs)
		},
	}
}

func renderDefinitions(a *app, defs []models.FieldDefinition) error {
	tbl := console.Table{Headers: []string{"KEY", "LABEL", "TYPE", "REQUIRED", "SEARCHABLE", "OPTIONS"}}
	for _, d := range defs {
		tbl.Add(d.Key, d.Label, string(d.Type), strconv.FormatBool(d.Required), strconv.FormatBool(d.IsSearchable), strings.Join(d.Options, ", "))
	}
	return tbl.Render(a.out)
}

func fieldsCreateCommand(a *app) *cobra.Command {
	var req registry.CreateRequest
	var fieldType, category string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a field definition, or replace the one with the same key",
		Long: `Create a field definition. The key is lowercased and whitespace becomes "_".

Examples:
  leadadmin fields create --key "Applicant Email" --label "Applicant Email" --type email
  leadadmin fields create --key loan_type --label "Loan Type" --type select --options "Home, Personal, Car"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Type = models.FieldType(fieldType)
			req.Category = models.FieldCategory(category)
			def, err := a.registry.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			a.hub.Success("Field definition " + def.Key + " saved")
			return renderDefinitions(a, []models.FieldDefinition{*def})
		},
	}

	cmd.Flags().StringVar(&req.Key, "key", "", "Field key")
	cmd.Flags().StringVar(&req.Label, "label", "", "Display label")
	cmd.Flags().StringVar(&fieldType, "type", "text", "text, number, date, select, textarea, email, tel or file")
	cmd.Flags().BoolVar(&req.Required, "required", false, "Required by default when attached to a form")
	cmd.Flags().BoolVar(&req.IsSearchable, "searchable", false, "Index the field for search")
	cmd.Flags().StringVar(&req.Options, "options", "", "Comma separated options for select fields")
	cmd.Flags().StringVar(&req.Description, "description", "", "Free text description")
	cmd.Flags().StringVar(&category, "category", "", "personal, bank or other")
	return cmd
}
