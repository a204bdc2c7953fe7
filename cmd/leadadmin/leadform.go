package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"LF-ADMIN/internal/apperrors"
	"LF-ADMIN/internal/assembler"
	"LF-ADMIN/internal/console"
	"LF-ADMIN/internal/models"

	"github.com/spf13/cobra"
)

// The form being edited lives in a draft file between invocations. "show"
// loads it from the backend; the editing commands change the draft; "save"
// persists it.
func leadFormCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leadform",
		Short: "Edit the agent lead form of a bank or the new lead form",
		Long: `Edit a lead form in steps.

Examples:
  leadadmin leadform show --bank 0b6c...
  leadadmin leadform toggle pan
  leadadmin leadform order pan 1
  leadadmin leadform require pan
  leadadmin leadform save`,
	}
	cmd.AddCommand(
		leadFormShowCommand(a),
		leadFormToggleCommand(a),
		leadFormOrderCommand(a),
		leadFormRequireCommand(a),
		leadFormNameCommand(a),
		leadFormActiveCommand(a),
		leadFormDocCommand(a),
		leadFormAvailableCommand(a),
		leadFormSaveCommand(a),
	)
	return cmd
}

func (a *app) newAssembler() *assembler.Assembler {
	return assembler.New(a.client.LeadForms, a.registry, a.hub, a.log)
}

// editDraft restores the draft, applies edit and writes it back
func (a *app) editDraft(cmd *cobra.Command, needCatalogue bool, edit func(*assembler.Assembler) error) error {
	d, err := assembler.LoadDraft(a.cfg.Client.DraftPath)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("no lead form loaded; run leadadmin leadform show first")
	}
	if err != nil {
		return err
	}
	if needCatalogue {
		if _, err := console.LoadPage(cmd.Context(), a.page, "field definitions", a.registry.List); err != nil {
			return err
		}
	}

	asm := a.newAssembler()
	asm.Restore(d)
	if err := edit(asm); err != nil {
		return err
	}
	if err := assembler.SaveDraft(a.cfg.Client.DraftPath, asm.Snapshot()); err != nil {
		return err
	}
	return renderForm(a, asm)
}

func renderForm(a *app, asm *assembler.Assembler) error {
	target := "new lead"
	if asm.LeadType() == models.LeadTypeBank {
		target = "bank " + asm.BankID()
	}
	name := asm.Name()
	if name == "" {
		name = models.DefaultFormName(asm.LeadType())
	}
	fmt.Fprintf(a.out, "%s (%s) id=%s active=%t state=%s\n\n", name, target, asm.FormID(), asm.Active(), asm.State())

	tbl := console.Table{Headers: []string{"ORDER", "KEY", "LABEL", "TYPE", "REQUIRED", "SEARCHABLE", "OPTIONS"}}
	for _, f := range asm.Fields() {
		tbl.Add(strconv.Itoa(f.Order), f.Key, f.Label, string(f.Type), strconv.FormatBool(f.Required), strconv.FormatBool(f.IsSearchable), f.Options)
	}
	if err := tbl.Render(a.out); err != nil {
		return err
	}

	docs := asm.DocumentTypes()
	if len(docs) == 0 {
		return nil
	}
	fmt.Fprintln(a.out)
	dt := console.Table{Headers: []string{"ORDER", "DOCUMENT", "KEY", "REQUIRED"}}
	for _, d := range docs {
		dt.Add(strconv.Itoa(d.Order), d.Name, d.Key, strconv.FormatBool(d.Required))
	}
	return dt.Render(a.out)
}

func leadFormShowCommand(a *app) *cobra.Command {
	var bankID string
	var newLead bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Load a lead form from the backend into the draft",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := console.LoadPage(cmd.Context(), a.page, "field definitions", a.registry.List); err != nil {
				return err
			}
			asm := a.newAssembler()
			var err error
			if newLead {
				err = asm.LoadForNewLead(cmd.Context())
			} else {
				err = asm.LoadForBank(cmd.Context(), bankID)
			}
			if err != nil {
				return err
			}
			if err := assembler.SaveDraft(a.cfg.Client.DraftPath, asm.Snapshot()); err != nil {
				return err
			}
			return renderForm(a, asm)
		},
	}

	cmd.Flags().StringVar(&bankID, "bank", "", "Bank id")
	cmd.Flags().BoolVar(&newLead, "new-lead", false, "Edit the new lead form")
	cmd.MarkFlagsMutuallyExclusive("bank", "new-lead")
	cmd.MarkFlagsOneRequired("bank", "new-lead")
	return cmd
}

func leadFormToggleCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle KEY...",
		Short: "Add a field to the form, or remove it when already present",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.editDraft(cmd, true, func(asm *assembler.Assembler) error {
				for _, key := range args {
					asm.ToggleField(key)
				}
				return nil
			})
		},
	}
}

func leadFormOrderCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "order KEY ORDER",
		Short: "Set the display order of a field",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.editDraft(cmd, false, func(asm *assembler.Assembler) error {
				if !asm.SetFieldOrder(args[0], args[1]) {
					return fmt.Errorf("field %q is not on the form", args[0])
				}
				return nil
			})
		},
	}
}

func leadFormRequireCommand(a *app) *cobra.Command {
	var optional, searchable, notSearchable bool
	var options string

	cmd := &cobra.Command{
		Use:   "require KEY",
		Short: "Change the per-form attributes of a field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.editDraft(cmd, false, func(asm *assembler.Assembler) error {
				required := !optional
				patch := assembler.FieldPatch{Required: &required}
				if searchable || notSearchable {
					patch.IsSearchable = &searchable
				}
				if cmd.Flags().Changed("options") {
					patch.Options = &options
				}
				if !asm.EditField(args[0], patch) {
					return fmt.Errorf("field %q is not on the form", args[0])
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&optional, "optional", false, "Mark the field optional instead")
	cmd.Flags().BoolVar(&searchable, "searchable", false, "Mark the field searchable")
	cmd.Flags().BoolVar(&notSearchable, "not-searchable", false, "Mark the field not searchable")
	cmd.Flags().StringVar(&options, "options", "", "Comma separated select options")
	cmd.MarkFlagsMutuallyExclusive("searchable", "not-searchable")
	return cmd
}

func leadFormNameCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "name NAME",
		Short: "Rename the form",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.editDraft(cmd, false, func(asm *assembler.Assembler) error {
				asm.SetName(strings.Join(args, " "))
				return nil
			})
		},
	}
}

func leadFormActiveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "active true|false",
		Short: "Activate or deactivate the form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			active, err := strconv.ParseBool(args[0])
			if err != nil {
				return fmt.Errorf("invalid value %q: %w", args[0], err)
			}
			return a.editDraft(cmd, false, func(asm *assembler.Assembler) error {
				asm.SetActive(active)
				return nil
			})
		},
	}
}

func leadFormDocCommand(a *app) *cobra.Command {
	var required bool

	cmd := &cobra.Command{
		Use:   "doc NAME",
		Short: "Add a required document type",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.editDraft(cmd, false, func(asm *assembler.Assembler) error {
				return asm.AddDocumentType(strings.Join(args, " "), required)
			})
		},
	}
	cmd.Flags().BoolVar(&required, "required", false, "Agents must attach this document")
	return cmd
}

func leadFormAvailableCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "available",
		Short: "List the field definitions that may be added to the form",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := assembler.LoadDraft(a.cfg.Client.DraftPath)
			if errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("no lead form loaded; run leadadmin leadform show first")
			}
			if err != nil {
				return err
			}
			if _, err := console.LoadPage(cmd.Context(), a.page, "field definitions", a.registry.List); err != nil {
				return err
			}
			asm := a.newAssembler()
			asm.Restore(d)
			return renderDefinitions(a, asm.AvailableFields())
		},
	}
}

func leadFormSaveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Persist the draft to the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.editDraft(cmd, false, func(asm *assembler.Assembler) error {
				// Save has already published its own notification
				_, err := asm.Save(cmd.Context())
				apperrors.MarkNotified(err)
				return err
			})
		},
	}
}
