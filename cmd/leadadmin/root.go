package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"LF-ADMIN/internal/api"
	"LF-ADMIN/internal/config"
	"LF-ADMIN/internal/console"
	"LF-ADMIN/internal/logger"
	"LF-ADMIN/internal/notify"
	"LF-ADMIN/internal/registry"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app is what every command needs, built once before the command runs
type app struct {
	cfg      *config.Config
	log      *zap.Logger
	hub      *notify.Hub
	client   *api.Client
	registry *registry.Registry
	page     *console.Page
	out      io.Writer
}

func newRootCommand() *cobra.Command {
	a := &app{out: os.Stdout}
	var apiURL, token, draftPath string

	root := &cobra.Command{
		Use:           "leadadmin",
		Short:         "Administer lead forms, field definitions and partner records",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if apiURL != "" {
				cfg.Client.BaseURL = apiURL
			}
			if token != "" {
				cfg.Client.Token = token
			}
			if draftPath != "" {
				cfg.Client.DraftPath = draftPath
			}
			a.init(cfg)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	root.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API base URL (overrides LEAD_ADMIN_API_URL)")
	root.PersistentFlags().StringVar(&token, "token", "", "Bearer token (overrides LEAD_ADMIN_TOKEN)")
	root.PersistentFlags().StringVar(&draftPath, "draft", "", "Lead form draft file (overrides LEAD_ADMIN_DRAFT)")

	root.AddCommand(
		fieldsCommand(a),
		leadFormCommand(a),
		bannersCommand(a),
		form16Command(a),
		subAgentsCommand(a),
		commissionCommand(a),
		invoicesCommand(a),
		usersCommand(a),
		historyCommand(a),
		dashboardCommand(a),
	)
	return root
}

func (a *app) init(cfg *config.Config) {
	a.cfg = cfg
	a.log = logger.New(cfg.Log.Level, cfg.Log.Format)
	a.hub = notify.NewHub()
	a.hub.Subscribe(func(n notify.Notification) {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", strings.ToUpper(string(n.Level)), n.Message)
	})
	a.client = api.NewClient(cfg.Client.BaseURL,
		api.WithToken(cfg.Client.Token),
		api.WithTimeout(cfg.Client.Timeout),
		api.WithNotifications(a.hub),
		api.WithLogger(a.log),
	)
	a.registry = registry.New(a.client.FieldDefs)
	a.page = console.NewPage(a.hub, a.log)
}

func (a *app) close() {
	if a.hub != nil {
		a.hub.Close()
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}
