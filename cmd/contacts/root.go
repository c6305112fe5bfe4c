package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/portfolio/backend/internal/config"
	"github.com/portfolio/backend/internal/logging"
	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/internal/service"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	databaseURL string
	output      string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "contacts",
		Short: "Manage contact form messages",
		Long: `contacts lists and triages messages submitted through the site's contact form.

The database is taken from --database, or DATABASE_URL when the flag is omitted
(postgres://... or sqlite://path).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logging.Setup(cfg.LogLevel, cfg.LogFormat)
			if opts.databaseURL == "" {
				opts.databaseURL = cfg.DatabaseURL
			}
			switch opts.output {
			case "table", "json":
				return nil
			default:
				return fmt.Errorf("unknown output format %q (want table or json)", opts.output)
			}
		},
	}

	root.PersistentFlags().StringVar(&opts.databaseURL, "database", "", "database URL (default: $DATABASE_URL)")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", "table", "output format: table, json")

	root.AddCommand(
		newListCmd(opts),
		newStatusCmd(opts),
		newMarkReadCmd(opts),
	)
	return root
}

// openService opens the configured store and wraps it in a ContactService.
// The CLI never submits messages, so no notifier is wired.
func (o *rootOptions) openService(ctx context.Context) (service.ContactService, func(), error) {
	store, err := repository.Open(ctx, o.databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	return service.NewContactService(store.Contacts, nil), store.Close, nil
}
