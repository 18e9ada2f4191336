package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"conduit/internal/config"
	transport "conduit/internal/transport/http"
)

var serveFlags struct {
	store   string
	migrate bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API. Usage:

	server serve --store=memory
	server serve --migrate
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("store") {
			cfg.Store = serveFlags.store
		}
		if serveFlags.migrate {
			cfg.MigrateOnStart = true
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv, err := transport.NewServer(ctx, cfg, log)
		if err != nil {
			log.Error("failed to start server", "error", err)
			return err
		}
		if err := srv.Run(ctx); err != nil {
			log.Error("server error", "error", err)
			return err
		}
		log.Info("server stopped")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveFlags.store, "store", config.StorePostgres, "storage backend: postgres or memory")
	serveCmd.Flags().BoolVar(&serveFlags.migrate, "migrate", false, "apply pending migrations before serving")
}
