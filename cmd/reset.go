package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mentormatch/apiserver/config"
	"github.com/mentormatch/apiserver/internal/auth"
	"github.com/mentormatch/apiserver/internal/server"
	"github.com/mentormatch/apiserver/internal/services"
)

// resetCmd wipes the configured database and loads the seed accounts.
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Wipe all data and load the seed mentors and mentee",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadRuntime()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		if cfg.StoreBackend == config.StoreBackendMemory {
			logger.Warn("resetting the memory store has no lasting effect")
		}

		backend, err := server.OpenBackend(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer func() { _ = backend.Close() }()

		admin := services.NewAdminService(backend.Admin, auth.NewPasswordHasher(cfg.Auth.BcryptCost))
		result, err := admin.Reset(cmd.Context())
		if err != nil {
			return err
		}
		logger.Info("database reset", zap.Int("mentors_created", result.MentorsCreated))

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
