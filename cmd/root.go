package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mentormatch/apiserver/config"
	"github.com/mentormatch/apiserver/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:          "mentormatch",
	Short:        "Mentor and mentee matching API server",
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func loadRuntime() (config.Config, *zap.Logger, error) {
	cfg := config.LoadConfig()
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, logger, nil
}
