package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	cartCmd "github.com/Alturino/tourism/cart/cmd"
	catalogCmd "github.com/Alturino/tourism/catalog/cmd"
	"github.com/Alturino/tourism/internal/constants"
	notificationCmd "github.com/Alturino/tourism/notification/cmd"
	safetyCmd "github.com/Alturino/tourism/safety/cmd"
	userCmd "github.com/Alturino/tourism/user/cmd"
)

// Start runs the service named by the first argument. Each service loads its
// own config and log file, so only a stdout logger exists until then.
func Start() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	logger := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str(constants.KEY_APP_NAME, constants.APP_MAIN_TOURISM).
		Str(constants.KEY_TAG, "main Start").
		Logger()

	logger.Info().Msg("adding listener for SIGINT and SIGTERM")
	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info().Msg("added listener for SIGINT and SIGTERM")

	c = logger.WithContext(c)

	rootCmd := &cobra.Command{
		Use:   "tourism",
		Short: "Tourism booking platform services",
	}
	commands := []*cobra.Command{
		{
			Use:   "cart",
			Short: "Run cart service",
			Run: func(cmd *cobra.Command, args []string) {
				cartCmd.RunCartService(cmd.Context())
			},
		},
		{
			Use:   "catalog",
			Short: "Run hotel and vehicle catalog service",
			Run: func(cmd *cobra.Command, args []string) {
				catalogCmd.RunCatalogService(cmd.Context())
			},
		},
		{
			Use:   "notification",
			Short: "Run notification service",
			Run: func(cmd *cobra.Command, args []string) {
				notificationCmd.RunNotificationService(cmd.Context())
			},
		},
		{
			Use:   "safety",
			Short: "Run safety service",
			Run: func(cmd *cobra.Command, args []string) {
				safetyCmd.RunSafetyService(cmd.Context())
			},
		},
		{
			Use:   "user",
			Short: "Run user service",
			Run: func(cmd *cobra.Command, args []string) {
				userCmd.RunUserService(cmd.Context())
			},
		},
	}
	rootCmd.AddCommand(commands...)
	if err := rootCmd.ExecuteContext(c); err != nil {
		logger.Fatal().Err(err).Msgf("error when executing command=%s", err.Error())
	}
}
