package main

import (
	"context"
	stderrs "errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/olusolaa/halyard-bootstrap/internal/app"
	"github.com/olusolaa/halyard-bootstrap/internal/config"
	apperrors "github.com/olusolaa/halyard-bootstrap/internal/errors"
	"github.com/olusolaa/halyard-bootstrap/internal/log"
)

var (
	cfgFile      string
	logLevel     string
	logFormat    string
	reporterType string
	readyTimeout string
)

var rootCmd = &cobra.Command{
	Use:   "halyard-bootstrap",
	Short: "Configures Halyard from GCE instance metadata on first boot.",
	Long: `halyard-bootstrap runs once when a Spinnaker VM first boots. It reads account
names, credentials and cluster identifiers from instance metadata, writes the
credential files Halyard needs, registers the enabled cloud provider accounts,
points storage at a GCS bucket and triggers a deployment. The startup script
that launched it is removed so it does not run again.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		application, buildErr := app.BuildApplicationFromViper(cmd.Context(), viper.GetViper())
		if buildErr != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Application initialization failed: %v\n", buildErr)
			var appErr *apperrors.AppError
			if stderrs.As(buildErr, &appErr) && appErr.IsUserFacing {
				fmt.Fprintf(os.Stderr, "Error Details: %s\n", appErr.Message)
				if appErr.SuggestedAction != "" {
					fmt.Fprintf(os.Stderr, "Suggestion: %s\n", appErr.SuggestedAction)
				}
			}
			return buildErr
		}

		if runErr := application.Run(cmd.Context()); runErr != nil {
			userMsg, suggestion, _ := apperrors.GetUserFacingMessage(runErr)
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", userMsg)
			if suggestion != "" {
				fmt.Fprintf(os.Stderr, "Suggestion: %s\n", suggestion)
			}
			return runErr
		}
		return nil
	},
}

func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "Configuration file path (default is .halyard-bootstrap.yaml in . or $HOME)")
	flags.StringVar(&logLevel, "log-level", "", "Override log level (debug, info, warn, error)")
	flags.StringVar(&logFormat, "log-format", "", "Override log format (text, json)")
	flags.StringVar(&reporterType, "reporter", "", "Report format printed at the end of the run (text, json)")
	flags.StringVar(&readyTimeout, "ready-timeout", "", "Give up waiting for the Halyard daemon after this long (e.g. 10m); 0 waits forever")

	_ = viper.BindPFlag("settings.log_level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("settings.log_format", flags.Lookup("log-format"))
	_ = viper.BindPFlag("settings.reporter", flags.Lookup("reporter"))
	_ = viper.BindPFlag("halyard.ready_timeout", flags.Lookup("ready-timeout"))

	viper.SetEnvPrefix("HALBOOT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

func initializeConfig(cmd *cobra.Command) error {
	if err := config.SetDefaults(viper.GetViper()); err != nil {
		return err
	}
	if logLevel != "" {
		viper.Set("settings.log_level", string(log.ParseLevel(logLevel)))
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".halyard-bootstrap")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !stderrs.As(err, &notFound) {
			return apperrors.Wrap(err, apperrors.CodeConfigReadError, "failed to read config file")
		}
	}
	return nil
}
